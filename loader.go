// FILE: lixenwraith/tomldir/loader.go
package tomldir

import (
	"errors"
	"log/slog"
)

// DefaultMaxFileSize bounds LoadFile reads unless LoadOptions overrides it.
const DefaultMaxFileSize int64 = 10 << 20

// LoadOptions configures how a document is parsed and stored
type LoadOptions struct {
	// Format of the input. Empty means TOML for in-memory input and
	// FormatAuto for LoadFile.
	Format Format

	// Store creates the table containers. Nil means NewHashStore.
	Store StoreFactory

	// MaxFileSize limits LoadFile; zero or negative means DefaultMaxFileSize
	MaxFileSize int64

	// Logger receives debug records about format detection and loading.
	// Nil disables logging.
	Logger *slog.Logger
}

// DefaultLoadOptions returns the standard load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Format:      FormatTOML,
		Store:       NewHashStore,
		MaxFileSize: DefaultMaxFileSize,
	}
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.Store == nil {
		o.Store = NewHashStore
	}
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Load parses TOML text into a Config backed by HashStore tables.
func Load(text string) (*Config, error) {
	return LoadWithStore(text, NewHashStore)
}

// LoadWithStore parses TOML text into a Config whose tables are created by
// factory, e.g. NewOrderedStore to keep document order.
func LoadWithStore(text string, factory StoreFactory) (*Config, error) {
	opts := DefaultLoadOptions()
	opts.Store = factory
	return LoadBytes([]byte(text), opts)
}

// LoadBytes parses data according to opts.
func LoadBytes(data []byte, opts LoadOptions) (*Config, error) {
	if opts.Format == "" {
		opts.Format = FormatTOML
	}
	return load(data, "", opts.withDefaults())
}

// load is the common path of all loaders. Syntax parsing is delegated to the
// format's parser; the root table becomes the Config's store unchanged, with
// nested tables and arrays kept intact.
func load(data []byte, source string, opts LoadOptions) (*Config, error) {
	log := opts.Logger

	format := opts.Format
	if format == FormatAuto {
		format = detectFormat(source, data)
		if format == "" {
			return nil, &ParseError{Kind: ErrSyntax, Format: FormatAuto, Source: source, Err: ErrUnsupportedFormat}
		}
		log.Debug("detected configuration format", "source", source, "format", format)
	}

	root, err := parseDocument(format, data, opts.Store)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Source = source
		}
		log.Debug("configuration load failed", "source", source, "format", format, "error", err)
		return nil, err
	}

	tbl, _ := root.AsTable()
	store := tbl.(Store) // parsers build every table with opts.Store
	log.Debug("configuration loaded", "source", source, "format", format, "keys", store.Len())
	return newConfig(store, opts.Store, format, source), nil
}
