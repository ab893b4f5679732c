// File: lixenwraith/tomldir/builder.go
package tomldir

import (
	"errors"
	"fmt"
	"log/slog"
)

// ValidatorFunc defines the signature for a function that can validate a Config instance.
// It receives the fully loaded *Config object and should return an error if validation fails.
type ValidatorFunc func(c *Config) error

// Builder provides a fluent interface for building configurations
type Builder struct {
	opts       LoadOptions
	file       string
	data       []byte
	hasData    bool
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{
		opts:       LoadOptions{Store: NewHashStore, MaxFileSize: DefaultMaxFileSize},
		validators: make([]ValidatorFunc, 0),
	}
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithText sets in-memory document text. It takes precedence over WithFile.
func (b *Builder) WithText(text string) *Builder {
	return b.WithBytes([]byte(text))
}

// WithBytes sets in-memory document data. It takes precedence over WithFile.
func (b *Builder) WithBytes(data []byte) *Builder {
	b.data = data
	b.hasData = true
	return b
}

// WithFormat sets the document format
func (b *Builder) WithFormat(format Format) *Builder {
	b.opts.Format = format
	return b
}

// WithFormatName sets the document format by name ("toml", "json", "yaml", "auto")
func (b *Builder) WithFormatName(name string) *Builder {
	format, err := ParseFormat(name)
	if err != nil && b.err == nil {
		b.err = err
	}
	b.opts.Format = format
	return b
}

// WithStore sets the factory for table containers
func (b *Builder) WithStore(factory StoreFactory) *Builder {
	if factory == nil && b.err == nil {
		b.err = errors.New("store factory cannot be nil")
	}
	b.opts.Store = factory
	return b
}

// WithStoreKind selects a built-in store by kind
func (b *Builder) WithStoreKind(kind StoreKind) *Builder {
	b.opts.Store = kind.Factory()
	return b
}

// WithMaxFileSize limits the size of the configuration file
func (b *Builder) WithMaxFileSize(size int64) *Builder {
	b.opts.MaxFileSize = size
	return b
}

// WithLogger sets the logger for load diagnostics
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.opts.Logger = logger
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Config instance with all specified options
func (b *Builder) Build() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}

	var (
		cfg *Config
		err error
	)
	switch {
	case b.hasData:
		cfg, err = LoadBytes(b.data, b.opts)
	case b.file != "":
		cfg, err = LoadFile(b.file, b.opts)
	default:
		return nil, errors.New("no configuration input: use WithFile, WithText or WithBytes")
	}
	if err != nil {
		return nil, err
	}

	// Run validators
	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return cfg, nil
}

// BuildShared builds the configuration and returns a read-only shared handle
func (b *Builder) BuildShared() (SharedConfig, error) {
	cfg, err := b.Build()
	if err != nil {
		return SharedConfig{}, err
	}
	return cfg.Shared(), nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}

// BuildAndScan builds and unmarshals the configuration under basePath into target
func (b *Builder) BuildAndScan(basePath string, target any) error {
	cfg, err := b.Build()
	if err != nil {
		return err
	}

	if err := cfg.Scan(basePath, target); err != nil {
		return fmt.Errorf("failed to scan final config into target: %w", err)
	}
	return nil
}
