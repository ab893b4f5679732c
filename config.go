// File: lixenwraith/tomldir/config.go
package tomldir

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Config holds a parsed configuration document. The root table lives in a
// Store chosen at load time; nested tables use the same implementation.
type Config struct {
	store   Store
	factory StoreFactory
	format  Format
	source  string
	frozen  atomic.Bool // set by Shared
}

// New creates an empty Config backed by HashStore tables.
func New() *Config {
	return NewWithStore(NewHashStore)
}

// NewWithStore creates an empty Config whose tables are created by factory.
func NewWithStore(factory StoreFactory) *Config {
	if factory == nil {
		factory = NewHashStore
	}
	return &Config{
		store:   factory(),
		factory: factory,
		format:  FormatTOML,
	}
}

func newConfig(root Store, factory StoreFactory, format Format, source string) *Config {
	return &Config{
		store:   root,
		factory: factory,
		format:  format,
		source:  source,
	}
}

// Store returns the root store for raw iteration.
// Mutating it after Shared has been called breaks the read-only contract of SharedConfig.
func (c *Config) Store() Store {
	return c.store
}

// Format reports the syntax the configuration was parsed from.
func (c *Config) Format() Format {
	return c.format
}

// Source reports the file the configuration was loaded from, empty for in-memory input.
func (c *Config) Source() string {
	return c.source
}

// Len returns the number of top-level keys.
func (c *Config) Len() int {
	return c.store.Len()
}

// Keys returns the top-level keys in store order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, c.store.Len())
	for k := range c.store.All() {
		keys = append(keys, k)
	}
	return keys
}

// Set stores v at a dotted path, creating intermediate tables as needed.
// It fails with ErrFrozen once the configuration has been shared.
func (c *Config) Set(path string, v Value) error {
	if c.frozen.Load() {
		return ErrFrozen
	}

	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if !isValidKeySegment(segment) {
			return fmt.Errorf("%w: segment %q in %q", ErrInvalidPath, segment, path)
		}
	}

	current := c.store
	for i, segment := range segments[:len(segments)-1] {
		next, exists := current.Get(segment)
		if !exists {
			child := c.factory()
			current.Insert(segment, TableValue(child))
			current = child
			continue
		}
		tbl, isTable := next.AsTable()
		if !isTable {
			return fmt.Errorf("%w: %q is a %s, not a table", ErrInvalidPath, strings.Join(segments[:i+1], "."), next.Kind())
		}
		writable, ok := tbl.(Store)
		if !ok {
			return fmt.Errorf("%w: table %q is read-only", ErrInvalidPath, strings.Join(segments[:i+1], "."))
		}
		current = writable
	}

	current.Insert(segments[len(segments)-1], v)
	return nil
}

// IsShared reports whether Shared has been called on c.
func (c *Config) IsShared() bool {
	return c.frozen.Load()
}
