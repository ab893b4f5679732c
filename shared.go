// FILE: lixenwraith/tomldir/shared.go
package tomldir

import (
	"iter"
	"time"
)

// SharedConfig is a read-only handle to a Config. Copying a SharedConfig is
// cheap and every copy reads the same store. Any number of goroutines may
// read through SharedConfig handles concurrently without locking, because
// the underlying Config rejects Set once shared.
//
// The zero SharedConfig is not usable; obtain one from Config.Shared.
type SharedConfig struct {
	cfg *Config
}

// Shared freezes c and returns a read-only handle to it.
// Subsequent calls to c.Set fail with ErrFrozen.
func (c *Config) Shared() SharedConfig {
	c.frozen.Store(true)
	return SharedConfig{cfg: c}
}

// Shared returns another handle to the same configuration.
func (s SharedConfig) Shared() SharedConfig { return s }

// Store returns the root store as a read-only view.
func (s SharedConfig) Store() StoreReader { return s.cfg.store }

func (s SharedConfig) Format() Format { return s.cfg.format }
func (s SharedConfig) Source() string { return s.cfg.source }
func (s SharedConfig) Len() int { return s.cfg.store.Len() }
func (s SharedConfig) Keys() []string { return s.cfg.Keys() }

func (s SharedConfig) Get(path string) (Value, bool) { return lookup(s.cfg.store, path) }
func (s SharedConfig) Has(path string) bool {
	_, ok := lookup(s.cfg.store, path)
	return ok
}

func (s SharedConfig) GetString(path string) (string, bool) { return getString(s.cfg.store, path) }
func (s SharedConfig) GetInt(path string) (int64, bool) { return getInt(s.cfg.store, path) }
func (s SharedConfig) GetFloat(path string) (float64, bool) { return getFloat(s.cfg.store, path) }
func (s SharedConfig) GetBool(path string) (bool, bool) { return getBool(s.cfg.store, path) }
func (s SharedConfig) GetTime(path string) (time.Time, bool) { return getTime(s.cfg.store, path) }
func (s SharedConfig) GetArray(path string) ([]Value, bool) { return getArray(s.cfg.store, path) }
func (s SharedConfig) GetTable(path string) (StoreReader, bool) { return getTable(s.cfg.store, path) }

// FlatEntries yields the flattened configuration in store order.
func (s SharedConfig) FlatEntries() iter.Seq2[string, string] {
	return FlattenStore(s.cfg.store)
}

// Flatten returns the configuration as a map of dotted keys to rendered values.
func (s SharedConfig) Flatten() map[string]string {
	return collectMap(s.FlatEntries())
}

// Scan decodes the table at basePath into target. See Config.Scan.
func (s SharedConfig) Scan(basePath string, target any) error {
	return scan(s.cfg.store, basePath, defaultTagName, target)
}

var (
	_ Reader = (*Config)(nil)
	_ Reader = SharedConfig{}
)
