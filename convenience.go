// File: lixenwraith/tomldir/convenience.go
package tomldir

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// MustLoad is like Load but panics on error
func MustLoad(text string) *Config {
	cfg, err := Load(text)
	if err != nil {
		panic(fmt.Sprintf("config load failed: %v", err))
	}
	return cfg
}

// Quick loads a configuration file with format detection and the given store kind.
// This is the shortest way to get a shared, read-only configuration.
func Quick(path string, kind StoreKind) (SharedConfig, error) {
	opts := LoadOptions{Store: kind.Factory()}
	cfg, err := LoadFile(path, opts)
	if err != nil {
		return SharedConfig{}, err
	}
	return cfg.Shared(), nil
}

// Debug returns a formatted string showing every flattened entry with its kind
func (c *Config) Debug() string {
	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	fmt.Fprintf(&b, "Format: %s\n", c.format)
	if c.source != "" {
		fmt.Fprintf(&b, "Source: %s\n", c.source)
	}
	fmt.Fprintf(&b, "Shared: %t\n", c.IsShared())
	b.WriteString("Values:\n")

	// Quoted keys may contain dots, so kinds come from the walk rather than Get
	for key, leaf := range flattenLeaves(c.store) {
		fmt.Fprintf(&b, "  %s = %q (%s)\n", key, leaf.String(), leaf.Kind())
	}
	return b.String()
}

// Dump writes the configuration to w in TOML format. Keys are sorted and
// null values omitted, as the TOML encoder requires.
func (c *Config) Dump(w io.Writer) error {
	nested := toNative(TableValue(c.store)).(map[string]any)
	if err := toml.NewEncoder(w).Encode(nested); err != nil {
		return fmt.Errorf("failed to encode config as TOML: %w", err)
	}
	return nil
}
