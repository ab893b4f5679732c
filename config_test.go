// FILE: lixenwraith/tomldir/config_test.go
package tomldir

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
title = "example"
ratio = 0.75
count = 3
enabled = true
tags = ["a", "b"]
empty = []
released = 1979-05-27T07:32:00Z

[database]
host = "localhost"
port = 5432

[[runners]]
name = "shell"

[[runners]]
name = "docker"

[runners.docker]
image = "alpine:latest"
`

func loadSample(t *testing.T, factory StoreFactory) *Config {
	t.Helper()
	cfg, err := LoadWithStore(sampleTOML, factory)
	require.NoError(t, err)
	return cfg
}

// TestConfigCreation tests various config creation patterns
func TestConfigCreation(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		cfg := New()
		require.NotNil(t, cfg)
		assert.IsType(t, &HashStore{}, cfg.Store())
		assert.Equal(t, 0, cfg.Len())
		assert.False(t, cfg.IsShared())
	})

	t.Run("NewWithStore", func(t *testing.T) {
		cfg := NewWithStore(NewSortedStore)
		assert.IsType(t, &SortedStore{}, cfg.Store())
	})

	t.Run("NilFactoryFallsBack", func(t *testing.T) {
		cfg := NewWithStore(nil)
		assert.IsType(t, &HashStore{}, cfg.Store())
	})

	t.Run("TopLevelKeys", func(t *testing.T) {
		cfg := loadSample(t, NewOrderedStore)
		assert.Equal(t, 9, cfg.Len())
		assert.Equal(t, []string{"title", "ratio", "count", "enabled", "tags", "empty", "released", "database", "runners"}, cfg.Keys())
	})
}

// TestGet tests dotted path resolution
func TestGet(t *testing.T) {
	for _, sf := range storeFactories {
		t.Run(sf.name, func(t *testing.T) {
			cfg := loadSample(t, sf.factory)

			tests := []struct {
				path  string
				found bool
				kind  Kind
			}{
				{"title", true, KindString},
				{"database", true, KindTable},
				{"database.port", true, KindInteger},
				{"tags", true, KindArray},
				{"tags.0", true, KindString},
				{"tags.1", true, KindString},
				{"runners.1.docker.image", true, KindString},
				{"runners[1].docker.image", true, KindString},
				{"runners[0].name", true, KindString},

				{"missing", false, KindNull},
				{"missing.path", false, KindNull},
				{"database.missing", false, KindNull},
				{"title.sub", false, KindNull},       // leaf with segments remaining
				{"database.port.x", false, KindNull}, // leaf with segments remaining
				{"tags.2", false, KindNull},          // out of range
				{"tags.01", false, KindNull},         // not a canonical index
				{"tags.-1", false, KindNull},         // not an index
				{"tags.x", false, KindNull},          // not an index
				{"empty.0", false, KindNull},         // empty array
				{"database..host", false, KindNull},  // empty segment
				{"", false, KindNull},                // empty key is not defined
				{"runners[5].name", false, KindNull}, // out of range, bracket form
			}

			for _, tt := range tests {
				v, ok := cfg.Get(tt.path)
				assert.Equal(t, tt.found, ok, "path %q", tt.path)
				assert.Equal(t, tt.found, cfg.Has(tt.path), "path %q", tt.path)
				if tt.found {
					assert.Equal(t, tt.kind, v.Kind(), "path %q", tt.path)
				}
			}
		})
	}
}

// TestTypedGetters tests typed access and the absence of implicit coercion
func TestTypedGetters(t *testing.T) {
	cfg := loadSample(t, NewHashStore)

	t.Run("Matching", func(t *testing.T) {
		s, ok := cfg.GetString("database.host")
		assert.True(t, ok)
		assert.Equal(t, "localhost", s)

		i, ok := cfg.GetInt("database.port")
		assert.True(t, ok)
		assert.Equal(t, int64(5432), i)

		f, ok := cfg.GetFloat("ratio")
		assert.True(t, ok)
		assert.Equal(t, 0.75, f)

		b, ok := cfg.GetBool("enabled")
		assert.True(t, ok)
		assert.True(t, b)

		ts, ok := cfg.GetTime("released")
		assert.True(t, ok)
		assert.True(t, ts.Equal(time.Date(1979, 5, 27, 7, 32, 0, 0, time.UTC)))

		arr, ok := cfg.GetArray("tags")
		assert.True(t, ok)
		assert.Len(t, arr, 2)

		tbl, ok := cfg.GetTable("database")
		assert.True(t, ok)
		assert.Equal(t, 2, tbl.Len())
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		_, ok := cfg.GetInt("database.host")
		assert.False(t, ok, "string leaf must not be returned as integer")

		_, ok = cfg.GetFloat("count")
		assert.False(t, ok, "integer must not be widened to float")

		_, ok = cfg.GetInt("ratio")
		assert.False(t, ok, "float must not be truncated to integer")

		_, ok = cfg.GetString("database.port")
		assert.False(t, ok, "integer must not be rendered as string")

		_, ok = cfg.GetBool("title")
		assert.False(t, ok)

		_, ok = cfg.GetTable("tags")
		assert.False(t, ok)

		_, ok = cfg.GetArray("database")
		assert.False(t, ok)
	})

	t.Run("AbsentPath", func(t *testing.T) {
		for _, sf := range storeFactories {
			cfg := loadSample(t, sf.factory)
			s, ok := cfg.GetString("missing.path")
			assert.False(t, ok, sf.name)
			assert.Equal(t, "", s, sf.name)
		}
	})
}

// TestSet tests writes through dotted paths
func TestSet(t *testing.T) {
	t.Run("CreatesIntermediateTables", func(t *testing.T) {
		cfg := NewWithStore(NewOrderedStore)
		require.NoError(t, cfg.Set("server.tls.enabled", BoolValue(true)))
		require.NoError(t, cfg.Set("server.port", IntValue(8443)))

		b, ok := cfg.GetBool("server.tls.enabled")
		assert.True(t, ok)
		assert.True(t, b)

		tbl, ok := cfg.GetTable("server")
		require.True(t, ok)
		assert.IsType(t, &OrderedStore{}, tbl, "intermediate tables use the config's store factory")
		assert.Equal(t, []string{"tls", "port"}, storeKeys(tbl))
	})

	t.Run("ReplacesExisting", func(t *testing.T) {
		cfg := loadSample(t, NewSortedStore)
		require.NoError(t, cfg.Set("database.port", IntValue(6543)))
		port, _ := cfg.GetInt("database.port")
		assert.Equal(t, int64(6543), port)
		assert.Equal(t, 9, cfg.Len())
	})

	t.Run("InvalidPaths", func(t *testing.T) {
		cfg := loadSample(t, NewHashStore)
		tests := []string{"", "a..b", ".a", "a.", "tags[0]"}
		for _, path := range tests {
			assert.ErrorIs(t, cfg.Set(path, IntValue(1)), ErrInvalidPath, "path %q", path)
		}
	})

	t.Run("ThroughNonTable", func(t *testing.T) {
		cfg := loadSample(t, NewHashStore)
		err := cfg.Set("title.sub", IntValue(1))
		assert.ErrorIs(t, err, ErrInvalidPath)
		assert.Contains(t, err.Error(), "string")

		err = cfg.Set("tags.x", IntValue(1))
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("FrozenAfterShared", func(t *testing.T) {
		cfg := loadSample(t, NewHashStore)
		_ = cfg.Shared()
		assert.True(t, cfg.IsShared())
		assert.ErrorIs(t, cfg.Set("title", StringValue("changed")), ErrFrozen)

		title, _ := cfg.GetString("title")
		assert.Equal(t, "example", title)
	})
}
