// FILE: lixenwraith/tomldir/shared_test.go
package tomldir

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// TestSharedConfigConcurrentReads tests that many goroutines can read one
// shared configuration and observe identical results
func TestSharedConfigConcurrentReads(t *testing.T) {
	for _, sf := range storeFactories {
		t.Run(sf.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			cfg := loadSample(t, sf.factory)
			shared := cfg.Shared()
			want := FlattenInto(shared, CollectEntries)

			const readers = 16
			results := make([][]FlatEntry, readers)
			hosts := make([]string, readers)

			var wg sync.WaitGroup
			for i := range readers {
				wg.Add(1)
				go func(handle SharedConfig) {
					defer wg.Done()
					for range 50 {
						results[i] = FlattenInto(handle, CollectEntries)
						hosts[i], _ = handle.GetString("database.host")
					}
				}(shared)
			}
			wg.Wait()

			for i := range readers {
				assert.Equal(t, want, results[i], "reader %d", i)
				assert.Equal(t, "localhost", hosts[i], "reader %d", i)
			}
		})
	}
}

// TestSharedConfigHandles tests that copies of a handle see the same configuration
func TestSharedConfigHandles(t *testing.T) {
	cfg := loadSample(t, NewOrderedStore)
	a := cfg.Shared()
	b := a.Shared()
	c := a

	assert.Same(t, a.cfg, b.cfg)
	assert.Same(t, a.cfg, c.cfg)
	assert.Equal(t, cfg.Keys(), b.Keys())
	assert.Equal(t, cfg.Len(), c.Len())
	assert.Equal(t, FormatTOML, c.Format())
	assert.Empty(t, c.Source())
}

// TestSharedConfigReadOnly tests that sharing freezes the configuration
func TestSharedConfigReadOnly(t *testing.T) {
	cfg := loadSample(t, NewHashStore)
	require.NoError(t, cfg.Set("extra", StringValue("before")))

	shared := cfg.Shared()
	assert.ErrorIs(t, cfg.Set("extra", StringValue("after")), ErrFrozen)

	s, ok := shared.GetString("extra")
	assert.True(t, ok)
	assert.Equal(t, "before", s)

	view := shared.Store()
	assert.Equal(t, cfg.Len(), view.Len())
	assert.Equal(t, storeKeys(cfg.Store()), storeKeys(view))
}

// TestSharedConfigAccessors tests that the shared surface mirrors Config
func TestSharedConfigAccessors(t *testing.T) {
	cfg := loadSample(t, NewSortedStore)
	shared := cfg.Shared()

	paths := []string{"title", "ratio", "count", "enabled", "tags.1", "released", "database.port", "runners[1].docker.image", "missing"}
	for _, path := range paths {
		want, wantOK := cfg.Get(path)
		got, gotOK := shared.Get(path)
		assert.Equal(t, wantOK, gotOK, path)
		assert.True(t, want.Equal(got), path)
		assert.Equal(t, cfg.Has(path), shared.Has(path), path)
	}

	i, ok := shared.GetInt("count")
	assert.True(t, ok)
	assert.Equal(t, int64(3), i)

	f, ok := shared.GetFloat("ratio")
	assert.True(t, ok)
	assert.Equal(t, 0.75, f)

	b, ok := shared.GetBool("enabled")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = shared.GetTime("released")
	assert.True(t, ok)

	arr, ok := shared.GetArray("runners")
	assert.True(t, ok)
	assert.Len(t, arr, 2)

	tbl, ok := shared.GetTable("runners.1.docker")
	require.True(t, ok)
	assert.Equal(t, 1, tbl.Len())

	assert.Equal(t, cfg.Flatten(), shared.Flatten())
}
