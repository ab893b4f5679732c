// FILE: lixenwraith/tomldir/builder_test.go
package tomldir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilder tests the builder pattern
func TestBuilder(t *testing.T) {
	t.Run("FromText", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithText("[server]\nport = 8080\n").
			WithStoreKind(StoreOrdered).
			Build()
		require.NoError(t, err)
		assert.IsType(t, &OrderedStore{}, cfg.Store())
		assert.Equal(t, FormatTOML, cfg.Format())

		port, ok := cfg.GetInt("server.port")
		assert.True(t, ok)
		assert.Equal(t, int64(8080), port)
	})

	t.Run("FromFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "app.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("server:\n  host: example.com\n"), 0644))

		cfg, err := NewBuilder().
			WithFile(configFile).
			WithStore(NewSortedStore).
			Build()
		require.NoError(t, err)
		assert.Equal(t, FormatYAML, cfg.Format())
		assert.Equal(t, configFile, cfg.Source())

		host, _ := cfg.GetString("server.host")
		assert.Equal(t, "example.com", host)
	})

	t.Run("TextTakesPrecedence", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithFile("/nonexistent/config.toml").
			WithText(`name = "inline"`).
			Build()
		require.NoError(t, err)
		name, _ := cfg.GetString("name")
		assert.Equal(t, "inline", name)
	})

	t.Run("FormatName", func(t *testing.T) {
		cfg, err := NewBuilder().
			WithBytes([]byte(`{"a": 1}`)).
			WithFormatName("json").
			Build()
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, cfg.Format())

		_, err = NewBuilder().
			WithText("a = 1").
			WithFormatName("ini").
			Build()
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("NilStore", func(t *testing.T) {
		_, err := NewBuilder().WithText("a = 1").WithStore(nil).Build()
		assert.Error(t, err)
	})

	t.Run("NoInput", func(t *testing.T) {
		_, err := NewBuilder().Build()
		assert.Error(t, err)
	})

	t.Run("MaxFileSize", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "big.toml")
		require.NoError(t, os.WriteFile(configFile, []byte(`key = "0123456789"`), 0644))

		_, err := NewBuilder().WithFile(configFile).WithMaxFileSize(8).Build()
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("SyntaxError", func(t *testing.T) {
		_, err := NewBuilder().WithText("a = [").Build()
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().WithText("= nope").MustBuild()
		})
		assert.NotPanics(t, func() {
			NewBuilder().WithText("ok = true").MustBuild()
		})
	})
}

// TestBuilderValidation tests validators run after loading
func TestBuilderValidation(t *testing.T) {
	errMissingHost := errors.New("server.host is required")
	requireHost := func(c *Config) error {
		if !c.Has("server.host") {
			return errMissingHost
		}
		return nil
	}

	t.Run("Passes", func(t *testing.T) {
		var order []int
		cfg, err := NewBuilder().
			WithText("[server]\nhost = \"localhost\"\n").
			WithValidator(requireHost).
			WithValidator(func(*Config) error { order = append(order, 1); return nil }).
			WithValidator(func(*Config) error { order = append(order, 2); return nil }).
			WithValidator(nil).
			Build()
		require.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("Fails", func(t *testing.T) {
		_, err := NewBuilder().
			WithText("[server]\nport = 1\n").
			WithValidator(requireHost).
			Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, errMissingHost)
		assert.Contains(t, err.Error(), "configuration validation failed")
	})
}

// TestBuilderShared tests building directly into a shared handle
func TestBuilderShared(t *testing.T) {
	shared, err := NewBuilder().WithText("a = 1").BuildShared()
	require.NoError(t, err)
	v, ok := shared.GetInt("a")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v)

	_, err = NewBuilder().WithText("a = ").BuildShared()
	assert.Error(t, err)
}

// TestBuildAndScan tests building and decoding in one step
func TestBuildAndScan(t *testing.T) {
	type Server struct {
		Host string `toml:"host"`
		Port int    `toml:"port"`
	}

	var server Server
	err := NewBuilder().
		WithText("[server]\nhost = \"0.0.0.0\"\nport = 9090\n").
		BuildAndScan("server", &server)
	require.NoError(t, err)
	assert.Equal(t, Server{Host: "0.0.0.0", Port: 9090}, server)

	err = NewBuilder().WithText("server = 1").BuildAndScan("server", &server)
	assert.Error(t, err)
}
