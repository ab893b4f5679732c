// File: lixenwraith/tomldir/io.go
package tomldir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the configuration file at path.
// An empty opts.Format detects the format from the extension, then the content.
func LoadFile(path string, opts LoadOptions) (*Config, error) {
	if opts.Format == "" {
		opts.Format = FormatAuto
	}
	opts = opts.withDefaults()

	data, err := readFile(path, opts.MaxFileSize)
	if err != nil {
		return nil, err
	}
	return load(data, path, opts)
}

// readFile reads path, refusing files larger than maxSize.
func readFile(path string, maxSize int64) ([]byte, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat config file '%s': %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("config path '%s' is a directory", path)
	}
	if fileInfo.Size() > maxSize {
		return nil, fmt.Errorf("%w: '%s' exceeds %d bytes", ErrFileTooLarge, path, maxSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file '%s': %w", path, err)
	}
	defer file.Close()

	// The file may grow between Stat and read; read one byte past the limit to notice
	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: '%s' exceeds %d bytes", ErrFileTooLarge, path, maxSize)
	}
	return data, nil
}

// detectFormat picks a format from the path extension, falling back to content.
func detectFormat(path string, data []byte) Format {
	if format := detectFileFormat(path); format != "" {
		return format
	}
	return detectFormatFromContent(data)
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing.
// YAML accepts most plain text as a scalar, so it is tried last and only
// counts when it yields a mapping.
func detectFormatFromContent(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var jsonTest any
		if err := json.Unmarshal(trimmed, &jsonTest); err == nil {
			return FormatJSON
		}
	}

	var tomlTest map[string]any
	if _, err := toml.Decode(string(data), &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		if _, isMap := yamlTest.(map[string]any); isMap {
			return FormatYAML
		}
	}
	return ""
}
