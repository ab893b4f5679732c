// File: lixenwraith/tomldir/type.go
package tomldir

import (
	"strings"
	"time"
)

// lookup resolves a dotted path against root. Each segment selects a key of
// a table or an index of an array; any miss yields absent.
// Bracketed indexes ("runners[0].name") are tried when the plain split misses.
func lookup(root StoreReader, path string) (Value, bool) {
	if v, ok := walk(root, strings.Split(path, ".")); ok {
		return v, true
	}
	if strings.ContainsRune(path, '[') {
		return walk(root, splitIndexed(path))
	}
	return Value{}, false
}

func walk(root StoreReader, segments []string) (Value, bool) {
	cur := TableValue(root)
	for _, segment := range segments {
		switch cur.kind {
		case KindTable:
			next, ok := cur.raw.(StoreReader).Get(segment)
			if !ok {
				return Value{}, false
			}
			cur = next
		case KindArray:
			arr := cur.raw.([]Value)
			i, ok := parseIndex(segment, len(arr))
			if !ok {
				return Value{}, false
			}
			cur = arr[i]
		default:
			// A leaf with segments remaining
			return Value{}, false
		}
	}
	return cur, true
}

// Get retrieves the value at a dotted path such as "database.port" or "tags.0".
func (c *Config) Get(path string) (Value, bool) {
	return lookup(c.store, path)
}

// Has reports whether path resolves to a value.
func (c *Config) Has(path string) bool {
	_, ok := c.Get(path)
	return ok
}

// GetString retrieves a string. Values of any other kind are reported absent.
func (c *Config) GetString(path string) (string, bool) {
	return getString(c.store, path)
}

// GetInt retrieves an integer. Floats are never truncated into integers.
func (c *Config) GetInt(path string) (int64, bool) {
	return getInt(c.store, path)
}

// GetFloat retrieves a float. Integers are never widened into floats.
func (c *Config) GetFloat(path string) (float64, bool) {
	return getFloat(c.store, path)
}

// GetBool retrieves a boolean.
func (c *Config) GetBool(path string) (bool, bool) {
	return getBool(c.store, path)
}

// GetTime retrieves a datetime.
func (c *Config) GetTime(path string) (time.Time, bool) {
	return getTime(c.store, path)
}

// GetArray retrieves the elements of an array.
func (c *Config) GetArray(path string) ([]Value, bool) {
	return getArray(c.store, path)
}

// GetTable retrieves a nested table.
func (c *Config) GetTable(path string) (StoreReader, bool) {
	return getTable(c.store, path)
}

func getString(root StoreReader, path string) (string, bool) {
	if v, ok := lookup(root, path); ok {
		return v.AsString()
	}
	return "", false
}

func getInt(root StoreReader, path string) (int64, bool) {
	if v, ok := lookup(root, path); ok {
		return v.AsInt()
	}
	return 0, false
}

func getFloat(root StoreReader, path string) (float64, bool) {
	if v, ok := lookup(root, path); ok {
		return v.AsFloat()
	}
	return 0, false
}

func getBool(root StoreReader, path string) (bool, bool) {
	if v, ok := lookup(root, path); ok {
		return v.AsBool()
	}
	return false, false
}

func getTime(root StoreReader, path string) (time.Time, bool) {
	if v, ok := lookup(root, path); ok {
		return v.AsTime()
	}
	return time.Time{}, false
}

func getArray(root StoreReader, path string) ([]Value, bool) {
	if v, ok := lookup(root, path); ok {
		return v.AsArray()
	}
	return nil, false
}

func getTable(root StoreReader, path string) (StoreReader, bool) {
	if v, ok := lookup(root, path); ok {
		return v.AsTable()
	}
	return nil, false
}
