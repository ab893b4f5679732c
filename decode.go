// FILE: lixenwraith/tomldir/decode.go
package tomldir

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

const defaultTagName = "toml"

// Scan decodes the table at basePath into target, a non-nil pointer to a
// struct or map. Struct fields are matched by their `toml` tag. An empty
// basePath decodes the whole document; a missing basePath decodes an empty table.
func (c *Config) Scan(basePath string, target any) error {
	return scan(c.store, basePath, defaultTagName, target)
}

// ScanTag is Scan with a custom struct tag name, e.g. "json" or "yaml".
func (c *Config) ScanTag(basePath, tagName string, target any) error {
	return scan(c.store, basePath, tagName, target)
}

// scan is the single authoritative function for decoding configuration
// into target structures. All public decoding methods delegate to this.
func scan(root StoreReader, basePath, tagName string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	section := map[string]any{}
	if basePath == "" {
		section = toNative(TableValue(root)).(map[string]any)
	} else if v, found := lookup(root, basePath); found {
		m, ok := toNative(v).(map[string]any)
		if !ok {
			return fmt.Errorf("path %q refers to non-table value (kind %s)", basePath, v.Kind())
		}
		section = m
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          tagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
		ZeroFields:       true,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(section); err != nil {
		return fmt.Errorf("decode failed for path %q: %w", basePath, err)
	}
	return nil
}

// toNative converts a Value tree into plain Go maps, slices and scalars.
func toNative(v Value) any {
	switch v.kind {
	case KindTable:
		tbl := v.raw.(StoreReader)
		m := make(map[string]any, tbl.Len())
		for key, child := range tbl.All() {
			m[key] = toNative(child)
		}
		return m
	case KindArray:
		arr := v.raw.([]Value)
		s := make([]any, len(arr))
		for i, child := range arr {
			s[i] = toNative(child)
		}
		return s
	}
	return v.raw
}

// decodeHook converts configuration leaves into the richer field types
// structs commonly declare.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		datetimeToStringHookFunc(),
		stringParseHookFunc(45, func(s string) (*net.IP, error) {
			ip := net.ParseIP(s)
			if ip == nil {
				return nil, fmt.Errorf("not an IP address")
			}
			return &ip, nil
		}),
		stringParseHookFunc(49, func(s string) (*net.IPNet, error) {
			_, ipnet, err := net.ParseCIDR(s)
			return ipnet, err
		}),
		stringParseHookFunc(2048, url.Parse),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// datetimeToStringHookFunc renders datetime leaves decoded into string
// fields the same way Flatten does, keeping TOML local dates offset-free.
func datetimeToStringHookFunc() mapstructure.DecodeHookFuncType {
	timeType := reflect.TypeFor[time.Time]()
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f != timeType || t.Kind() != reflect.String {
			return data, nil
		}
		return formatTime(data.(time.Time)), nil
	}
}

// stringParseHookFunc decodes string leaves into T or *T with parse.
// Inputs longer than maxLen are rejected before parsing.
func stringParseHookFunc[T any](maxLen int, parse func(string) (*T, error)) mapstructure.DecodeHookFuncType {
	want := reflect.TypeFor[T]()
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || (t != want && t != reflect.PointerTo(want)) {
			return data, nil
		}

		str := reflect.ValueOf(data).String()
		if len(str) > maxLen {
			return nil, fmt.Errorf("%s value too long: %d bytes", want, len(str))
		}
		v, err := parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", want, str, err)
		}
		if t.Kind() == reflect.Ptr {
			return v, nil
		}
		return *v, nil
	}
}
