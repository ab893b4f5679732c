// FILE: lixenwraith/tomldir/value.go
package tomldir

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindNull is the zero Kind. TOML has no null; JSON and YAML documents produce it.
	KindNull Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBool
	KindDatetime
	KindArray
	KindTable
)

var kindNames = [...]string{
	KindNull:     "null",
	KindString:   "string",
	KindInteger:  "integer",
	KindFloat:    "float",
	KindBool:     "bool",
	KindDatetime: "datetime",
	KindArray:    "array",
	KindTable:    "table",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is an immutable node of a parsed configuration document.
// The zero Value is null.
type Value struct {
	kind Kind
	raw  any
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, raw: s} }

// IntValue returns an integer Value.
func IntValue(i int64) Value { return Value{kind: KindInteger, raw: i} }

// FloatValue returns a float Value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, raw: f} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, raw: b} }

// TimeValue returns a datetime Value.
func TimeValue(t time.Time) Value { return Value{kind: KindDatetime, raw: t} }

// ArrayValue returns an array Value. The slice is owned by the Value afterwards.
func ArrayValue(elems []Value) Value { return Value{kind: KindArray, raw: elems} }

// TableValue returns a table Value backed by s. The store is owned by the Value afterwards.
func TableValue(s StoreReader) Value { return Value{kind: KindTable, raw: s} }

// NullValue returns the null Value.
func NullValue() Value { return Value{} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by v, if v is a string.
func (v Value) AsString() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok && v.kind == KindString
}

// AsInt returns the integer held by v, if v is an integer. Floats are not converted.
func (v Value) AsInt() (int64, bool) {
	i, ok := v.raw.(int64)
	return i, ok && v.kind == KindInteger
}

// AsFloat returns the float held by v, if v is a float. Integers are not converted.
func (v Value) AsFloat() (float64, bool) {
	f, ok := v.raw.(float64)
	return f, ok && v.kind == KindFloat
}

// AsBool returns the boolean held by v, if v is a boolean.
func (v Value) AsBool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok && v.kind == KindBool
}

// AsTime returns the time held by v, if v is a datetime.
func (v Value) AsTime() (time.Time, bool) {
	t, ok := v.raw.(time.Time)
	return t, ok && v.kind == KindDatetime
}

// AsArray returns the elements of v, if v is an array.
// The returned slice must not be modified.
func (v Value) AsArray() ([]Value, bool) {
	a, ok := v.raw.([]Value)
	return a, ok && v.kind == KindArray
}

// AsTable returns the store backing v, if v is a table.
func (v Value) AsTable() (StoreReader, bool) {
	s, ok := v.raw.(StoreReader)
	return s, ok && v.kind == KindTable
}

// Equal reports whether v and other hold the same variant and content.
// Tables compare by key set and values, regardless of iteration order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString, KindInteger, KindBool:
		return v.raw == other.raw
	case KindFloat:
		a, b := v.raw.(float64), other.raw.(float64)
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	case KindDatetime:
		return v.raw.(time.Time).Equal(other.raw.(time.Time))
	case KindArray:
		a, b := v.raw.([]Value), other.raw.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindTable:
		a, b := v.raw.(StoreReader), other.raw.(StoreReader)
		if a.Len() != b.Len() {
			return false
		}
		for key, av := range a.All() {
			bv, ok := b.Get(key)
			if !ok || !av.Equal(bv) {
				return false
			}
		}
		return true
	}
	panic(fmt.Sprintf("tomldir: unknown value kind %d", v.kind))
}

// String renders a leaf in the canonical form used for flattening.
// Arrays and tables render as a compact inline summary.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.raw.(string)
	case KindInteger:
		return strconv.FormatInt(v.raw.(int64), 10)
	case KindFloat:
		return formatFloat(v.raw.(float64))
	case KindBool:
		return strconv.FormatBool(v.raw.(bool))
	case KindDatetime:
		return formatTime(v.raw.(time.Time))
	case KindArray:
		arr := v.raw.([]Value)
		parts := make([]string, len(arr))
		for i, e := range arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindTable:
		tbl := v.raw.(StoreReader)
		parts := make([]string, 0, tbl.Len())
		for key, e := range tbl.All() {
			parts = append(parts, key+" = "+e.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	panic(fmt.Sprintf("tomldir: unknown value kind %d", v.kind))
}

// formatFloat renders f in decimal notation, keeping a fractional part
// so that integral floats stay distinguishable from integers.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// formatTime renders t as RFC 3339. TOML local date/time values, which the
// parser tags with the "datetime-local", "date-local" and "time-local"
// zones, render without an offset.
func formatTime(t time.Time) string {
	switch t.Location().String() {
	case "datetime-local":
		return t.Format("2006-01-02T15:04:05.999999999")
	case "date-local":
		return t.Format(time.DateOnly)
	case "time-local":
		return t.Format("15:04:05.999999999")
	}
	return t.Format(time.RFC3339Nano)
}
