// FILE: lixenwraith/tomldir/flatten.go
package tomldir

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
)

// FlatEntry is one leaf of a flattened configuration.
type FlatEntry struct {
	Key   string
	Value string
}

// Reader is the read surface shared by Config and SharedConfig.
type Reader interface {
	Get(path string) (Value, bool)
	FlatEntries() iter.Seq2[string, string]
}

// flatFrame is a pending node of the flattening walk.
type flatFrame struct {
	path  string
	value Value
}

// FlattenStore walks root depth-first and yields one (dotted key, rendered
// value) pair per leaf. Tables are visited in their own iteration order and
// array elements under their zero-based index. Empty tables and arrays yield
// nothing. The walk uses an explicit stack, so nesting depth is not limited
// by the goroutine stack.
func FlattenStore(root StoreReader) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for key, leaf := range flattenLeaves(root) {
			if !yield(key, leaf.String()) {
				return
			}
		}
	}
}

// flattenLeaves is the walk behind FlattenStore, yielding leaves unrendered.
func flattenLeaves(root StoreReader) iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		stack := pushTable(nil, "", root)
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			switch f.value.kind {
			case KindTable:
				stack = pushTable(stack, f.path, f.value.raw.(StoreReader))
			case KindArray:
				arr := f.value.raw.([]Value)
				for i := len(arr) - 1; i >= 0; i-- {
					stack = append(stack, flatFrame{path: joinPath(f.path, strconv.Itoa(i)), value: arr[i]})
				}
			case KindNull, KindString, KindInteger, KindFloat, KindBool, KindDatetime:
				if !yield(f.path, f.value) {
					return
				}
			default:
				panic(fmt.Sprintf("tomldir: unknown value kind %d at %q", f.value.kind, f.path))
			}
		}
	}
}

// pushTable pushes the entries of t so that the first entry is popped first.
func pushTable(stack []flatFrame, prefix string, t StoreReader) []flatFrame {
	start := len(stack)
	for key, v := range t.All() {
		stack = append(stack, flatFrame{path: joinPath(prefix, key), value: v})
	}
	slices.Reverse(stack[start:])
	return stack
}

// FlattenInto hands the flattened entries of r to collect and returns the
// container it builds, e.g. FlattenInto(cfg, maps.Collect[string, string])
// or FlattenInto(cfg, CollectEntries).
func FlattenInto[C any](r Reader, collect func(iter.Seq2[string, string]) C) C {
	return collect(r.FlatEntries())
}

// CollectEntries gathers entries into a slice, preserving their order.
func CollectEntries(seq iter.Seq2[string, string]) []FlatEntry {
	var entries []FlatEntry
	for k, v := range seq {
		entries = append(entries, FlatEntry{Key: k, Value: v})
	}
	return entries
}

// collectMap gathers entries into the default flat map.
func collectMap(seq iter.Seq2[string, string]) map[string]string {
	flat := make(map[string]string)
	for k, v := range seq {
		flat[k] = v
	}
	return flat
}

// FlatEntries yields the flattened configuration in store order.
func (c *Config) FlatEntries() iter.Seq2[string, string] {
	return FlattenStore(c.store)
}

// Flatten returns the configuration as a map of dotted keys to rendered values.
func (c *Config) Flatten() map[string]string {
	return collectMap(c.FlatEntries())
}
