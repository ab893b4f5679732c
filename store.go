// FILE: lixenwraith/tomldir/store.go
package tomldir

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/google/btree"
)

// StoreReader is the read side of a Store.
type StoreReader interface {
	// Get returns the value stored under key.
	Get(key string) (Value, bool)
	// All iterates entries in the implementation's natural order.
	All() iter.Seq2[string, Value]
	Len() int
	IsEmpty() bool
}

// Store is an associative container of one table level.
// Implementations differ only in iteration order.
type Store interface {
	StoreReader
	// Insert sets key to v and returns the value it replaced, if any.
	Insert(key string, v Value) (prev Value, replaced bool)
}

// StoreFactory creates an empty Store. The loader calls it once per table.
type StoreFactory func() Store

// StoreKind names a built-in Store implementation.
type StoreKind string

const (
	// StoreHash iterates in an arbitrary order that is stable for a given content
	StoreHash StoreKind = "hash"
	// StoreOrdered iterates in insertion (document) order
	StoreOrdered StoreKind = "ordered"
	// StoreSorted iterates in ascending key order
	StoreSorted StoreKind = "sorted"
)

// ParseStoreKind resolves a store name, case-insensitively.
func ParseStoreKind(s string) (StoreKind, error) {
	switch k := StoreKind(strings.ToLower(s)); k {
	case StoreHash, StoreOrdered, StoreSorted:
		return k, nil
	case "":
		return StoreHash, nil
	}
	return "", fmt.Errorf("unknown store kind %q", s)
}

// Factory returns the constructor for k. Unknown kinds fall back to StoreHash.
func (k StoreKind) Factory() StoreFactory {
	switch k {
	case StoreOrdered:
		return NewOrderedStore
	case StoreSorted:
		return NewSortedStore
	default:
		return NewHashStore
	}
}

// -- HashStore

// HashStore is backed by a Go map. Its iteration order follows the xxhash
// of each key, so it is arbitrary but identical across reads.
type HashStore struct {
	entries map[string]Value
	order   []hashedKey // sorted by (sum, key)
}

type hashedKey struct {
	sum uint64
	key string
}

func compareHashedKey(a, b hashedKey) int {
	switch {
	case a.sum < b.sum:
		return -1
	case a.sum > b.sum:
		return 1
	}
	return strings.Compare(a.key, b.key)
}

// NewHashStore returns an empty HashStore.
func NewHashStore() Store {
	return &HashStore{entries: make(map[string]Value)}
}

func (s *HashStore) Insert(key string, v Value) (Value, bool) {
	prev, replaced := s.entries[key]
	s.entries[key] = v
	if !replaced {
		// order is updated on write only; All must stay read-only for shared readers
		hk := hashedKey{sum: xxhash.Sum64String(key), key: key}
		i, _ := slices.BinarySearchFunc(s.order, hk, compareHashedKey)
		s.order = slices.Insert(s.order, i, hk)
	}
	return prev, replaced
}

func (s *HashStore) Get(key string) (Value, bool) {
	v, ok := s.entries[key]
	return v, ok
}

func (s *HashStore) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, hk := range s.order {
			if !yield(hk.key, s.entries[hk.key]) {
				return
			}
		}
	}
}

func (s *HashStore) Len() int { return len(s.entries) }
func (s *HashStore) IsEmpty() bool { return len(s.entries) == 0 }

// -- OrderedStore

// OrderedStore iterates in insertion order. Replacing an existing key keeps its position.
type OrderedStore struct {
	m *linkedhashmap.Map
}

// NewOrderedStore returns an empty OrderedStore.
func NewOrderedStore() Store {
	return &OrderedStore{m: linkedhashmap.New()}
}

func (s *OrderedStore) Insert(key string, v Value) (Value, bool) {
	prev, replaced := s.Get(key)
	s.m.Put(key, v)
	return prev, replaced
}

func (s *OrderedStore) Get(key string) (Value, bool) {
	raw, found := s.m.Get(key)
	if !found {
		return Value{}, false
	}
	return raw.(Value), true
}

func (s *OrderedStore) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		it := s.m.Iterator()
		for it.Next() {
			if !yield(it.Key().(string), it.Value().(Value)) {
				return
			}
		}
	}
}

func (s *OrderedStore) Len() int { return s.m.Size() }
func (s *OrderedStore) IsEmpty() bool { return s.m.Empty() }

// -- SortedStore

// btreeDegree is the branching factor for SortedStore. Tables are small; a low degree keeps nodes compact.
const btreeDegree = 8

type sortedEntry struct {
	key   string
	value Value
}

func lessSortedEntry(a, b sortedEntry) bool { return a.key < b.key }

// SortedStore iterates in ascending key order.
type SortedStore struct {
	tree *btree.BTreeG[sortedEntry]
}

// NewSortedStore returns an empty SortedStore.
func NewSortedStore() Store {
	return &SortedStore{tree: btree.NewG(btreeDegree, lessSortedEntry)}
}

func (s *SortedStore) Insert(key string, v Value) (Value, bool) {
	prev, replaced := s.tree.ReplaceOrInsert(sortedEntry{key: key, value: v})
	return prev.value, replaced
}

func (s *SortedStore) Get(key string) (Value, bool) {
	e, ok := s.tree.Get(sortedEntry{key: key})
	return e.value, ok
}

func (s *SortedStore) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		s.tree.Ascend(func(e sortedEntry) bool {
			return yield(e.key, e.value)
		})
	}
}

func (s *SortedStore) Len() int { return s.tree.Len() }
func (s *SortedStore) IsEmpty() bool { return s.tree.Len() == 0 }

var (
	_ Store = (*HashStore)(nil)
	_ Store = (*OrderedStore)(nil)
	_ Store = (*SortedStore)(nil)
)
