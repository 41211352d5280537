package record

import (
	"iter"
	"slices"
)

// OrderedMap is a backing store with deterministic, insertion-ordered
// iteration. Re-inserting an existing key keeps its original position.
//
// Lookup is a map index; removal compacts the key slice, so Remove is O(n)
// in the number of entries. Records hold a handful of fields, which is the
// regime this trades for.
type OrderedMap[K comparable, V any] struct {
	m    map[K]V
	keys []K
}

// NewOrderedMap creates an empty OrderedMap with a capacity hint.
func NewOrderedMap[K comparable, V any](capacity int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		m:    make(map[K]V, capacity),
		keys: make([]K, 0, capacity),
	}
}

// Insert stores value under key, returning the previous value if replaced.
func (o *OrderedMap[K, V]) Insert(key K, value V) (V, bool) {
	prev, ok := o.m[key]
	if !ok {
		o.keys = append(o.keys, key)
	}

	o.m[key] = value

	return prev, ok
}

// Get returns the value for key and whether it was present.
func (o *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := o.m[key]
	return v, ok
}

// Remove deletes key, returning the removed value if it was present.
func (o *OrderedMap[K, V]) Remove(key K) (V, bool) {
	v, ok := o.m[key]
	if !ok {
		return v, false
	}

	delete(o.m, key)

	if i := slices.Index(o.keys, key); i >= 0 {
		o.keys = slices.Delete(o.keys, i, i+1)
	}

	return v, true
}

// Len returns the number of entries.
func (o *OrderedMap[K, V]) Len() int {
	return len(o.m)
}

// IsEmpty reports whether the map has no entries.
func (o *OrderedMap[K, V]) IsEmpty() bool {
	return len(o.m) == 0
}

// All returns an iterator over every key/value pair in insertion order.
func (o *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range o.keys {
			if !yield(k, o.m[k]) {
				return
			}
		}
	}
}
