package record

import "iter"

// HashMap is the default backing store: a thin wrapper around a Go map.
// Iteration order is unspecified.
type HashMap[K comparable, V any] struct {
	m map[K]V
}

// NewHashMap creates an empty HashMap with a capacity hint. A hint of zero
// is the plain create-empty form.
func NewHashMap[K comparable, V any](capacity int) *HashMap[K, V] {
	return &HashMap[K, V]{m: make(map[K]V, capacity)}
}

// Insert stores value under key, returning the previous value if replaced.
func (h *HashMap[K, V]) Insert(key K, value V) (V, bool) {
	prev, ok := h.m[key]
	h.m[key] = value

	return prev, ok
}

// Get returns the value for key and whether it was present.
func (h *HashMap[K, V]) Get(key K) (V, bool) {
	v, ok := h.m[key]
	return v, ok
}

// Remove deletes key, returning the removed value if it was present.
func (h *HashMap[K, V]) Remove(key K) (V, bool) {
	v, ok := h.m[key]
	if ok {
		delete(h.m, key)
	}

	return v, ok
}

// Len returns the number of entries.
func (h *HashMap[K, V]) Len() int {
	return len(h.m)
}

// IsEmpty reports whether the map has no entries.
func (h *HashMap[K, V]) IsEmpty() bool {
	return len(h.m) == 0
}

// All returns an iterator over every key/value pair, in unspecified order.
func (h *HashMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, v := range h.m {
			if !yield(k, v) {
				return
			}
		}
	}
}
