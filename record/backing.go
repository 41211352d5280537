package record

import "iter"

// Map is the capability contract a type must satisfy to back a generated
// record. It is deliberately small: generated code needs insertion with
// replacement reporting, lookup, removal, and size queries, nothing more.
//
// Implementations are free to be hash-indexed, ordered, or anything else;
// the generator selects one through its backing-kind registry and never
// depends on a concrete type.
type Map[K comparable, V any] interface {
	// Insert stores value under key and returns the previous value
	// together with true if the key was already present.
	Insert(key K, value V) (V, bool)

	// Get returns the value for key and whether it was present.
	Get(key K) (V, bool)

	// Remove deletes key and returns the removed value together with
	// true if the key was present.
	Remove(key K) (V, bool)

	// Len returns the number of entries currently present.
	Len() int

	// IsEmpty reports whether the map contains no entries.
	IsEmpty() bool
}

// IterableMap extends Map with iteration. A backing kind must satisfy this
// contract only when the record it backs declares a catch-all field, since
// only the catch-all accessor family and whole-record decomposition walk
// the store.
type IterableMap[K comparable, V any] interface {
	Map[K, V]

	// All returns an iterator over every key/value pair. Whether the
	// order is deterministic is a property of the backing kind.
	All() iter.Seq2[K, V]
}
