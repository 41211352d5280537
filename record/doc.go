// Package record is the runtime library for code produced by
// record-generator.
//
// Generated record types keep their data in an associative store rather than
// fixed struct fields. This package defines the storage capability contract
// (Map, IterableMap), two stock implementations (HashMap, OrderedMap), and
// the Option wrapper that schemas use to mark optional fields.
//
// Key capabilities:
//   - Map: insert (returning previous value), get, remove, size queries
//   - IterableMap: iteration, required only when a record declares a
//     catch-all field
//   - Option: the optional-wrapper type recognized by the generator
package record
