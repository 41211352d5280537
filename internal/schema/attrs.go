package schema

import "sort"

// ValueShape describes what kind of value an attribute key accepts.
type ValueShape int

const (
	// ShapeFlag is a boolean toggle: bare key, "true", or "false".
	ShapeFlag ValueShape = iota
	// ShapeIdent is a Go identifier (method or function name).
	ShapeIdent
	// ShapeType is a type expression.
	ShapeType
	// ShapeBackingKind is the name of a registered backing kind.
	ShapeBackingKind
)

// AttrSpec declares one recognized attribute key. The resolver consults this
// table; every key overrides exactly one default, and keys outside the table
// are hard failures.
type AttrSpec struct {
	Key   string
	Shape ValueShape
	Doc   string
}

// RecordAttrs is the attribute model for record-level configuration.
var RecordAttrs = []AttrSpec{
	{Key: "backing", Shape: ShapeBackingKind, Doc: "backing map kind (default hash)"},
	{Key: "constructor", Shape: ShapeIdent, Doc: "constructor function name (default New<Record>)"},
	{Key: "with_len", Shape: ShapeFlag, Doc: "generate Len and IsEmpty methods"},
	{Key: "no_clone", Shape: ShapeFlag, Doc: "skip Clone derivation"},
	{Key: "no_equal", Shape: ShapeFlag, Doc: "skip Equal derivation"},
}

// FieldAttrs is the attribute model for field-level configuration.
var FieldAttrs = []AttrSpec{
	{Key: "get", Shape: ShapeIdent, Doc: "getter name override"},
	{Key: "get_ptr", Shape: ShapeIdent, Doc: "pointer getter name override"},
	{Key: "set", Shape: ShapeIdent, Doc: "setter name override"},
	{Key: "remove", Shape: ShapeIdent, Doc: "remover name override"},
	{Key: "key", Shape: ShapeType, Doc: "catch-all marker: key type for unknown entries"},
}

// LookupRecordAttr returns the spec for a record-level key.
func LookupRecordAttr(key string) (AttrSpec, bool) {
	return lookupSpec(RecordAttrs, key)
}

// LookupFieldAttr returns the spec for a field-level key.
func LookupFieldAttr(key string) (AttrSpec, bool) {
	return lookupSpec(FieldAttrs, key)
}

// RecordAttrKeys returns every recognized record-level key.
func RecordAttrKeys() []string {
	return specKeys(RecordAttrs)
}

// FieldAttrKeys returns every recognized field-level key.
func FieldAttrKeys() []string {
	return specKeys(FieldAttrs)
}

func lookupSpec(specs []AttrSpec, key string) (AttrSpec, bool) {
	for _, s := range specs {
		if s.Key == key {
			return s, true
		}
	}

	return AttrSpec{}, false
}

func specKeys(specs []AttrSpec) []string {
	keys := make([]string, len(specs))
	for i, s := range specs {
		keys[i] = s.Key
	}

	return keys
}

// BackingKind describes one registered backing-map kind. The set is closed
// at any point in time but extensible through RegisterBackingKind; nothing
// downstream switches on kind names.
type BackingKind struct {
	// Name is the value accepted by the backing attribute.
	Name string

	// Constructor is the runtime constructor expression the emitter calls,
	// e.g. "record.NewHashMap". It must accept a capacity hint and return a
	// type satisfying record.Map (and record.IterableMap when a catch-all
	// field is present).
	Constructor string

	// Ordered reports whether iteration order is deterministic.
	Ordered bool
}

// DefaultBackingKind is used when a record declares no backing attribute.
const DefaultBackingKind = "hash"

var backingKinds = map[string]BackingKind{
	"hash":    {Name: "hash", Constructor: "record.NewHashMap", Ordered: false},
	"ordered": {Name: "ordered", Constructor: "record.NewOrderedMap", Ordered: true},
}

// LookupBackingKind returns the registered kind for a backing attribute value.
func LookupBackingKind(name string) (BackingKind, bool) {
	k, ok := backingKinds[name]
	return k, ok
}

// RegisterBackingKind adds or replaces a backing kind. Custom kinds must
// satisfy the record.Map contract.
func RegisterBackingKind(k BackingKind) {
	backingKinds[k.Name] = k
}

// BackingKindNames returns the registered kind names, sorted.
func BackingKindNames() []string {
	names := make([]string, 0, len(backingKinds))
	for name := range backingKinds {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
