package resolve

import (
	"record-generator/internal/schema"
)

// FieldKind is a field's classification.
//
//go:generate go tool stringer -type=FieldKind -linecomment
type FieldKind int

const (
	// FieldRequired fields must be present at all times after construction.
	FieldRequired FieldKind = iota // required
	// FieldOptional fields encode presence through the backing map; the
	// declared type is Option[T], stored unwrapped.
	FieldOptional // optional
	// FieldUnknown is the catch-all: zero or more dynamically-keyed entries.
	FieldUnknown // unknown
)

// Classification pairs a field kind with the types resolution unwrapped.
type Classification struct {
	Kind FieldKind

	// Inner is the type stored in the backing map: the declared type for
	// required fields, the unwrapped Option argument otherwise.
	Inner schema.TypeExpr

	// Key is the catch-all key type. Only set for FieldUnknown.
	Key schema.TypeExpr
}

// RecordConfig is the fully-resolved record-level configuration.
type RecordConfig struct {
	Name       string
	TypeParams []schema.TypeParam

	// Backing is the resolved backing kind from the registry.
	Backing schema.BackingKind

	// Constructor is the finalized constructor function name.
	Constructor string

	DeriveClone bool
	DeriveEqual bool
	WithLen     bool
}

// Names holds the finalized public identifiers for one field's accessor
// family. Entries that a field's classification does not generate are empty.
type Names struct {
	// Label is the discriminant label derived from the field name.
	Label string

	Getter    string
	PtrGetter string
	Setter    string
	Remover   string
	Take      string

	// Add and Iter belong to the catch-all family only.
	Add  string
	Iter string
}

// All returns every non-empty accessor identifier (the label excluded:
// labels live in their own namespace and are checked separately).
func (n Names) All() []string {
	var out []string

	for _, name := range []string{n.Getter, n.PtrGetter, n.Setter, n.Remover, n.Take, n.Add, n.Iter} {
		if name != "" {
			out = append(out, name)
		}
	}

	return out
}

// FieldConfig is one fully-resolved field. It is owned by its Model and
// never shared across records.
type FieldConfig struct {
	// Name is the declared field name, verbatim.
	Name string

	// Index is the field's position in declaration order.
	Index int

	// Declared is the parsed declared type.
	Declared schema.TypeExpr

	// Class is the field's classification.
	Class Classification

	// Names are the finalized identifiers.
	Names Names

	// Line is the declaration's source position (0 if unknown).
	Line int

	overrides overrides
}

// overrides carries raw attribute state between resolution stages.
type overrides struct {
	get     string
	getPtr  string
	set     string
	remove  string
	keyType *schema.TypeExpr // catch-all marker
}

// Model is the resolved record: configuration plus ordered fields with
// finalized identifiers. A Model only exists if validation passed.
type Model struct {
	Config RecordConfig
	Fields []FieldConfig
}

// Unknown returns the catch-all field, if the record declares one.
func (m *Model) Unknown() (*FieldConfig, bool) {
	for i := range m.Fields {
		if m.Fields[i].Class.Kind == FieldUnknown {
			return &m.Fields[i], true
		}
	}

	return nil, false
}

// Required returns the required fields in declaration order.
func (m *Model) Required() []*FieldConfig {
	var out []*FieldConfig

	for i := range m.Fields {
		if m.Fields[i].Class.Kind == FieldRequired {
			out = append(out, &m.Fields[i])
		}
	}

	return out
}

// Known returns every non-catch-all field in declaration order.
func (m *Model) Known() []*FieldConfig {
	var out []*FieldConfig

	for i := range m.Fields {
		if m.Fields[i].Class.Kind != FieldUnknown {
			out = append(out, &m.Fields[i])
		}
	}

	return out
}

// AllOptional reports whether no field is required, which is the condition
// for deriving default construction.
func (m *Model) AllOptional() bool {
	for i := range m.Fields {
		if m.Fields[i].Class.Kind == FieldRequired {
			return false
		}
	}

	return true
}
