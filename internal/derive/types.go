package derive

import (
	"record-generator/internal/resolve"
	"record-generator/internal/schema"
)

// ArtifactSet is the complete abstract description of the generated record
// package surface for one record. Field order everywhere follows the
// declaration order of the model it was derived from.
type ArtifactSet struct {
	// Record is the exported record type name.
	Record string

	// TypeParams are the record's type parameters, applied uniformly to
	// every parameterized artifact.
	TypeParams []schema.TypeParam

	Backing      BackingSpec
	Discriminant DiscriminantSpec
	Container    ContainerSpec
	Constructor  ConstructorSpec
	Accessors    []AccessorFamily
	Companion    CompanionSpec
	Derives      DeriveSet
}

// BackingSpec names the runtime map the record stores its entries in.
type BackingSpec struct {
	// Kind is the registered backing kind name.
	Kind string

	// Constructor is the runtime constructor expression, without type
	// arguments ("record.NewHashMap").
	Constructor string

	// Ordered reports deterministic iteration order.
	Ordered bool
}

// DiscriminantSpec describes the key taxonomy: one kind constant per known
// field, plus the key struct when a catch-all forces keys to carry data.
type DiscriminantSpec struct {
	// KindType is the unexported kind enum type name.
	KindType string

	// KeyType is the unexported key struct name. Empty when CheapCopy:
	// without a catch-all the kind constant itself is the map key.
	KeyType string

	// Labels holds one entry per known field, declaration order.
	Labels []DiscriminantLabel

	// CatchAll is the catch-all label, if the record declares one.
	CatchAll *CatchAllLabel

	// CheapCopy reports the plain-constant key form, derivable only when
	// no catch-all exists.
	CheapCopy bool
}

// DiscriminantLabel is one known field's kind constant.
type DiscriminantLabel struct {
	// Const is the constant name ("personKindFirstName").
	Const string

	// Field is the declared field name this label belongs to.
	Field string

	// Label is the exported discriminant label.
	Label string
}

// CatchAllLabel is the catch-all kind constant together with the key type
// its entries are addressed by.
type CatchAllLabel struct {
	Const string
	Field string
	Label string

	// Key is the per-entry key type carried inside the key struct.
	Key schema.TypeExpr
}

// ContainerSpec describes the stored-value representation: one interface
// implemented by one pointer-wrapper shape per distinct inner type.
type ContainerSpec struct {
	// Interface is the unexported container interface name.
	Interface string

	// Shapes holds one wrapper per distinct stored type, ordered by first
	// appearance in declaration order.
	Shapes []ContainerShape
}

// ContainerShape is one stored-type wrapper.
type ContainerShape struct {
	// Type is the unexported wrapper struct name ("personValString").
	Type string

	// Inner is the stored type.
	Inner schema.TypeExpr

	// Fields lists the declared names of every field stored through this
	// shape, declaration order.
	Fields []string
}

// ConstructorSpec is the generated constructor: exactly the required fields
// as parameters, declaration order.
type ConstructorSpec struct {
	Name   string
	Params []Param
}

// Param is one constructor parameter.
type Param struct {
	// Name is the parameter identifier, derived from the field label.
	Name string

	// Field is the declared field name the parameter populates.
	Field string

	// Type is the parameter type.
	Type schema.TypeExpr
}

// AccessorFamily is the full method family generated for one field. Which
// names are set follows the field's kind; empty names mean the method is
// not generated.
type AccessorFamily struct {
	// Field is the declared field name.
	Field string

	Kind resolve.FieldKind

	// Names are the finalized method identifiers.
	Names resolve.Names

	// Inner is the stored type.
	Inner schema.TypeExpr

	// Key is the catch-all entry key type. Only set for unknown fields.
	Key schema.TypeExpr

	// Shape is the container wrapper type storing this field's values.
	Shape string

	// Const is the field's kind constant.
	Const string
}

// CompanionSpec is the whole-record extraction type returned by Decompose.
type CompanionSpec struct {
	// Type is the exported companion type name ("PersonFields").
	Type string

	// Method is the extraction method name on the record.
	Method string

	// Fields holds one entry per declared field, declaration order.
	Fields []CompanionField
}

// CompanionField is one extracted field: a one-shot Take accessor over an
// unexported optional slot.
type CompanionField struct {
	// Name is the unexported slot identifier.
	Name string

	// Field is the declared field name.
	Field string

	// Take is the one-shot accessor name.
	Take string

	Kind resolve.FieldKind

	// Inner is the slot's payload type. For the catch-all the slot holds
	// the drained backing map instead.
	Inner schema.TypeExpr

	// Key is the catch-all entry key type. Only set for unknown fields.
	Key schema.TypeExpr
}

// DeriveSet lists the conditional capabilities the generated record carries.
type DeriveSet struct {
	// Clone derives a deep-copy method over the backing map.
	Clone bool

	// Equal derives entry-wise comparison. Comparability of the stored
	// types is checked by the compiler at the generated package.
	Equal bool

	// Default reports zero-value usability, derived only when every field
	// is optional.
	Default bool

	// Len derives Len and IsEmpty counting all present entries.
	Len bool
}
