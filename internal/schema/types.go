package schema

// File represents one parsed schema source: a set of record declarations.
type File struct {
	// Version of the schema format (for future compatibility).
	Version string

	// Path is the originating file, used in diagnostics. May be empty for
	// in-memory schemas.
	Path string

	// Imports are extra import paths the declared types require, copied
	// verbatim into generated files.
	Imports []string

	// Records holds the declarations in source order.
	Records []RecordDecl
}

// RecordDecl is one raw record declaration as handed over by a front end.
// Nothing here is validated or defaulted; resolution owns that.
type RecordDecl struct {
	// Name is the declared record type name.
	Name string

	// TypeParams holds the record's generic type parameters, in order.
	TypeParams []TypeParam

	// Attrs are the record-level attribute pairs, in declaration order.
	Attrs []Attr

	// Fields are the field declarations, in declaration order.
	Fields []FieldDecl

	// Line is the declaration's position in its source file (0 if unknown).
	Line int
}

// TypeParam is a generic type parameter with its constraint.
type TypeParam struct {
	Name       string
	Constraint string // "any" when unconstrained
}

// FieldDecl is one raw field declaration.
type FieldDecl struct {
	// Name is the declared field name.
	Name string

	// Type is the declared type expression, verbatim.
	Type string

	// Attrs are the field-level attribute pairs, in declaration order.
	Attrs []Attr

	// Line is the field's position in its source file (0 if unknown).
	Line int
}

// Attr is a single raw attribute key/value pair. Bare flags carry an empty
// Value; the attribute model decides what shape each key accepts.
type Attr struct {
	Key   string
	Value string
	Line  int
}

// Lookup returns the first attribute with the given key.
func Lookup(attrs []Attr, key string) (Attr, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a, true
		}
	}

	return Attr{}, false
}
