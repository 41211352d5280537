package schema

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
)

// TypeKind classifies the outermost shape of a type expression.
type TypeKind int

const (
	TypeNamed TypeKind = iota
	TypePointer
	TypeSlice
	TypeArray
	TypeMap
	TypeFunc
)

// TypeExpr is a structurally parsed type expression. Parsing is purely
// syntactic: no package resolution, no type checking. That is enough for
// classification, which only inspects shape (see OptionInner), and it is a
// documented approximation: a user-defined type that merely shares the
// Option name is indistinguishable from the wrapper.
type TypeExpr struct {
	// Raw is the verbatim source text, normalized for whitespace.
	Raw string

	// Kind is the outermost shape.
	Kind TypeKind

	// Path holds the dotted segments of a named type ("record", "Option").
	Path []string

	// Args holds the type arguments of a named generic type.
	Args []TypeExpr

	// Key is the key type of a map expression.
	Key *TypeExpr

	// Elem is the element type of a pointer, slice, array, or map.
	Elem *TypeExpr
}

// String returns the expression's source text.
func (t TypeExpr) String() string {
	return t.Raw
}

// LastSegment returns the final path segment of a named type, or "".
func (t TypeExpr) LastSegment() string {
	if t.Kind != TypeNamed || len(t.Path) == 0 {
		return ""
	}

	return t.Path[len(t.Path)-1]
}

// OptionInner unwraps the optional wrapper: if the expression is a named
// type whose last path segment is Option with exactly one type argument,
// it returns the argument. The match is structural only.
func (t TypeExpr) OptionInner() (TypeExpr, bool) {
	if t.Kind == TypeNamed && t.LastSegment() == "Option" && len(t.Args) == 1 {
		return t.Args[0], true
	}

	return TypeExpr{}, false
}

// ComparableShape reports whether the expression can structurally serve as
// a map key. Slices, maps, and funcs are rejected; named types pass, with
// actual comparability left to the compiler at the generated package (a
// pass-through obligation, same as Equal derivation).
func (t TypeExpr) ComparableShape() bool {
	switch t.Kind {
	case TypeSlice, TypeMap, TypeFunc:
		return false
	case TypeArray:
		return t.Elem.ComparableShape()
	default:
		return true
	}
}

// ParseType parses a Go type expression.
func ParseType(s string) (TypeExpr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypeExpr{}, fmt.Errorf("empty type expression")
	}

	expr, rest, err := parseType(s)
	if err != nil {
		return TypeExpr{}, err
	}

	if rest != "" {
		return TypeExpr{}, fmt.Errorf("unexpected trailing %q in type %q", rest, s)
	}

	return expr, nil
}

// parseType consumes one type expression from the front of s and returns it
// with the unconsumed remainder.
func parseType(s string) (TypeExpr, string, error) {
	s = strings.TrimSpace(s)

	switch {
	case s == "":
		return TypeExpr{}, "", fmt.Errorf("empty type expression")

	case strings.HasPrefix(s, "*"):
		elem, rest, err := parseType(s[1:])
		if err != nil {
			return TypeExpr{}, "", err
		}

		return TypeExpr{Raw: "*" + elem.Raw, Kind: TypePointer, Elem: &elem}, rest, nil

	case strings.HasPrefix(s, "[]"):
		elem, rest, err := parseType(s[2:])
		if err != nil {
			return TypeExpr{}, "", err
		}

		return TypeExpr{Raw: "[]" + elem.Raw, Kind: TypeSlice, Elem: &elem}, rest, nil

	case strings.HasPrefix(s, "map["):
		return parseMap(s)

	case strings.HasPrefix(s, "["):
		return parseArray(s)

	case strings.HasPrefix(s, "func("):
		// Funcs are opaque: keep the raw text, nothing downstream needs
		// their structure and they never classify as optional.
		return TypeExpr{Raw: s, Kind: TypeFunc}, "", nil

	default:
		return parseNamed(s)
	}
}

func parseMap(s string) (TypeExpr, string, error) {
	inner := s[len("map["):]

	keyText, rest, err := splitBracketed(inner)
	if err != nil {
		return TypeExpr{}, "", fmt.Errorf("malformed map type %q: %w", s, err)
	}

	key, err := ParseType(keyText)
	if err != nil {
		return TypeExpr{}, "", err
	}

	elem, rest, err := parseType(rest)
	if err != nil {
		return TypeExpr{}, "", err
	}

	raw := "map[" + key.Raw + "]" + elem.Raw

	return TypeExpr{Raw: raw, Kind: TypeMap, Key: &key, Elem: &elem}, rest, nil
}

func parseArray(s string) (TypeExpr, string, error) {
	lenText, rest, err := splitBracketed(s[1:])
	if err != nil {
		return TypeExpr{}, "", fmt.Errorf("malformed array type %q: %w", s, err)
	}

	elem, rest, err := parseType(rest)
	if err != nil {
		return TypeExpr{}, "", err
	}

	raw := "[" + strings.TrimSpace(lenText) + "]" + elem.Raw

	return TypeExpr{Raw: raw, Kind: TypeArray, Elem: &elem}, rest, nil
}

func parseNamed(s string) (TypeExpr, string, error) {
	i := 0
	for i < len(s) && (isIdentByte(s[i]) || s[i] == '.') {
		i++
	}

	name, rest := s[:i], s[i:]
	if name == "" {
		return TypeExpr{}, "", fmt.Errorf("malformed type expression %q", s)
	}

	path := strings.Split(name, ".")
	for _, seg := range path {
		if !IsIdent(seg) {
			return TypeExpr{}, "", fmt.Errorf("invalid type path segment %q in %q", seg, s)
		}
	}

	expr := TypeExpr{Raw: name, Kind: TypeNamed, Path: path}

	if !strings.HasPrefix(rest, "[") {
		return expr, rest, nil
	}

	argsText, rest, err := splitBracketed(rest[1:])
	if err != nil {
		return TypeExpr{}, "", fmt.Errorf("malformed type arguments in %q: %w", s, err)
	}

	for _, argText := range splitTopLevel(argsText) {
		arg, err := ParseType(argText)
		if err != nil {
			return TypeExpr{}, "", err
		}

		expr.Args = append(expr.Args, arg)
	}

	if len(expr.Args) == 0 {
		return TypeExpr{}, "", fmt.Errorf("empty type argument list in %q", s)
	}

	argRaws := make([]string, len(expr.Args))
	for i, a := range expr.Args {
		argRaws[i] = a.Raw
	}

	expr.Raw = name + "[" + strings.Join(argRaws, ", ") + "]"

	return expr, rest, nil
}

// splitBracketed scans s for the ']' matching an already-consumed '[',
// returning the bracketed text and the remainder after the bracket.
func splitBracketed(s string) (inner, rest string, err error) {
	depth := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[:i], s[i+1:], nil
			}
		}
	}

	return "", "", fmt.Errorf("missing closing bracket")
}

// splitTopLevel splits a comma-separated list, ignoring commas nested in
// brackets.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, s[start:])
}

// IsIdent reports whether s is a valid Go identifier (and not a keyword).
func IsIdent(s string) bool {
	return token.IsIdentifier(s)
}

// IsName reports whether s has identifier shape. Keywords pass, unlike
// IsIdent: a declared field may be named "type", with the leading-underscore
// escape marker available when the schema format needs one.
func IsName(s string) bool {
	letter := false

	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case r == '_':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	// At least one letter, so the derived label is never empty.
	return letter
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
