package gen

import (
	"strings"

	"record-generator/internal/schema"
)

// goType renders a type expression as Go source. The bare optional wrapper
// is qualified with the runtime package, since schemas reference it without
// a path.
func goType(t schema.TypeExpr) string {
	switch t.Kind {
	case schema.TypePointer:
		return "*" + goType(*t.Elem)

	case schema.TypeSlice:
		return "[]" + goType(*t.Elem)

	case schema.TypeArray:
		// Raw starts with the bracketed length; rebuild around the element.
		end := strings.Index(t.Raw, "]")
		return t.Raw[:end+1] + goType(*t.Elem)

	case schema.TypeMap:
		return "map[" + goType(*t.Key) + "]" + goType(*t.Elem)

	case schema.TypeFunc:
		return t.Raw

	default:
		name := strings.Join(t.Path, ".")
		if len(t.Path) == 1 && t.Path[0] == "Option" {
			name = "record.Option"
		}

		if len(t.Args) == 0 {
			return name
		}

		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = goType(a)
		}

		return name + "[" + strings.Join(args, ", ") + "]"
	}
}

// typeParamsDecl renders a type parameter list for a declaration, or "".
func typeParamsDecl(params []schema.TypeParam) string {
	if len(params) == 0 {
		return ""
	}

	parts := make([]string, len(params))
	for i, p := range params {
		constraint := p.Constraint
		if constraint == "" {
			constraint = "any"
		}

		parts[i] = p.Name + " " + constraint
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// typeArgs renders the matching argument list for uses, or "".
func typeArgs(params []schema.TypeParam) string {
	if len(params) == 0 {
		return ""
	}

	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
