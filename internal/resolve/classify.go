package resolve

import (
	"fmt"

	"record-generator/internal/diagnostic"
)

// classify assigns the field's kind and unwraps its stored type.
//
// A field is the catch-all iff it carries the key attribute, which requires
// the declared type to be the optional wrapper of the entry value type.
// Otherwise a declared Option[T] is optional and anything else is required.
//
// The wrapper match is structural (see schema.TypeExpr.OptionInner): a
// user-defined type that merely shares the Option name is accepted, which
// can misclassify. Deliberate simplification.
func classify(field *FieldConfig, record string, diags *diagnostic.Diagnostics) {
	if field.Declared.Raw == "" {
		// Type failed to parse; already reported.
		return
	}

	if field.overrides.keyType != nil {
		inner, ok := field.Declared.OptionInner()
		if !ok {
			diags.AddError("catch_all_not_optional",
				fmt.Sprintf("catch-all field must be declared Option[V], got %q", field.Declared.Raw),
				record, field.Name)

			return
		}

		field.Class = Classification{
			Kind:  FieldUnknown,
			Inner: inner,
			Key:   *field.overrides.keyType,
		}

		return
	}

	if inner, ok := field.Declared.OptionInner(); ok {
		field.Class = Classification{Kind: FieldOptional, Inner: inner}
		return
	}

	field.Class = Classification{Kind: FieldRequired, Inner: field.Declared}
}
