package resolve

import (
	"strings"

	"record-generator/internal/diagnostic"
)

// resolveNames computes the finalized identifiers for every field.
// Precedence: explicit per-field override > computed default. Struct-level
// configuration only affects the constructor name, resolved earlier.
func resolveNames(fields []FieldConfig, record string, diags *diagnostic.Diagnostics) {
	for i := range fields {
		field := &fields[i]
		label := Label(field.Name)

		names := Names{Label: label}

		names.Getter = pick(field.overrides.get, label)
		names.PtrGetter = pick(field.overrides.getPtr, names.Getter+"Ptr")
		names.Take = "Take" + label

		switch field.Class.Kind {
		case FieldOptional:
			names.Setter = pick(field.overrides.set, "Set"+label)
			names.Remover = pick(field.overrides.remove, "Remove"+label)

		case FieldUnknown:
			// Catch-all fields get Add instead of a setter.
			if field.overrides.set != "" {
				diags.AddWarning("set_on_unknown",
					"set override has no effect on a catch-all field",
					record, field.Name)
			}

			names.Remover = pick(field.overrides.remove, "Remove"+label)
			names.Add = "Add" + label
			names.Iter = names.Getter + "s"

		case FieldRequired:
			names.Setter = pick(field.overrides.set, "Set"+label)

			if field.overrides.remove != "" {
				diags.AddWarning("remove_on_required",
					"remove override has no effect on a required field",
					record, field.Name)
			}
		}

		field.Names = names
	}
}

// Label derives a discriminant label from a declared field name: the
// leading-underscore escape marker is stripped, then each snake_case word
// is title-cased. The result is used verbatim, so "type" and "_type" both
// yield the stable label "Type".
func Label(name string) string {
	name = strings.TrimPrefix(name, "_")

	parts := strings.Split(name, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}

		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}

	return strings.Join(parts, "")
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}

	return fallback
}
