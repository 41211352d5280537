package resolve

import (
	"fmt"
	"sort"
	"strings"

	"record-generator/internal/common"
	"record-generator/internal/diagnostic"
)

// validate checks the global invariants over the resolved, named model.
// Every violation is a hard failure naming the offending field(s); partial
// models are never handed to derivation.
func validate(cfg RecordConfig, fields []FieldConfig, record string, diags *diagnostic.Diagnostics) {
	validateSingleCatchAll(fields, record, diags)
	validateCatchAllKey(fields, record, diags)
	validateNameCollisions(cfg, fields, record, diags)
	validateReservedNames(fields, record, diags)
}

// reservedNames is the fixed method surface every generated record carries
// or may carry. Accessor names may not shadow it.
var reservedNames = map[string]bool{
	"Decompose":   true,
	"String":      true,
	"Equal":       true,
	"Clone":       true,
	"Len":         true,
	"IsEmpty":     true,
	"getEntry":    true,
	"removeEntry": true,
	"entryEqual":  true,
	"initMap":     true,
	"storeSize":   true,
}

func validateReservedNames(fields []FieldConfig, record string, diags *diagnostic.Diagnostics) {
	for i := range fields {
		field := &fields[i]

		for _, name := range field.Names.All() {
			if reservedNames[name] {
				diags.AddError("reserved_name",
					fmt.Sprintf("accessor name %q is reserved for the generated record surface", name),
					record, field.Name)
			}
		}
	}
}

// validateSingleCatchAll enforces at most one catch-all field. Every
// offending field is reported; the resolver never silently picks one.
func validateSingleCatchAll(fields []FieldConfig, record string, diags *diagnostic.Diagnostics) {
	var catchAll []string

	for i := range fields {
		if fields[i].Class.Kind == FieldUnknown {
			catchAll = append(catchAll, fields[i].Name)
		}
	}

	if !common.IsMultiple(catchAll) {
		return
	}

	all := strings.Join(catchAll, ", ")
	for _, name := range catchAll {
		diags.AddError("multiple_catch_all",
			fmt.Sprintf("at most one catch-all field is allowed, found %d: %s", len(catchAll), all),
			record, name)
	}
}

// validateCatchAllKey rejects catch-all key types that cannot structurally
// serve as map keys. Named types pass; actual comparability is left to the
// compiler at the generated package.
func validateCatchAllKey(fields []FieldConfig, record string, diags *diagnostic.Diagnostics) {
	for i := range fields {
		field := &fields[i]
		if field.Class.Kind != FieldUnknown {
			continue
		}

		if !field.Class.Key.ComparableShape() {
			diags.AddError("key_not_comparable",
				fmt.Sprintf("catch-all key type %q cannot be used as a map key", field.Class.Key.Raw),
				record, field.Name)
		}
	}
}

// validateNameCollisions checks that every finalized identifier is pairwise
// distinct: accessor names across all families, discriminant labels, and
// the constructor against nothing (a package-level function cannot collide
// with methods). Custom names shadowing auto-derived ones fail rather than
// silently winning.
func validateNameCollisions(cfg RecordConfig, fields []FieldConfig, record string, diags *diagnostic.Diagnostics) {
	accessors := map[string][]string{}
	labels := map[string][]string{}

	for i := range fields {
		field := &fields[i]

		for _, name := range field.Names.All() {
			accessors[name] = append(accessors[name], field.Name)
		}

		labels[field.Names.Label] = append(labels[field.Names.Label], field.Name)
	}

	reportCollisions(accessors, "accessor name", record, diags)
	reportCollisions(labels, "discriminant label", record, diags)
}

func reportCollisions(byName map[string][]string, what, record string, diags *diagnostic.Diagnostics) {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}

	// Deterministic diagnostic order regardless of map iteration.
	sort.Strings(names)

	for _, name := range names {
		owners := byName[name]
		if !common.IsMultiple(owners) {
			continue
		}

		for _, owner := range owners {
			diags.AddError("name_collision",
				fmt.Sprintf("%s %q is generated more than once (fields: %s)", what, name, strings.Join(owners, ", ")),
				record, owner)
		}
	}
}
