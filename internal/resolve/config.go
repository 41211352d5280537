package resolve

import (
	"fmt"

	"record-generator/internal/diagnostic"
	"record-generator/internal/match"
	"record-generator/internal/schema"
)

// maxSuggestions caps how many "did you mean" alternatives a diagnostic
// carries.
const maxSuggestions = 2

// Resolve runs the full resolution pipeline for one declaration. On any
// error diagnostic no model is returned; generation is all-or-nothing per
// record.
func Resolve(decl schema.RecordDecl) (*Model, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	cfg := resolveRecordConfig(decl, diags)
	fields := resolveFieldConfigs(decl, diags)

	for i := range fields {
		classify(&fields[i], decl.Name, diags)
	}

	if diags.HasErrors() {
		return nil, diags
	}

	resolveNames(fields, decl.Name, diags)
	validate(cfg, fields, decl.Name, diags)

	if diags.HasErrors() {
		return nil, diags
	}

	return &Model{Config: cfg, Fields: fields}, diags
}

// resolveRecordConfig merges record-level attributes with defaults. Every
// recognized key overrides exactly one default; unrecognized keys fail with
// the originating location and a suggestion.
func resolveRecordConfig(decl schema.RecordDecl, diags *diagnostic.Diagnostics) RecordConfig {
	cfg := RecordConfig{
		Name:        decl.Name,
		TypeParams:  decl.TypeParams,
		Constructor: "New" + decl.Name,
		DeriveClone: true,
		DeriveEqual: true,
	}

	backing := schema.DefaultBackingKind
	seen := map[string]bool{}

	for _, attr := range decl.Attrs {
		spec, ok := schema.LookupRecordAttr(attr.Key)
		if !ok {
			// A bare value naming a registered backing kind is shorthand
			// for backing=<kind>.
			if _, isKind := schema.LookupBackingKind(attr.Key); isKind && attr.Value == "" {
				spec = schema.AttrSpec{Key: "backing", Shape: schema.ShapeBackingKind}
				attr = schema.Attr{Key: "backing", Value: attr.Key, Line: attr.Line}
			} else {
				diags.AddErrorWithSuggestions(
					"unknown_attribute",
					fmt.Sprintf("unknown record attribute %q%s", attr.Key, atLine(attr.Line)),
					decl.Name, "",
					match.Suggest(attr.Key, schema.RecordAttrKeys(), maxSuggestions),
				)

				continue
			}
		}

		if seen[spec.Key] {
			diags.AddError("duplicate_attribute",
				fmt.Sprintf("record attribute %q given more than once%s", spec.Key, atLine(attr.Line)),
				decl.Name, "")

			continue
		}

		seen[spec.Key] = true

		if !checkAttrShape(spec, attr, decl.Name, "", diags) {
			continue
		}

		switch spec.Key {
		case "backing":
			backing = attr.Value
		case "constructor":
			cfg.Constructor = attr.Value
		case "with_len":
			cfg.WithLen = flagValue(attr)
		case "no_clone":
			cfg.DeriveClone = !flagValue(attr)
		case "no_equal":
			cfg.DeriveEqual = !flagValue(attr)
		}
	}

	kind, ok := schema.LookupBackingKind(backing)
	if !ok {
		// Unreachable for registry-checked values; guards registry edits.
		diags.AddError("unknown_backing",
			fmt.Sprintf("backing kind %q is not registered", backing), decl.Name, "")
	}

	cfg.Backing = kind

	return cfg
}

// resolveFieldConfigs parses each field's declared type and collects its
// attribute overrides, preserving declaration order.
func resolveFieldConfigs(decl schema.RecordDecl, diags *diagnostic.Diagnostics) []FieldConfig {
	fields := make([]FieldConfig, 0, len(decl.Fields))

	for i, fd := range decl.Fields {
		field := FieldConfig{Name: fd.Name, Index: i, Line: fd.Line}

		if !schema.IsName(fd.Name) {
			diags.AddError("invalid_field_name",
				fmt.Sprintf("field name %q is not a valid identifier%s", fd.Name, atLine(fd.Line)),
				decl.Name, fd.Name)
		}

		declared, err := schema.ParseType(fd.Type)
		if err != nil {
			diags.AddError("invalid_type",
				fmt.Sprintf("invalid declared type %q: %v", fd.Type, err),
				decl.Name, fd.Name)
		}

		field.Declared = declared

		resolveFieldAttrs(&field, fd, decl.Name, diags)
		fields = append(fields, field)
	}

	return fields
}

func resolveFieldAttrs(field *FieldConfig, fd schema.FieldDecl, record string, diags *diagnostic.Diagnostics) {
	seen := map[string]bool{}

	for _, attr := range fd.Attrs {
		spec, ok := schema.LookupFieldAttr(attr.Key)
		if !ok {
			diags.AddErrorWithSuggestions(
				"unknown_attribute",
				fmt.Sprintf("unknown field attribute %q%s", attr.Key, atLine(attr.Line)),
				record, fd.Name,
				match.Suggest(attr.Key, schema.FieldAttrKeys(), maxSuggestions),
			)

			continue
		}

		if seen[spec.Key] {
			diags.AddError("duplicate_attribute",
				fmt.Sprintf("field attribute %q given more than once%s", spec.Key, atLine(attr.Line)),
				record, fd.Name)

			continue
		}

		seen[spec.Key] = true

		if !checkAttrShape(spec, attr, record, fd.Name, diags) {
			continue
		}

		switch spec.Key {
		case "get":
			field.overrides.get = attr.Value
		case "get_ptr":
			field.overrides.getPtr = attr.Value
		case "set":
			field.overrides.set = attr.Value
		case "remove":
			field.overrides.remove = attr.Value
		case "key":
			keyType, err := schema.ParseType(attr.Value)
			if err != nil {
				diags.AddError("invalid_key_type",
					fmt.Sprintf("invalid catch-all key type %q: %v", attr.Value, err),
					record, fd.Name)

				continue
			}

			field.overrides.keyType = &keyType
		}
	}
}

// checkAttrShape validates an attribute value against its declared shape.
func checkAttrShape(spec schema.AttrSpec, attr schema.Attr, record, field string, diags *diagnostic.Diagnostics) bool {
	switch spec.Shape {
	case schema.ShapeFlag:
		if attr.Value != "" && attr.Value != "true" && attr.Value != "false" {
			diags.AddError("invalid_attribute_value",
				fmt.Sprintf("attribute %q is a flag, got %q%s", spec.Key, attr.Value, atLine(attr.Line)),
				record, field)

			return false
		}

	case schema.ShapeIdent:
		if !schema.IsIdent(attr.Value) {
			diags.AddError("invalid_identifier",
				fmt.Sprintf("attribute %q requires a valid identifier, got %q%s", spec.Key, attr.Value, atLine(attr.Line)),
				record, field)

			return false
		}

	case schema.ShapeType:
		if attr.Value == "" {
			diags.AddError("invalid_attribute_value",
				fmt.Sprintf("attribute %q requires a type expression%s", spec.Key, atLine(attr.Line)),
				record, field)

			return false
		}

	case schema.ShapeBackingKind:
		if _, ok := schema.LookupBackingKind(attr.Value); !ok {
			diags.AddErrorWithSuggestions(
				"unknown_backing",
				fmt.Sprintf("unknown backing kind %q%s", attr.Value, atLine(attr.Line)),
				record, field,
				match.Suggest(attr.Value, schema.BackingKindNames(), maxSuggestions),
			)

			return false
		}
	}

	return true
}

// flagValue interprets a flag attribute: a bare key means true.
func flagValue(attr schema.Attr) bool {
	return attr.Value == "" || attr.Value == "true"
}

func atLine(line int) string {
	if line <= 0 {
		return ""
	}

	return fmt.Sprintf(" (line %d)", line)
}
