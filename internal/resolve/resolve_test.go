package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-generator/internal/diagnostic"
	"record-generator/internal/schema"
)

func errorCodes(diags *diagnostic.Diagnostics) []string {
	codes := make([]string, 0, len(diags.Errors))
	for _, d := range diags.Errors {
		codes = append(codes, d.Code)
	}

	return codes
}

func TestResolveDefaults(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "name", Type: "string"},
		},
	})
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())
	require.NotNil(t, model)

	assert.Equal(t, "Person", model.Config.Name)
	assert.Equal(t, "NewPerson", model.Config.Constructor)
	assert.Equal(t, "hash", model.Config.Backing.Name)
	assert.True(t, model.Config.DeriveClone)
	assert.True(t, model.Config.DeriveEqual)
	assert.False(t, model.Config.WithLen)
}

func TestResolveRecordAttrs(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Attrs: []schema.Attr{
			{Key: "backing", Value: "ordered"},
			{Key: "constructor", Value: "MakePerson"},
			{Key: "with_len"},
			{Key: "no_clone"},
			{Key: "no_equal", Value: "true"},
		},
		Fields: []schema.FieldDecl{
			{Name: "name", Type: "string"},
		},
	})
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())

	assert.Equal(t, "ordered", model.Config.Backing.Name)
	assert.Equal(t, "MakePerson", model.Config.Constructor)
	assert.True(t, model.Config.WithLen)
	assert.False(t, model.Config.DeriveClone)
	assert.False(t, model.Config.DeriveEqual)
}

func TestResolveBackingShorthand(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name:  "Person",
		Attrs: []schema.Attr{{Key: "ordered"}},
		Fields: []schema.FieldDecl{
			{Name: "name", Type: "string"},
		},
	})
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())

	assert.Equal(t, "ordered", model.Config.Backing.Name)
}

func TestResolveUnknownRecordAttr(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name:  "Person",
		Attrs: []schema.Attr{{Key: "constrcutor", Value: "Make"}},
		Fields: []schema.FieldDecl{
			{Name: "name", Type: "string"},
		},
	})
	require.Nil(t, model)
	require.Len(t, diags.Errors, 1)

	assert.Equal(t, "unknown_attribute", diags.Errors[0].Code)
	assert.Contains(t, diags.Errors[0].Suggestions, "constructor")
}

func TestResolveUnknownBacking(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name:  "Person",
		Attrs: []schema.Attr{{Key: "backing", Value: "orderd"}},
		Fields: []schema.FieldDecl{
			{Name: "name", Type: "string"},
		},
	})
	require.Nil(t, model)
	require.Len(t, diags.Errors, 1)

	assert.Equal(t, "unknown_backing", diags.Errors[0].Code)
	assert.Contains(t, diags.Errors[0].Suggestions, "ordered")
}

func TestResolveDuplicateAttr(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Attrs: []schema.Attr{
			{Key: "constructor", Value: "MakeA"},
			{Key: "constructor", Value: "MakeB"},
		},
		Fields: []schema.FieldDecl{
			{Name: "name", Type: "string"},
		},
	})
	require.Nil(t, model)

	assert.Contains(t, errorCodes(diags), "duplicate_attribute")
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name      string
		field     schema.FieldDecl
		wantKind  FieldKind
		wantInner string
	}{
		{
			name:      "plain type is required",
			field:     schema.FieldDecl{Name: "name", Type: "string"},
			wantKind:  FieldRequired,
			wantInner: "string",
		},
		{
			name:      "wrapped type is optional",
			field:     schema.FieldDecl{Name: "email", Type: "Option[string]"},
			wantKind:  FieldOptional,
			wantInner: "string",
		},
		{
			name:      "qualified wrapper is optional",
			field:     schema.FieldDecl{Name: "email", Type: "record.Option[[]byte]"},
			wantKind:  FieldOptional,
			wantInner: "[]byte",
		},
		{
			name:      "key attribute marks the catch-all",
			field:     schema.FieldDecl{Name: "extra", Type: "Option[any]", Attrs: []schema.Attr{{Key: "key", Value: "string"}}},
			wantKind:  FieldUnknown,
			wantInner: "any",
		},
		{
			name:      "nested wrapper unwraps one layer",
			field:     schema.FieldDecl{Name: "note", Type: "Option[Option[string]]"},
			wantKind:  FieldOptional,
			wantInner: "Option[string]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, diags := Resolve(schema.RecordDecl{
				Name:   "Person",
				Fields: []schema.FieldDecl{tt.field},
			})
			require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())
			require.Len(t, model.Fields, 1)

			assert.Equal(t, tt.wantKind, model.Fields[0].Class.Kind)
			assert.Equal(t, tt.wantInner, model.Fields[0].Class.Inner.Raw)
		})
	}
}

func TestCatchAllMustBeOptional(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "extra", Type: "map[string]any", Attrs: []schema.Attr{{Key: "key", Value: "string"}}},
		},
	})
	require.Nil(t, model)

	assert.Contains(t, errorCodes(diags), "catch_all_not_optional")
}

func TestCatchAllKeyMustBeComparable(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "extra", Type: "Option[any]", Attrs: []schema.Attr{{Key: "key", Value: "[]byte"}}},
		},
	})
	require.Nil(t, model)

	assert.Contains(t, errorCodes(diags), "key_not_comparable")
}

func TestSingleCatchAllEnforced(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "extra", Type: "Option[any]", Attrs: []schema.Attr{{Key: "key", Value: "string"}}},
			{Name: "more", Type: "Option[any]", Attrs: []schema.Attr{{Key: "key", Value: "string"}}},
		},
	})
	require.Nil(t, model)

	var offenders []string
	for _, d := range diags.Errors {
		if d.Code == "multiple_catch_all" {
			offenders = append(offenders, d.Field)
		}
	}

	// Both declarations are reported; nothing is picked silently.
	assert.ElementsMatch(t, []string{"extra", "more"}, offenders)
}

func TestNames(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "first_name", Type: "string"},
			{Name: "email", Type: "Option[string]"},
			{Name: "extra", Type: "Option[any]", Attrs: []schema.Attr{{Key: "key", Value: "string"}}},
		},
	})
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())
	require.Len(t, model.Fields, 3)

	first := model.Fields[0].Names
	assert.Equal(t, "FirstName", first.Label)
	assert.Equal(t, "FirstName", first.Getter)
	assert.Equal(t, "FirstNamePtr", first.PtrGetter)
	assert.Equal(t, "SetFirstName", first.Setter)
	assert.Equal(t, "TakeFirstName", first.Take)
	assert.Empty(t, first.Remover, "required fields have no remover")
	assert.Empty(t, first.Add)
	assert.Empty(t, first.Iter)

	email := model.Fields[1].Names
	assert.Equal(t, "RemoveEmail", email.Remover)
	assert.Empty(t, email.Add)

	extra := model.Fields[2].Names
	assert.Equal(t, "AddExtra", extra.Add)
	assert.Equal(t, "Extras", extra.Iter)
	assert.Equal(t, "RemoveExtra", extra.Remover)
	assert.Empty(t, extra.Setter, "catch-all fields have no setter")
}

func TestNameOverrides(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "email", Type: "Option[string]", Attrs: []schema.Attr{
				{Key: "get", Value: "Mail"},
				{Key: "set", Value: "PutMail"},
				{Key: "remove", Value: "DropMail"},
			}},
		},
	})
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())

	names := model.Fields[0].Names
	assert.Equal(t, "Email", names.Label, "label ignores accessor overrides")
	assert.Equal(t, "Mail", names.Getter)
	assert.Equal(t, "MailPtr", names.PtrGetter, "pointer getter follows the getter override")
	assert.Equal(t, "PutMail", names.Setter)
	assert.Equal(t, "DropMail", names.Remover)
}

func TestRemoveOverrideOnRequiredWarns(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "name", Type: "string", Attrs: []schema.Attr{{Key: "remove", Value: "DropName"}}},
		},
	})
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())
	require.Len(t, diags.Warnings, 1)

	assert.Equal(t, "remove_on_required", diags.Warnings[0].Code)
	assert.Equal(t, "Person", diags.Warnings[0].Record)
	assert.Empty(t, model.Fields[0].Names.Remover)
}

func TestSetOverrideOnCatchAllWarns(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "extra", Type: "Option[any]", Attrs: []schema.Attr{
				{Key: "key", Value: "string"},
				{Key: "set", Value: "PutExtra"},
			}},
		},
	})
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())
	require.Len(t, diags.Warnings, 1)

	assert.Equal(t, "set_on_unknown", diags.Warnings[0].Code)
	assert.Equal(t, "Person", diags.Warnings[0].Record)
	assert.Empty(t, model.Fields[0].Names.Setter)
}

func TestKeywordFieldNames(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Entity",
		Fields: []schema.FieldDecl{
			{Name: "type", Type: "string"},
			{Name: "func_", Type: "int"},
		},
	})
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())
	require.NotNil(t, model)

	names := model.Fields[0].Names
	assert.Equal(t, "Type", names.Label)
	assert.Equal(t, "Type", names.Getter)
	assert.Equal(t, "SetType", names.Setter)
}

func TestEscapedKeywordFieldName(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name:   "Entity",
		Fields: []schema.FieldDecl{{Name: "_type", Type: "string"}},
	})
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())
	require.NotNil(t, model)

	assert.Equal(t, "Type", model.Fields[0].Names.Label)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "Name"},
		{"first_name", "FirstName"},
		{"_type", "Type"},
		{"type", "Type"},
		{"id", "Id"},
		{"a_b_c", "ABC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(tt.in), "Label(%q)", tt.in)
	}
}

func TestNameCollisions(t *testing.T) {
	tests := []struct {
		name   string
		fields []schema.FieldDecl
	}{
		{
			name: "escape marker collapses labels",
			fields: []schema.FieldDecl{
				{Name: "type", Type: "string"},
				{Name: "_type", Type: "string"},
			},
		},
		{
			name: "custom getter shadows derived setter",
			fields: []schema.FieldDecl{
				{Name: "name", Type: "string"},
				{Name: "other", Type: "string", Attrs: []schema.Attr{{Key: "get", Value: "SetName"}}},
			},
		},
		{
			name: "snake case merges distinct names",
			fields: []schema.FieldDecl{
				{Name: "first_name", Type: "string"},
				{Name: "firstName", Type: "string"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, diags := Resolve(schema.RecordDecl{Name: "Person", Fields: tt.fields})
			require.Nil(t, model)

			assert.Contains(t, errorCodes(diags), "name_collision")
		})
	}
}

func TestReservedNames(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "snapshot", Type: "string", Attrs: []schema.Attr{{Key: "get", Value: "Decompose"}}},
		},
	})
	require.Nil(t, model)

	assert.Contains(t, errorCodes(diags), "reserved_name")

	model, diags = Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "text", Type: "string", Attrs: []schema.Attr{{Key: "get", Value: "String"}}},
		},
	})
	require.Nil(t, model)

	assert.Contains(t, errorCodes(diags), "reserved_name")
}

func TestInvalidOverrideIdentifier(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "name", Type: "string", Attrs: []schema.Attr{{Key: "get", Value: "1abc"}}},
		},
	})
	require.Nil(t, model)

	assert.Contains(t, errorCodes(diags), "invalid_identifier")
}

func TestInvalidFieldName(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name:   "Person",
		Fields: []schema.FieldDecl{{Name: "first name", Type: "string"}},
	})
	require.Nil(t, model)

	assert.Contains(t, errorCodes(diags), "invalid_field_name")
}

func TestInvalidDeclaredType(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name:   "Person",
		Fields: []schema.FieldDecl{{Name: "name", Type: "Option[string"}},
	})
	require.Nil(t, model)

	assert.Contains(t, errorCodes(diags), "invalid_type")
}

func TestModelAccessors(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Person",
		Fields: []schema.FieldDecl{
			{Name: "name", Type: "string"},
			{Name: "email", Type: "Option[string]"},
			{Name: "extra", Type: "Option[any]", Attrs: []schema.Attr{{Key: "key", Value: "string"}}},
		},
	})
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())

	unknown, ok := model.Unknown()
	require.True(t, ok)
	assert.Equal(t, "extra", unknown.Name)

	required := model.Required()
	require.Len(t, required, 1)
	assert.Equal(t, "name", required[0].Name)

	known := model.Known()
	require.Len(t, known, 2)
	assert.Equal(t, "name", known[0].Name)
	assert.Equal(t, "email", known[1].Name)

	assert.False(t, model.AllOptional())
}

func TestAllOptional(t *testing.T) {
	model, diags := Resolve(schema.RecordDecl{
		Name: "Settings",
		Fields: []schema.FieldDecl{
			{Name: "theme", Type: "Option[string]"},
			{Name: "extra", Type: "Option[any]", Attrs: []schema.Attr{{Key: "key", Value: "string"}}},
		},
	})
	require.True(t, diags.IsValid(), "unexpected errors: %v", diags.Error())

	assert.True(t, model.AllOptional())

	_, ok := model.Unknown()
	assert.True(t, ok)
}
