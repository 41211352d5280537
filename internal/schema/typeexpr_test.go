package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType_Named(t *testing.T) {
	tests := []struct {
		input string
		path  []string
		args  int
	}{
		{"string", []string{"string"}, 0},
		{"uint32", []string{"uint32"}, 0},
		{"time.Time", []string{"time", "Time"}, 0},
		{"Option[string]", []string{"Option"}, 1},
		{"record.Option[string]", []string{"record", "Option"}, 1},
		{"pkg.Pair[int, string]", []string{"pkg", "Pair"}, 2},
		{"Option[Option[int]]", []string{"Option"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := ParseType(tt.input)
			require.NoError(t, err)

			assert.Equal(t, TypeNamed, expr.Kind)
			assert.Equal(t, tt.path, expr.Path)
			assert.Len(t, expr.Args, tt.args)
			assert.Equal(t, tt.input, expr.Raw)
		})
	}
}

func TestParseType_Shapes(t *testing.T) {
	tests := []struct {
		input string
		kind  TypeKind
	}{
		{"*User", TypePointer},
		{"[]byte", TypeSlice},
		{"[4]int", TypeArray},
		{"map[string]int", TypeMap},
		{"func(int) error", TypeFunc},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := ParseType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, expr.Kind)
		})
	}
}

func TestParseType_Errors(t *testing.T) {
	inputs := []string{
		"",
		"Option[",
		"Option[]",
		"map[string",
		"foo..bar",
		"Option[string] junk",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseType(input)
			assert.Error(t, err)
		})
	}
}

func TestOptionInner(t *testing.T) {
	expr, err := ParseType("record.Option[map[string]int]")
	require.NoError(t, err)

	inner, ok := expr.OptionInner()
	require.True(t, ok)
	assert.Equal(t, TypeMap, inner.Kind)
	assert.Equal(t, "map[string]int", inner.Raw)

	// A generic type with the wrong name is not optional.
	expr, err = ParseType("list.List[string]")
	require.NoError(t, err)

	_, ok = expr.OptionInner()
	assert.False(t, ok)

	// Two arguments disqualify the structural match.
	expr, err = ParseType("Option[string, int]")
	require.NoError(t, err)

	_, ok = expr.OptionInner()
	assert.False(t, ok)
}

func TestOptionInner_NameSharingImpostor(t *testing.T) {
	// Structural detection deliberately accepts any type whose last path
	// segment is Option with one argument, wherever it comes from.
	expr, err := ParseType("mylib.Option[int]")
	require.NoError(t, err)

	inner, ok := expr.OptionInner()
	assert.True(t, ok)
	assert.Equal(t, "int", inner.Raw)
}

func TestComparableShape(t *testing.T) {
	tests := []struct {
		input      string
		comparable bool
	}{
		{"string", true},
		{"*User", true},
		{"[8]byte", true},
		{"[]byte", false},
		{"map[string]int", false},
		{"func()", false},
		{"[2][]int", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := ParseType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.comparable, expr.ComparableShape())
		})
	}
}

func TestIsIdent(t *testing.T) {
	assert.True(t, IsIdent("Email"))
	assert.True(t, IsIdent("_private"))
	assert.True(t, IsIdent("x2"))
	assert.False(t, IsIdent(""))
	assert.False(t, IsIdent("2x"))
	assert.False(t, IsIdent("with-dash"))
	assert.False(t, IsIdent("func"))
}

func TestIsName(t *testing.T) {
	assert.True(t, IsName("email"))
	assert.True(t, IsName("_private"))
	assert.True(t, IsName("x2"))

	// Keywords are acceptable field names, unlike identifiers.
	assert.True(t, IsName("type"))
	assert.True(t, IsName("_type"))
	assert.True(t, IsName("func"))

	assert.False(t, IsName(""))
	assert.False(t, IsName("_"))
	assert.False(t, IsName("2x"))
	assert.False(t, IsName("with-dash"))
	assert.False(t, IsName("a b"))
}
