package analyze

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-generator/internal/schema"
)

func extract(t *testing.T, src string) (*schema.File, error) {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "records.go", src, parser.ParseComments)
	require.NoError(t, err)

	return ExtractFile(fset, file)
}

func TestExtractRecord(t *testing.T) {
	f, err := extract(t, `package people

import "record-generator/record"

//record:ordered constructor=MakePerson
type Person struct {
	FirstName string
	Email     record.Option[string]
	Extra     record.Option[any] `+"`record:\"key=string\"`"+`
}
`)
	require.NoError(t, err)
	require.NotNil(t, f)
	require.Len(t, f.Records, 1)

	rec := f.Records[0]
	assert.Equal(t, "Person", rec.Name)
	require.Len(t, rec.Attrs, 2)
	assert.Equal(t, schema.Attr{Key: "ordered", Line: rec.Attrs[0].Line}, rec.Attrs[0])
	assert.Equal(t, "constructor", rec.Attrs[1].Key)
	assert.Equal(t, "MakePerson", rec.Attrs[1].Value)

	require.Len(t, rec.Fields, 3)
	assert.Equal(t, "FirstName", rec.Fields[0].Name)
	assert.Equal(t, "string", rec.Fields[0].Type)
	assert.Equal(t, "record.Option[string]", rec.Fields[1].Type)

	require.Len(t, rec.Fields[2].Attrs, 1)
	assert.Equal(t, "key", rec.Fields[2].Attrs[0].Key)
	assert.Equal(t, "string", rec.Fields[2].Attrs[0].Value)

	assert.Equal(t, []string{"record-generator/record"}, f.Imports)
}

func TestExtractIgnoresUndirectedStructs(t *testing.T) {
	f, err := extract(t, `package people

type Plain struct {
	Name string
}
`)
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestExtractSkipsDashTaggedFields(t *testing.T) {
	f, err := extract(t, `package people

//record:
type Person struct {
	Name   string
	Hidden int `+"`record:\"-\"`"+`
}
`)
	require.NoError(t, err)
	require.Len(t, f.Records, 1)
	require.Len(t, f.Records[0].Fields, 1)
	assert.Equal(t, "Name", f.Records[0].Fields[0].Name)
}

func TestExtractTypeParams(t *testing.T) {
	f, err := extract(t, `package boxes

//record:
type Box[T comparable] struct {
	Item T
}
`)
	require.NoError(t, err)
	require.Len(t, f.Records, 1)

	rec := f.Records[0]
	require.Len(t, rec.TypeParams, 1)
	assert.Equal(t, schema.TypeParam{Name: "T", Constraint: "comparable"}, rec.TypeParams[0])
}

func TestExtractRejectsNonStruct(t *testing.T) {
	_, err := extract(t, `package people

//record:
type Alias = string
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-struct")
}

func TestExtractRejectsEmbeddedFields(t *testing.T) {
	_, err := extract(t, `package people

//record:
type Person struct {
	string
}
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedded")
}

func TestExtractUsedImports(t *testing.T) {
	f, err := extract(t, `package events

import (
	"time"

	"record-generator/record"
)

//record:
type Event struct {
	At      time.Time
	Comment record.Option[string]
}
`)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"time", "record-generator/record"}, f.Imports)
}

func TestExtractFeedsResolution(t *testing.T) {
	f, err := extract(t, `package people

import "record-generator/record"

//record:
type Person struct {
	Name  string
	Email record.Option[string]
}
`)
	require.NoError(t, err)

	// The extracted declaration is raw schema input; misspellings and
	// structural problems surface through resolution, same as for YAML.
	require.Len(t, f.Records, 1)
	assert.Equal(t, "record.Option[string]", f.Records[0].Fields[1].Type)
}
