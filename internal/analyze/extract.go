package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"record-generator/internal/common"
	"record-generator/internal/schema"
)

// directivePrefix marks a struct type as a record declaration.
const directivePrefix = "//record:"

// tagKey is the struct tag carrying field attributes.
const tagKey = "record"

// ExtractFile pulls every record declaration out of one parsed file. Files
// without directives yield a nil File.
func ExtractFile(fset *token.FileSet, file *ast.File) (*schema.File, error) {
	var out *schema.File

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			directive, ok := recordDirective(gd, ts)
			if !ok {
				continue
			}

			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				return nil, fmt.Errorf("%s: //record: directive on non-struct type %s",
					fset.Position(ts.Pos()), ts.Name.Name)
			}

			rec, err := extractRecord(fset, ts, st, directive)
			if err != nil {
				return nil, err
			}

			if out == nil {
				out = &schema.File{Version: "1", Path: fset.Position(file.Pos()).Filename}
			}

			out.Records = append(out.Records, rec)
		}
	}

	if out != nil {
		out.Imports = usedImports(file, out.Records)
	}

	return out, nil
}

// recordDirective finds the //record: comment attached to a type spec. The
// directive may sit on the type spec itself or, for single-spec decls, on
// the decl.
func recordDirective(gd *ast.GenDecl, ts *ast.TypeSpec) (string, bool) {
	for _, cg := range []*ast.CommentGroup{ts.Doc, gd.Doc} {
		if cg == nil {
			continue
		}

		for _, c := range cg.List {
			if strings.HasPrefix(c.Text, directivePrefix) {
				return strings.TrimSpace(strings.TrimPrefix(c.Text, directivePrefix)), true
			}
		}
	}

	return "", false
}

func extractRecord(fset *token.FileSet, ts *ast.TypeSpec, st *ast.StructType, directive string) (schema.RecordDecl, error) {
	rec := schema.RecordDecl{
		Name: ts.Name.Name,
		Line: fset.Position(ts.Pos()).Line,
	}

	rec.Attrs = parseDirective(directive, rec.Line)

	if ts.TypeParams != nil {
		for _, field := range ts.TypeParams.List {
			constraint := types.ExprString(field.Type)
			for _, name := range field.Names {
				rec.TypeParams = append(rec.TypeParams, schema.TypeParam{
					Name:       name.Name,
					Constraint: constraint,
				})
			}
		}
	}

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			return schema.RecordDecl{}, fmt.Errorf("%s: embedded fields are not supported in record %s",
				fset.Position(field.Pos()), rec.Name)
		}

		attrs, skip, err := parseFieldTag(field, fset)
		if err != nil {
			return schema.RecordDecl{}, err
		}

		if skip {
			continue
		}

		typeText := types.ExprString(field.Type)
		line := fset.Position(field.Pos()).Line

		for _, name := range field.Names {
			rec.Fields = append(rec.Fields, schema.FieldDecl{
				Name:  name.Name,
				Type:  typeText,
				Attrs: attrs,
				Line:  line,
			})
		}
	}

	return rec, nil
}

// parseDirective splits a directive body into attribute pairs. Tokens are
// whitespace separated, each key or key=value.
func parseDirective(s string, line int) []schema.Attr {
	var attrs []schema.Attr

	for _, tok := range strings.Fields(s) {
		key, value, _ := strings.Cut(tok, "=")
		attrs = append(attrs, schema.Attr{Key: key, Value: value, Line: line})
	}

	return attrs
}

// parseFieldTag reads the record struct tag. A bare "-" excludes the field.
// Attribute pairs are comma separated.
func parseFieldTag(field *ast.Field, fset *token.FileSet) ([]schema.Attr, bool, error) {
	if field.Tag == nil {
		return nil, false, nil
	}

	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return nil, false, fmt.Errorf("%s: malformed struct tag", fset.Position(field.Tag.Pos()))
	}

	tag, ok := reflect.StructTag(raw).Lookup(tagKey)
	if !ok {
		return nil, false, nil
	}

	if tag == "-" {
		return nil, true, nil
	}

	line := fset.Position(field.Pos()).Line

	var attrs []schema.Attr
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, _ := strings.Cut(part, "=")
		attrs = append(attrs, schema.Attr{Key: key, Value: value, Line: line})
	}

	return attrs, false, nil
}

// usedImports returns the import paths of packages the extracted field
// types actually reference, so generated output can import them verbatim.
func usedImports(file *ast.File, records []schema.RecordDecl) []string {
	qualifiers := map[string]bool{}

	for _, rec := range records {
		for _, field := range rec.Fields {
			collectQualifiers(field.Type, qualifiers)
		}
	}

	var paths []string
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		name := common.PkgAlias(path)
		if imp.Name != nil {
			name = imp.Name.Name
		}

		if qualifiers[name] {
			paths = append(paths, path)
		}
	}

	return paths
}

// collectQualifiers scans a type expression's text for package qualifiers.
// Syntactic only: a selector on a value would be a parse error in type
// position, so every ident before a dot is a package name.
func collectQualifiers(typeText string, into map[string]bool) {
	expr, err := schema.ParseType(typeText)
	if err != nil {
		return
	}

	walkQualifiers(expr, into)
}

func walkQualifiers(t schema.TypeExpr, into map[string]bool) {
	if t.Kind == schema.TypeNamed && len(t.Path) > 1 {
		into[t.Path[0]] = true
	}

	for _, arg := range t.Args {
		walkQualifiers(arg, into)
	}

	if t.Key != nil {
		walkQualifiers(*t.Key, into)
	}

	if t.Elem != nil {
		walkQualifiers(*t.Elem, into)
	}
}
