package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"record-generator/internal/common"
	"record-generator/internal/derive"
)

// Options holds configuration for code generation.
type Options struct {
	// Package is the name of the generated package.
	Package string
	// Source is the originating schema path, recorded in the file header.
	Source string
	// Imports are extra import paths the declared types require.
	Imports []string
	// OutputDir is where WriteFiles and the debug fallback place output.
	OutputDir string
	// FileName overrides the default "<package>.gen.go" output name.
	FileName string
}

// Generator renders artifact sets into formatted Go source.
type Generator struct {
	opts Options
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// GeneratedFile is one rendered Go source file.
type GeneratedFile struct {
	// Filename is the file's base name (e.g. "people.gen.go").
	Filename string
	// Content is the formatted Go source.
	Content []byte
}

// Generate renders every artifact set into a single generated file. The
// output is deterministic: identical sets yield identical bytes.
func (g *Generator) Generate(sets []*derive.ArtifactSet) (*GeneratedFile, error) {
	if common.IsEmpty(sets) {
		return nil, fmt.Errorf("nothing to generate")
	}

	filename := g.opts.FileName
	if filename == "" {
		filename = g.opts.Package + ".gen.go"
	}

	data := buildFileData(sets, g.opts)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Keep the raw output around so the template bug is inspectable.
		_ = writeDebugUnformatted(g.opts.OutputDir, filename, buf.Bytes())
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}

	return &GeneratedFile{Filename: filename, Content: formatted}, nil
}

var fileTemplate = template.Must(template.New("record").Parse(strings.TrimLeft(`
// Code generated by record-generator. DO NOT EDIT.
{{if .Source}}//
// Source: {{.Source}}
{{end}}
package {{.Package}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{range $r := .Records}}
// {{$r.KindType}} discriminates the entries of {{$r.Name}}.
type {{$r.KindType}} uint8

const (
{{range $i, $c := $r.Consts}}	{{$c}}{{if eq $i 0}} {{$r.KindType}} = iota{{end}}
{{end}})
{{if $r.HasKey}}
type {{$r.KeyDecl}} struct {
	kind {{$r.KindType}}
	key  {{$r.CatchKeyGo}}
}
{{end}}
type {{$r.IfaceDecl}} interface {
{{if $r.Clone}}	cloneVal() {{$r.IfaceRef}}
{{end}}{{if $r.Equal}}	equalVal({{$r.IfaceRef}}) bool
{{end}}}
{{range $s := $r.Shapes}}
// {{$s.Type}} stores {{$s.Fields}}.
type {{$s.Decl}} struct{ v {{$s.Inner}} }
{{if $r.Clone}}
func (w *{{$s.Ref}}) cloneVal() {{$r.IfaceRef}} {
	c := *w
	return &c
}
{{end}}{{if $r.Equal}}
func (w *{{$s.Ref}}) equalVal(o {{$r.IfaceRef}}) bool {
	p, ok := o.(*{{$s.Ref}})
	return ok && w.v == p.v
}
{{end}}{{end}}
// {{$r.Name}} is a map-backed record ({{$r.Backing}} backing).{{if $r.ZeroUsable}} The zero
// value is empty and ready to use.{{end}}
type {{$r.Name}}{{$r.ParamsDecl}} struct {
	m {{$r.MapType}}
}

func (r *{{$r.Ref}}) initMap() {
	if r.m == nil {
		r.m = {{$r.MapCtor}}(0)
	}
}

func (r *{{$r.Ref}}) getEntry(k {{$r.KeyGo}}) ({{$r.IfaceRef}}, bool) {
	if r.m == nil {
		return nil, false
	}

	return r.m.Get(k)
}

func (r *{{$r.Ref}}) removeEntry(k {{$r.KeyGo}}) ({{$r.IfaceRef}}, bool) {
	if r.m == nil {
		return nil, false
	}

	return r.m.Remove(k)
}

func (r *{{$r.Ref}}) storeSize() int {
	if r.m == nil {
		return 0
	}

	return r.m.Len()
}

// {{$r.Ctor.Name}} builds a {{$r.Name}} from its required fields.
func {{$r.Ctor.Name}}{{$r.ParamsDecl}}({{range $i, $p := $r.Ctor.Params}}{{if $i}}, {{end}}{{$p.Name}} {{$p.Type}}{{end}}) *{{$r.Ref}} {
	r := &{{$r.Ref}}{}
	r.initMap()
{{range $ins := $r.Ctor.Inserts}}	r.m.Insert({{$ins.KeyExpr}}, &{{$ins.ShapeRef}}{v: {{$ins.Param}}})
{{end}}
	return r
}
{{range $a := $r.Accessors}}{{if $a.Required}}
// {{$a.Getter}} returns the {{$a.Field}} field. It panics when the field
// is absent.
func (r *{{$r.Ref}}) {{$a.Getter}}() {{$a.Inner}} {
	w, ok := r.getEntry({{$a.KeyExpr}})
	if !ok {
		panic("{{$a.Panic}}")
	}

	return w.(*{{$a.ShapeRef}}).v
}

func (r *{{$r.Ref}}) {{$a.PtrGetter}}() *{{$a.Inner}} {
	w, ok := r.getEntry({{$a.KeyExpr}})
	if !ok {
		panic("{{$a.Panic}}")
	}

	return &w.(*{{$a.ShapeRef}}).v
}

func (r *{{$r.Ref}}) {{$a.Setter}}(v {{$a.Inner}}) {
	r.initMap()
	r.m.Insert({{$a.KeyExpr}}, &{{$a.ShapeRef}}{v: v})
}
{{end}}{{if $a.Optional}}
// {{$a.Getter}} returns the {{$a.Field}} field if present.
func (r *{{$r.Ref}}) {{$a.Getter}}() ({{$a.Inner}}, bool) {
	w, ok := r.getEntry({{$a.KeyExpr}})
	if !ok {
		var zero {{$a.Inner}}
		return zero, false
	}

	return w.(*{{$a.ShapeRef}}).v, true
}

func (r *{{$r.Ref}}) {{$a.PtrGetter}}() *{{$a.Inner}} {
	w, ok := r.getEntry({{$a.KeyExpr}})
	if !ok {
		return nil
	}

	return &w.(*{{$a.ShapeRef}}).v
}

// {{$a.Setter}} stores the held value, or removes the field when v is
// empty.
func (r *{{$r.Ref}}) {{$a.Setter}}(v record.Option[{{$a.Inner}}]) {
	inner, ok := v.Get()
	if !ok {
		r.{{$a.Remover}}()
		return
	}

	r.initMap()
	r.m.Insert({{$a.KeyExpr}}, &{{$a.ShapeRef}}{v: inner})
}

func (r *{{$r.Ref}}) {{$a.Remover}}() ({{$a.Inner}}, bool) {
	w, ok := r.removeEntry({{$a.KeyExpr}})
	if !ok {
		var zero {{$a.Inner}}
		return zero, false
	}

	return w.(*{{$a.ShapeRef}}).v, true
}
{{end}}{{if $a.Unknown}}
// {{$a.Add}} stores an entry under key, returning the replaced value when
// one was present.
func (r *{{$r.Ref}}) {{$a.Add}}(key {{$a.KeyGo}}, v {{$a.Inner}}) ({{$a.Inner}}, bool) {
	r.initMap()

	prev, ok := r.m.Insert({{$a.CatchKeyExpr}}, &{{$a.ShapeRef}}{v: v})
	if !ok {
		var zero {{$a.Inner}}
		return zero, false
	}

	return prev.(*{{$a.ShapeRef}}).v, true
}

func (r *{{$r.Ref}}) {{$a.Getter}}(key {{$a.KeyGo}}) ({{$a.Inner}}, bool) {
	w, ok := r.getEntry({{$a.CatchKeyExpr}})
	if !ok {
		var zero {{$a.Inner}}
		return zero, false
	}

	return w.(*{{$a.ShapeRef}}).v, true
}

func (r *{{$r.Ref}}) {{$a.PtrGetter}}(key {{$a.KeyGo}}) *{{$a.Inner}} {
	w, ok := r.getEntry({{$a.CatchKeyExpr}})
	if !ok {
		return nil
	}

	return &w.(*{{$a.ShapeRef}}).v
}

func (r *{{$r.Ref}}) {{$a.Remover}}(key {{$a.KeyGo}}) ({{$a.Inner}}, bool) {
	w, ok := r.removeEntry({{$a.CatchKeyExpr}})
	if !ok {
		var zero {{$a.Inner}}
		return zero, false
	}

	return w.(*{{$a.ShapeRef}}).v, true
}

// {{$a.Iter}} iterates the dynamic entries.
func (r *{{$r.Ref}}) {{$a.Iter}}() iter.Seq2[{{$a.KeyGo}}, {{$a.Inner}}] {
	return func(yield func({{$a.KeyGo}}, {{$a.Inner}}) bool) {
		if r.m == nil {
			return
		}

		for k, w := range r.m.All() {
			if k.kind != {{$a.Const}} {
				continue
			}

			if !yield(k.key, w.(*{{$a.ShapeRef}}).v) {
				return
			}
		}
	}
}
{{end}}{{end}}{{with $c := $r.Companion}}
// {{$c.Type}} holds the fields extracted from a {{$r.Name}}. Each Take
// accessor yields its value once.
type {{$c.Decl}} struct {
{{range $f := $c.Fields}}	{{$f.Name}} {{if $f.Unknown}}{{$f.MapGo}}{{else}}record.Option[{{$f.Inner}}]{{end}}
{{end}}}

// {{$c.Method}} drains the record into its companion form, leaving it
// empty.
func (r *{{$r.Ref}}) {{$c.Method}}() {{$c.Ref}} {
	var f {{$c.Ref}}

{{range $f := $c.Fields}}{{if $f.Unknown}}	f.{{$f.Name}} = {{$f.MapGo}}{}

	if r.m != nil {
		for k, w := range r.m.All() {
			if k.kind != {{$f.Const}} {
				continue
			}

			f.{{$f.Name}}[k.key] = w.(*{{$f.ShapeRef}}).v
		}
	}
{{else}}	if w, ok := r.removeEntry({{$f.KeyExpr}}); ok {
		f.{{$f.Name}} = record.Some(w.(*{{$f.ShapeRef}}).v)
	}
{{end}}{{end}}	r.m = nil

	return f
}
{{range $f := $c.Fields}}
{{if $f.Unknown}}// {{$f.Take}} yields the dynamic entries once.
func (f *{{$c.Ref}}) {{$f.Take}}() {{$f.MapGo}} {
	m := f.{{$f.Name}}
	f.{{$f.Name}} = nil

	return m
}
{{else}}func (f *{{$c.Ref}}) {{$f.Take}}() ({{$f.Inner}}, bool) {
	return f.{{$f.Name}}.Take()
}
{{end}}{{end}}
// String renders the fields the companion still holds.
func (f *{{$c.Ref}}) String() string {
	var b strings.Builder
	b.WriteString("{{$c.Type}}{")

	sep := ""
{{range $f := $c.Fields}}{{if $f.Unknown}}	for k, v := range f.{{$f.Name}} {
		fmt.Fprintf(&b, "%s%v: %v", sep, k, v)
		sep = ", "
	}
{{else}}	if v, ok := f.{{$f.Name}}.Get(); ok {
		fmt.Fprintf(&b, "%s{{$f.Field}}: %v", sep, v)
		sep = ", "
	}
{{end}}{{end}}	b.WriteString("}")

	return b.String()
}
{{end}}
// String renders the record's present fields in declaration order.
func (r *{{$r.Ref}}) String() string {
	var b strings.Builder
	b.WriteString("{{$r.Name}}{")

	sep := ""
{{range $a := $r.Accessors}}{{if $a.Unknown}}	for k, v := range r.{{$a.Iter}}() {
		fmt.Fprintf(&b, "%s%v: %v", sep, k, v)
		sep = ", "
	}
{{else}}	if w, ok := r.getEntry({{$a.KeyExpr}}); ok {
		fmt.Fprintf(&b, "%s{{$a.Field}}: %v", sep, w.(*{{$a.ShapeRef}}).v)
		sep = ", "
	}
{{end}}{{end}}	b.WriteString("}")

	return b.String()
}
{{if $r.Equal}}
func (r *{{$r.Ref}}) entryEqual(other *{{$r.Ref}}, k {{$r.KeyGo}}) bool {
	a, aok := r.getEntry(k)
	b, bok := other.getEntry(k)

	if aok != bok {
		return false
	}

	return !aok || a.equalVal(b)
}

// Equal reports entry-wise equality.
func (r *{{$r.Ref}}) Equal(other *{{$r.Ref}}) bool {
	if r == other {
		return true
	}

	if r == nil || other == nil {
		return false
	}

	if r.storeSize() != other.storeSize() {
		return false
	}
{{range $a := $r.Accessors}}{{if not $a.Unknown}}
	if !r.entryEqual(other, {{$a.KeyExpr}}) {
		return false
	}
{{end}}{{end}}{{if $r.HasKey}}
	if r.m != nil {
		for k, w := range r.m.All() {
			if k.kind != {{$r.CatchConst}} {
				continue
			}

			o, ok := other.getEntry(k)
			if !ok || !w.equalVal(o) {
				return false
			}
		}
	}
{{end}}
	return true
}
{{end}}{{if $r.Clone}}
// Clone copies the record and its stored values.
func (r *{{$r.Ref}}) Clone() *{{$r.Ref}} {
	if r == nil {
		return nil
	}

	c := &{{$r.Ref}}{}
	if r.m == nil {
		return c
	}

	c.m = {{$r.MapCtor}}(r.m.Len())
{{if $r.HasKey}}
	for k, w := range r.m.All() {
		c.m.Insert(k, w.cloneVal())
	}
{{else}}{{range $a := $r.Accessors}}
	if w, ok := r.m.Get({{$a.KeyExpr}}); ok {
		c.m.Insert({{$a.KeyExpr}}, w.cloneVal())
	}
{{end}}{{end}}
	return c
}
{{end}}{{if $r.Len}}
// Len counts every present entry, known and dynamic.
func (r *{{$r.Ref}}) Len() int {
	return r.storeSize()
}

func (r *{{$r.Ref}}) IsEmpty() bool {
	return r.storeSize() == 0
}
{{end}}{{end}}`, "\n")))
