package gen

import (
	"sort"

	"record-generator/internal/derive"
	"record-generator/internal/resolve"
)

// fileData holds everything the file template needs. The builder flattens
// artifact sets into plain strings so the template stays substitution only.
type fileData struct {
	Package string
	Source  string
	Imports []importSpec
	Records []recordData
}

type importSpec struct {
	Alias string
	Path  string
}

type recordData struct {
	Name       string
	Ref        string // Name plus type arguments
	ParamsDecl string // "[T any]" or ""
	Args       string // "[T]" or ""
	Backing    string
	ZeroUsable bool

	KindType   string
	Consts     []string
	HasKey     bool
	KeyDecl    string
	KeyRef     string
	KeyGo      string // the backing map's key type
	CatchKeyGo string
	CatchConst string

	IfaceDecl string
	IfaceRef  string
	Shapes    []shapeData

	MapType string
	MapCtor string

	Ctor      ctorData
	Accessors []accessorData
	Companion companionData

	Clone bool
	Equal bool
	Len   bool
}

type shapeData struct {
	Type   string
	Decl   string
	Ref    string
	Inner  string
	Fields string
}

type ctorData struct {
	Name    string
	Params  []paramData
	Inserts []insertData
}

type paramData struct {
	Name string
	Type string
}

type insertData struct {
	KeyExpr  string
	ShapeRef string
	Param    string
}

type accessorData struct {
	Field    string
	Required bool
	Optional bool
	Unknown  bool

	Getter    string
	PtrGetter string
	Setter    string
	Remover   string
	Add       string
	Iter      string

	Inner        string
	ShapeRef     string
	Const        string
	KeyExpr      string
	CatchKeyExpr string
	KeyGo        string
	Panic        string
}

type companionData struct {
	Type   string
	Decl   string
	Ref    string
	Method string
	Fields []companionFieldData
}

type companionFieldData struct {
	Name     string
	Field    string
	Take     string
	Unknown  bool
	Inner    string
	MapGo    string
	KeyExpr  string
	Const    string
	ShapeRef string
}

// buildFileData flattens the artifact sets for one output file.
func buildFileData(sets []*derive.ArtifactSet, opts Options) *fileData {
	data := &fileData{
		Package: opts.Package,
		Source:  opts.Source,
	}

	needIter := false
	for _, set := range sets {
		rec := buildRecordData(set)
		data.Records = append(data.Records, rec)

		if rec.HasKey {
			needIter = true
		}
	}

	paths := map[string]bool{
		"fmt":                     true,
		"strings":                 true,
		"record-generator/record": true,
	}
	if needIter {
		paths["iter"] = true
	}

	for _, p := range opts.Imports {
		paths[p] = true
	}

	for p := range paths {
		data.Imports = append(data.Imports, importSpec{Path: p})
	}

	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	return data
}

func buildRecordData(set *derive.ArtifactSet) recordData {
	params := typeParamsDecl(set.TypeParams)
	args := typeArgs(set.TypeParams)

	rec := recordData{
		Name:       set.Record,
		Ref:        set.Record + args,
		ParamsDecl: params,
		Args:       args,
		Backing:    set.Backing.Kind,
		ZeroUsable: set.Derives.Default,
		KindType:   set.Discriminant.KindType,
		IfaceDecl:  set.Container.Interface + params,
		IfaceRef:   set.Container.Interface + args,
		Clone:      set.Derives.Clone,
		Equal:      set.Derives.Equal,
		Len:        set.Derives.Len,
	}

	for _, label := range set.Discriminant.Labels {
		rec.Consts = append(rec.Consts, label.Const)
	}

	if catch := set.Discriminant.CatchAll; catch != nil {
		rec.Consts = append(rec.Consts, catch.Const)
		rec.HasKey = true
		rec.KeyDecl = set.Discriminant.KeyType + params
		rec.KeyRef = set.Discriminant.KeyType + args
		rec.KeyGo = rec.KeyRef
		rec.CatchKeyGo = goType(catch.Key)
		rec.CatchConst = catch.Const
	} else {
		rec.KeyGo = rec.KindType
	}

	rec.MapType = mapType(rec)
	rec.MapCtor = set.Backing.Constructor + "[" + rec.KeyGo + ", " + rec.IfaceRef + "]"

	for _, shape := range set.Container.Shapes {
		rec.Shapes = append(rec.Shapes, shapeData{
			Type:   shape.Type,
			Decl:   shape.Type + params,
			Ref:    shape.Type + args,
			Inner:  goType(shape.Inner),
			Fields: fieldList(shape.Fields),
		})
	}

	shapeRefs := map[string]string{}
	for i, shape := range set.Container.Shapes {
		shapeRefs[shape.Type] = rec.Shapes[i].Ref
	}

	rec.Ctor = buildCtorData(set, rec, shapeRefs)
	rec.Accessors = buildAccessorData(set, rec, shapeRefs)
	rec.Companion = buildCompanionData(set, rec, shapeRefs)

	return rec
}

func mapType(rec recordData) string {
	if rec.HasKey {
		return "record.IterableMap[" + rec.KeyGo + ", " + rec.IfaceRef + "]"
	}

	return "record.Map[" + rec.KeyGo + ", " + rec.IfaceRef + "]"
}

// knownKeyExpr builds the map key expression for a known field's constant.
func knownKeyExpr(rec recordData, constName string) string {
	if rec.HasKey {
		return rec.KeyRef + "{kind: " + constName + "}"
	}

	return constName
}

func buildCtorData(set *derive.ArtifactSet, rec recordData, shapeRefs map[string]string) ctorData {
	ctor := ctorData{Name: set.Constructor.Name}

	shapeByField := map[string]string{}
	constByField := map[string]string{}

	for _, fam := range set.Accessors {
		shapeByField[fam.Field] = shapeRefs[fam.Shape]
		constByField[fam.Field] = fam.Const
	}

	for _, param := range set.Constructor.Params {
		ctor.Params = append(ctor.Params, paramData{
			Name: param.Name,
			Type: goType(param.Type),
		})

		ctor.Inserts = append(ctor.Inserts, insertData{
			KeyExpr:  knownKeyExpr(rec, constByField[param.Field]),
			ShapeRef: shapeByField[param.Field],
			Param:    param.Name,
		})
	}

	return ctor
}

func buildAccessorData(set *derive.ArtifactSet, rec recordData, shapeRefs map[string]string) []accessorData {
	out := make([]accessorData, 0, len(set.Accessors))

	for _, fam := range set.Accessors {
		a := accessorData{
			Field:     fam.Field,
			Getter:    fam.Names.Getter,
			PtrGetter: fam.Names.PtrGetter,
			Setter:    fam.Names.Setter,
			Remover:   fam.Names.Remover,
			Add:       fam.Names.Add,
			Iter:      fam.Names.Iter,
			Inner:     goType(fam.Inner),
			ShapeRef:  shapeRefs[fam.Shape],
			Const:     fam.Const,
			Panic:     set.Record + ": required field " + fam.Field + " is missing",
		}

		switch fam.Kind {
		case resolve.FieldRequired:
			a.Required = true
			a.KeyExpr = knownKeyExpr(rec, fam.Const)
		case resolve.FieldOptional:
			a.Optional = true
			a.KeyExpr = knownKeyExpr(rec, fam.Const)
		case resolve.FieldUnknown:
			a.Unknown = true
			a.KeyGo = goType(fam.Key)
			a.CatchKeyExpr = rec.KeyRef + "{kind: " + fam.Const + ", key: key}"
		}

		out = append(out, a)
	}

	return out
}

func buildCompanionData(set *derive.ArtifactSet, rec recordData, shapeRefs map[string]string) companionData {
	comp := companionData{
		Type:   set.Companion.Type,
		Decl:   set.Companion.Type + rec.ParamsDecl,
		Ref:    set.Companion.Type + rec.Args,
		Method: set.Companion.Method,
	}

	shapeByField := map[string]string{}
	constByField := map[string]string{}

	for _, fam := range set.Accessors {
		shapeByField[fam.Field] = shapeRefs[fam.Shape]
		constByField[fam.Field] = fam.Const
	}

	for _, field := range set.Companion.Fields {
		f := companionFieldData{
			Name:     field.Name,
			Field:    field.Field,
			Take:     field.Take,
			Inner:    goType(field.Inner),
			Const:    constByField[field.Field],
			ShapeRef: shapeByField[field.Field],
		}

		if field.Kind == resolve.FieldUnknown {
			f.Unknown = true
			f.MapGo = "map[" + goType(field.Key) + "]" + goType(field.Inner)
		} else {
			f.KeyExpr = knownKeyExpr(rec, constByField[field.Field])
		}

		comp.Fields = append(comp.Fields, f)
	}

	return comp
}

func fieldList(fields []string) string {
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += ", "
		}

		out += f
	}

	return out
}
