package derive

import (
	"fmt"
	"strings"

	"record-generator/internal/resolve"
	"record-generator/internal/schema"
)

// Derive builds the artifact set for a validated model. It never fails:
// every input invariant was enforced by resolution, so derivation is a
// straight computation.
func Derive(model *resolve.Model) *ArtifactSet {
	cfg := model.Config
	prefix := unexported(cfg.Name)

	set := &ArtifactSet{
		Record:     cfg.Name,
		TypeParams: cfg.TypeParams,
		Backing: BackingSpec{
			Kind:        cfg.Backing.Name,
			Constructor: cfg.Backing.Constructor,
			Ordered:     cfg.Backing.Ordered,
		},
	}

	set.Discriminant = deriveDiscriminant(model, prefix)
	set.Container = deriveContainer(model, prefix)
	set.Constructor = deriveConstructor(model)
	set.Accessors = deriveAccessors(model, set)
	set.Companion = deriveCompanion(model)
	set.Derives = DeriveSet{
		Clone:   cfg.DeriveClone,
		Equal:   cfg.DeriveEqual,
		Default: model.AllOptional(),
		Len:     cfg.WithLen,
	}

	return set
}

func deriveDiscriminant(model *resolve.Model, prefix string) DiscriminantSpec {
	spec := DiscriminantSpec{KindType: prefix + "Kind"}

	for _, field := range model.Known() {
		spec.Labels = append(spec.Labels, DiscriminantLabel{
			Const: spec.KindType + field.Names.Label,
			Field: field.Name,
			Label: field.Names.Label,
		})
	}

	unknown, ok := model.Unknown()
	if !ok {
		// Plain constants are the whole key: copying one is copying an
		// integer.
		spec.CheapCopy = true
		return spec
	}

	spec.KeyType = prefix + "Key"
	spec.CatchAll = &CatchAllLabel{
		Const: spec.KindType + unknown.Names.Label,
		Field: unknown.Name,
		Label: unknown.Names.Label,
		Key:   unknown.Class.Key,
	}

	return spec
}

// deriveContainer groups fields by stored type. Distinctness is textual
// over the normalized type expression, which matches how the generated
// wrapper types must split anyway.
func deriveContainer(model *resolve.Model, prefix string) ContainerSpec {
	spec := ContainerSpec{Interface: prefix + "Val"}

	byInner := map[string]int{}
	taken := map[string]bool{}

	for i := range model.Fields {
		field := &model.Fields[i]
		inner := field.Class.Inner

		if at, ok := byInner[inner.Raw]; ok {
			spec.Shapes[at].Fields = append(spec.Shapes[at].Fields, field.Name)
			continue
		}

		name := spec.Interface + shapeIdent(inner)
		for n := 2; taken[name]; n++ {
			name = spec.Interface + shapeIdent(inner) + fmt.Sprint(n)
		}

		taken[name] = true
		byInner[inner.Raw] = len(spec.Shapes)
		spec.Shapes = append(spec.Shapes, ContainerShape{
			Type:   name,
			Inner:  inner,
			Fields: []string{field.Name},
		})
	}

	return spec
}

func deriveConstructor(model *resolve.Model) ConstructorSpec {
	spec := ConstructorSpec{Name: model.Config.Constructor}

	for _, field := range model.Required() {
		spec.Params = append(spec.Params, Param{
			Name:  unexported(field.Names.Label),
			Field: field.Name,
			Type:  field.Class.Inner,
		})
	}

	return spec
}

func deriveAccessors(model *resolve.Model, set *ArtifactSet) []AccessorFamily {
	shapeByInner := map[string]string{}
	for _, shape := range set.Container.Shapes {
		shapeByInner[shape.Inner.Raw] = shape.Type
	}

	constByField := map[string]string{}
	for _, label := range set.Discriminant.Labels {
		constByField[label.Field] = label.Const
	}

	if set.Discriminant.CatchAll != nil {
		constByField[set.Discriminant.CatchAll.Field] = set.Discriminant.CatchAll.Const
	}

	families := make([]AccessorFamily, 0, len(model.Fields))
	for i := range model.Fields {
		field := &model.Fields[i]

		families = append(families, AccessorFamily{
			Field: field.Name,
			Kind:  field.Class.Kind,
			Names: field.Names,
			Inner: field.Class.Inner,
			Key:   field.Class.Key,
			Shape: shapeByInner[field.Class.Inner.Raw],
			Const: constByField[field.Name],
		})
	}

	return families
}

func deriveCompanion(model *resolve.Model) CompanionSpec {
	spec := CompanionSpec{
		Type:   model.Config.Name + "Fields",
		Method: "Decompose",
	}

	for i := range model.Fields {
		field := &model.Fields[i]

		spec.Fields = append(spec.Fields, CompanionField{
			Name:  unexported(field.Names.Label),
			Field: field.Name,
			Take:  field.Names.Take,
			Kind:  field.Class.Kind,
			Inner: field.Class.Inner,
			Key:   field.Class.Key,
		})
	}

	return spec
}

// unexported lowercases the leading rune. Results that land on a keyword
// get a trailing underscore so they stay valid identifiers.
func unexported(name string) string {
	if name == "" {
		return name
	}

	out := strings.ToLower(name[:1]) + name[1:]
	if !schema.IsIdent(out) {
		out += "_"
	}

	return out
}

// shapeIdent mangles a type expression into an identifier suffix:
// "string" becomes String, "[]byte" becomes ByteSlice, "map[string]int"
// becomes StringIntMap. Mangling can collide for contrived inputs; the
// caller disambiguates with a numeric suffix.
func shapeIdent(t schema.TypeExpr) string {
	switch t.Kind {
	case schema.TypePointer:
		return shapeIdent(*t.Elem) + "Ptr"
	case schema.TypeSlice:
		return shapeIdent(*t.Elem) + "Slice"
	case schema.TypeArray:
		return shapeIdent(*t.Elem) + "Array"
	case schema.TypeMap:
		return shapeIdent(*t.Key) + shapeIdent(*t.Elem) + "Map"
	case schema.TypeFunc:
		return "Func"
	default:
		name := exported(t.LastSegment())
		for _, arg := range t.Args {
			name += shapeIdent(arg)
		}

		return name
	}
}

func exported(name string) string {
	if name == "" {
		return name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}
