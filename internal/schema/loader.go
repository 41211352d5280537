package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML schema file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}

	f.Path = path

	return f, nil
}

// Parse parses YAML schema data into a File.
//
// Attribute keys are collected verbatim and in declaration order; nothing is
// validated here, so misspelled keys survive long enough for resolution to
// report them with their source location.
func Parse(data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	if len(doc.Content) == 0 {
		return &File{Version: "1"}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema root must be a mapping, got %s", nodeKind(root))
	}

	f := &File{Version: "1"}

	for key, value := range mappingPairs(root) {
		switch key.Value {
		case "version":
			f.Version = value.Value

		case "imports":
			if value.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: imports must be a sequence", value.Line)
			}

			for _, in := range value.Content {
				f.Imports = append(f.Imports, in.Value)
			}

		case "records":
			if value.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: records must be a sequence", value.Line)
			}

			for _, rn := range value.Content {
				rec, err := parseRecord(rn)
				if err != nil {
					return nil, err
				}

				f.Records = append(f.Records, rec)
			}

		default:
			return nil, fmt.Errorf("line %d: unknown top-level key %q", key.Line, key.Value)
		}
	}

	return f, nil
}

// parseRecord parses one record declaration node. The keys name, type_params,
// and fields are structural; every other key is an attribute pair.
func parseRecord(n *yaml.Node) (RecordDecl, error) {
	if n.Kind != yaml.MappingNode {
		return RecordDecl{}, fmt.Errorf("line %d: record must be a mapping, got %s", n.Line, nodeKind(n))
	}

	rec := RecordDecl{Line: n.Line}

	for key, value := range mappingPairs(n) {
		switch key.Value {
		case "name":
			rec.Name = value.Value

		case "type_params":
			params, err := parseTypeParams(value)
			if err != nil {
				return RecordDecl{}, err
			}

			rec.TypeParams = params

		case "fields":
			if value.Kind != yaml.SequenceNode {
				return RecordDecl{}, fmt.Errorf("line %d: fields must be a sequence", value.Line)
			}

			for _, fn := range value.Content {
				field, err := parseField(fn)
				if err != nil {
					return RecordDecl{}, err
				}

				rec.Fields = append(rec.Fields, field)
			}

		default:
			attr, err := parseAttr(key, value)
			if err != nil {
				return RecordDecl{}, err
			}

			rec.Attrs = append(rec.Attrs, attr)
		}
	}

	if rec.Name == "" {
		return RecordDecl{}, fmt.Errorf("line %d: record is missing a name", n.Line)
	}

	return rec, nil
}

// parseField parses one field declaration node. The keys name and type are
// structural; every other key is an attribute pair.
func parseField(n *yaml.Node) (FieldDecl, error) {
	if n.Kind != yaml.MappingNode {
		return FieldDecl{}, fmt.Errorf("line %d: field must be a mapping, got %s", n.Line, nodeKind(n))
	}

	field := FieldDecl{Line: n.Line}

	for key, value := range mappingPairs(n) {
		switch key.Value {
		case "name":
			field.Name = value.Value

		case "type":
			field.Type = value.Value

		default:
			attr, err := parseAttr(key, value)
			if err != nil {
				return FieldDecl{}, err
			}

			field.Attrs = append(field.Attrs, attr)
		}
	}

	if field.Name == "" {
		return FieldDecl{}, fmt.Errorf("line %d: field is missing a name", n.Line)
	}

	if field.Type == "" {
		return FieldDecl{}, fmt.Errorf("line %d: field %q is missing a type", n.Line, field.Name)
	}

	return field, nil
}

// parseTypeParams accepts either plain names or {name: constraint} pairs.
func parseTypeParams(n *yaml.Node) ([]TypeParam, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: type_params must be a sequence", n.Line)
	}

	var params []TypeParam

	for _, pn := range n.Content {
		switch pn.Kind {
		case yaml.ScalarNode:
			params = append(params, TypeParam{Name: pn.Value, Constraint: "any"})

		case yaml.MappingNode:
			if len(pn.Content) != 2 {
				return nil, fmt.Errorf("line %d: type parameter must be a single {name: constraint} pair", pn.Line)
			}

			params = append(params, TypeParam{
				Name:       pn.Content[0].Value,
				Constraint: pn.Content[1].Value,
			})

		default:
			return nil, fmt.Errorf("line %d: invalid type parameter", pn.Line)
		}
	}

	return params, nil
}

func parseAttr(key, value *yaml.Node) (Attr, error) {
	if value.Kind != yaml.ScalarNode {
		return Attr{}, fmt.Errorf("line %d: attribute %q expects a scalar value", key.Line, key.Value)
	}

	v := value.Value
	if value.Tag == "!!null" {
		v = ""
	}

	return Attr{Key: key.Value, Value: v, Line: key.Line}, nil
}

// mappingPairs iterates the key/value node pairs of a mapping in order.
func mappingPairs(n *yaml.Node) func(yield func(*yaml.Node, *yaml.Node) bool) {
	return func(yield func(*yaml.Node, *yaml.Node) bool) {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if !yield(n.Content[i], n.Content[i+1]) {
				return
			}
		}
	}
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "document"
	}
}
