package parsers

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses family trees from YAML format.
type YAMLParser struct{}

// Parse reads a YAML document with "people" and "relationships" sequences.
// Entries carry the line they start on in the source document.
func (p *YAMLParser) Parse(r io.Reader) (*TreeFile, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &TreeFile{}, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return &TreeFile{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing YAML: line %d: expected a mapping with people and relationships", root.Line)
	}

	tree := &TreeFile{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "people":
			if err := decodeSequence(value, &tree.People, func(p *RawPerson, line int) { p.LineNum = line }); err != nil {
				return nil, err
			}
		case "relationships":
			if err := decodeSequence(value, &tree.Relationships, func(r *RawRelationship, line int) { r.LineNum = line }); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("parsing YAML: line %d: unknown section %q", key.Line, key.Value)
		}
	}
	return tree, nil
}

func decodeSequence[T any](node *yaml.Node, out *[]T, setLine func(*T, int)) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("parsing YAML: line %d: expected a list", node.Line)
	}
	items := make([]T, 0, len(node.Content))
	for _, item := range node.Content {
		var v T
		if err := item.Decode(&v); err != nil {
			return fmt.Errorf("parsing YAML: line %d: %w", item.Line, err)
		}
		setLine(&v, item.Line)
		items = append(items, v)
	}
	*out = items
	return nil
}
