package parsers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/xungho/internal/domain/entities"
)

// FromEntities converts stored people and edges into a TreeFile that
// parses back into the same tree.
func FromEntities(people []entities.Person, edges []entities.Relationship) *TreeFile {
	tree := &TreeFile{
		People:        make([]RawPerson, 0, len(people)),
		Relationships: make([]RawRelationship, 0, len(edges)),
	}
	for i := range people {
		p := &people[i]
		raw := RawPerson{
			ID:         p.ID,
			Name:       p.Name,
			Gender:     string(p.Gender),
			BirthOrder: p.BirthOrder,
			Notes:      p.Notes,
		}
		if p.BirthDate != nil {
			raw.BirthDate = p.BirthDate.Format(entities.DateLayout)
		}
		if p.DeathDate != nil {
			raw.DeathDate = p.DeathDate.Format(entities.DateLayout)
		}
		if !p.Alive {
			alive := false
			raw.Alive = &alive
		}
		tree.People = append(tree.People, raw)
	}
	for i := range edges {
		tree.Relationships = append(tree.Relationships, RawRelationship{
			Kind:    string(edges[i].Kind),
			Person:  edges[i].PersonID,
			Related: edges[i].RelatedPersonID,
		})
	}
	return tree
}

// Write encodes tree to w. Supported formats: "json", "yaml".
func Write(w io.Writer, format string, tree *TreeFile) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported export format: %q (valid: json, yaml)", format)
	}
	return nil
}
