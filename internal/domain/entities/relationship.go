package entities

import (
	"fmt"
	"strings"
	"time"
)

// EdgeKind defines the kind of link between two people.
type EdgeKind string

const (
	// EdgeParentChild links a parent (PersonID) to a child (RelatedPersonID).
	EdgeParentChild EdgeKind = "parent_child"
	// EdgeSpouse links two spouses; the pair is unordered.
	EdgeSpouse EdgeKind = "spouse"
)

// ParseEdgeKind validates and converts a string to EdgeKind.
func ParseEdgeKind(s string) (EdgeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parent_child", "parent", "child":
		return EdgeParentChild, nil
	case "spouse":
		return EdgeSpouse, nil
	default:
		return "", fmt.Errorf("invalid relationship kind: %s (valid: parent_child, spouse)", s)
	}
}

// Relationship is a typed edge between two people of the same tree.
type Relationship struct {
	ID              string    `json:"id" yaml:"id"`
	PersonID        string    `json:"person_id" yaml:"person_id"`
	RelatedPersonID string    `json:"related_person_id" yaml:"related_person_id"`
	Kind            EdgeKind  `json:"kind" yaml:"kind"`
	CreatedAt       time.Time `json:"created_at" yaml:"-"`
}

// Involves reports whether the edge touches the given person.
func (r Relationship) Involves(personID string) bool {
	return r.PersonID == personID || r.RelatedPersonID == personID
}
