package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses family trees from JSON format.
type JSONParser struct{}

// Parse reads a JSON object with "people" and "relationships" arrays.
func (p *JSONParser) Parse(r io.Reader) (*TreeFile, error) {
	var tree TreeFile

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&tree); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Line numbers are array indexes (1-indexed) within each section.
	for i := range tree.People {
		tree.People[i].LineNum = i + 1
	}
	for i := range tree.Relationships {
		tree.Relationships[i].LineNum = i + 1
	}

	return &tree, nil
}
