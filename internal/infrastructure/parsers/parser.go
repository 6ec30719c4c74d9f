// Package parsers reads and writes family tree files in JSON, YAML and CSV.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawPerson is a person parsed from an external source before validation.
type RawPerson struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string `json:"name" yaml:"name"`
	Gender     string `json:"gender" yaml:"gender"`
	BirthDate  string `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	DeathDate  string `json:"death_date,omitempty" yaml:"death_date,omitempty"`
	BirthOrder *int   `json:"birth_order,omitempty" yaml:"birth_order,omitempty"` // Pointer to distinguish 0 from unset
	Alive      *bool  `json:"alive,omitempty" yaml:"alive,omitempty"`
	Notes      string `json:"notes,omitempty" yaml:"notes,omitempty"`
	LineNum    int    `json:"-" yaml:"-"` // Line number in source file (set by parser)
}

// RawRelationship is an edge parsed from an external source. Person and
// Related refer to person IDs from the same file or the existing tree.
// For parent_child edges Person is the parent.
type RawRelationship struct {
	Kind    string `json:"kind" yaml:"kind"`
	Person  string `json:"person" yaml:"person"`
	Related string `json:"related" yaml:"related"`
	LineNum int    `json:"-" yaml:"-"`
}

// TreeFile is the parsed content of a family tree file.
type TreeFile struct {
	People        []RawPerson       `json:"people" yaml:"people"`
	Relationships []RawRelationship `json:"relationships" yaml:"relationships"`
}

// Parser defines the interface for parsing family trees from various formats.
type Parser interface {
	Parse(r io.Reader) (*TreeFile, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "yaml", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "yaml", "yml":
		return &YAMLParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return ForFormat(ext)
}
