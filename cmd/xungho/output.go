package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/xungho/internal/domain/entities"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func validateOutputFormat(format string) error {
	if !contains(validOutputFormats, format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", format, validOutputFormats)
	}
	return nil
}

// personSummary renders a one-line description such as
// "Trần Văn An (male, b. 1950-03-01, #2)".
func personSummary(p *entities.Person) string {
	parts := []string{string(p.Gender)}
	if p.BirthDate != nil {
		parts = append(parts, "b. "+p.BirthDate.Format(entities.DateLayout))
	}
	if p.DeathDate != nil {
		parts = append(parts, "d. "+p.DeathDate.Format(entities.DateLayout))
	}
	if p.BirthOrder != nil {
		parts = append(parts, fmt.Sprintf("#%d", *p.BirthOrder))
	}
	return fmt.Sprintf("%s (%s)", p.Name, strings.Join(parts, ", "))
}
