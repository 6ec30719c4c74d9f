package entities

import (
	"fmt"
	"strings"
	"time"
)

// Gender is the recorded gender of a person. Kinship vocabulary is
// gendered, so only the two values below are accepted at write time.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// IsFemale reports whether g is GenderFemale.
func (g Gender) IsFemale() bool {
	return g == GenderFemale
}

// ParseGender accepts "male"/"female" and the Vietnamese "nam"/"nữ" forms.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "nam":
		return GenderMale, nil
	case "female", "f", "nữ", "nu":
		return GenderFemale, nil
	default:
		return "", fmt.Errorf("invalid gender: %q (valid: male, female)", s)
	}
}

// Person is a member of a family tree.
type Person struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	NormalizedName string     `json:"-" yaml:"-"`
	Gender         Gender     `json:"gender" yaml:"gender"`
	BirthDate      *time.Time `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	DeathDate      *time.Time `json:"death_date,omitempty" yaml:"death_date,omitempty"`
	Alive          bool       `json:"alive" yaml:"alive"`
	BirthOrder     *int       `json:"birth_order,omitempty" yaml:"birth_order,omitempty"`
	Notes          string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at" yaml:"-"`
}

// NormalizeName converts a name to lowercase for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// DateLayout is the layout used for birth and death dates on input and output.
const DateLayout = "2006-01-02"

// ParseDate parses an optional YYYY-MM-DD date. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return &t, nil
}
