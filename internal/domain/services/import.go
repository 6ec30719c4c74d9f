package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/xungho/internal/domain/entities"
	"github.com/ersonp/xungho/internal/domain/ports"
	"github.com/ersonp/xungho/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle people whose ID already exists.
type ConflictStrategy string

const (
	// ConflictSkip keeps the stored person and ignores the imported one.
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite replaces the stored person with the imported data.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ParseConflictStrategy validates a conflict strategy name.
func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	switch ConflictStrategy(s) {
	case "", ConflictSkip:
		return ConflictSkip, nil
	case ConflictOverwrite:
		return ConflictOverwrite, nil
	default:
		return "", fmt.Errorf("invalid conflict strategy: %q (valid: skip, overwrite)", s)
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing people
}

// Sections of a tree file, used to locate import errors.
const (
	SectionPeople        = "people"
	SectionRelationships = "relationships"
)

// ImportError represents an error for a specific entry during import.
type ImportError struct {
	Section string // people or relationships
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s line %d: %s", e.Section, e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	People        int
	Relationships int
	Skipped       int
	Errors        []ImportError
}

// ImportService loads people and edges from parsed tree files. Edges go
// through the same checks as FamilyService writes.
type ImportService struct {
	store ports.FamilyStore
}

// NewImportService creates a new import service.
func NewImportService(store ports.FamilyStore) *ImportService {
	return &ImportService{store: store}
}

// Import validates and stores the content of a tree file. Invalid entries
// are reported in the result and skipped; valid ones are imported.
func (s *ImportService) Import(ctx context.Context, tree *parsers.TreeFile, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	edges, err := s.store.ListRelationships(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading relationships: %w", err)
	}

	people, known, err := s.collectPeople(ctx, tree.People, opts.OnConflict, result)
	if err != nil {
		return nil, err
	}

	newEdges, err := s.collectRelationships(ctx, tree.Relationships, edges, known, result)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		return result, nil
	}

	for i := range people {
		if err := s.store.SavePerson(ctx, &people[i]); err != nil {
			return nil, fmt.Errorf("saving person %s: %w", people[i].ID, err)
		}
	}
	for i := range newEdges {
		if err := s.store.SaveRelationship(ctx, &newEdges[i]); err != nil {
			return nil, fmt.Errorf("saving relationship %s: %w", newEdges[i].ID, err)
		}
	}

	if err := s.store.LogAction(ctx, entities.ActionTreeImported, "", map[string]any{
		"people":        result.People,
		"relationships": result.Relationships,
		"skipped":       result.Skipped,
		"errors":        len(result.Errors),
	}); err != nil {
		return nil, fmt.Errorf("logging import: %w", err)
	}

	return result, nil
}

// collectPeople validates raw people and returns those to save plus the set
// of IDs edges may refer to.
func (s *ImportService) collectPeople(
	ctx context.Context,
	raws []parsers.RawPerson,
	onConflict ConflictStrategy,
	result *ImportResult,
) ([]entities.Person, map[string]bool, error) {
	toSave := make([]entities.Person, 0, len(raws))
	known := make(map[string]bool, len(raws))
	now := time.Now()

	for i := range raws {
		raw := &raws[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		p, ierr := convertRawPerson(raw, lineNum)
		if ierr != nil {
			result.Errors = append(result.Errors, *ierr)
			continue
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		} else if known[p.ID] {
			result.Errors = append(result.Errors, ImportError{
				Section: SectionPeople, Line: lineNum, Field: "id", Value: p.ID,
				Message: fmt.Sprintf("duplicate id %q in file", p.ID),
			})
			continue
		}

		existing, err := s.store.FindPersonByID(ctx, p.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("checking existing person: %w", err)
		}
		known[p.ID] = true
		p.CreatedAt = now
		if existing != nil {
			if onConflict != ConflictOverwrite {
				result.Skipped++
				continue
			}
			p.CreatedAt = existing.CreatedAt
		}

		toSave = append(toSave, *p)
		result.People++
	}

	return toSave, known, nil
}

// convertRawPerson validates a raw person and converts it to an entity.
func convertRawPerson(raw *parsers.RawPerson, lineNum int) (*entities.Person, *ImportError) {
	fail := func(field, value, msg string) *ImportError {
		return &ImportError{Section: SectionPeople, Line: lineNum, Field: field, Value: value, Message: msg}
	}

	if raw.Name == "" {
		return nil, fail("name", "", "missing required field: name")
	}
	gender, err := entities.ParseGender(raw.Gender)
	if err != nil {
		return nil, fail("gender", raw.Gender, err.Error())
	}
	born, err := entities.ParseDate(raw.BirthDate)
	if err != nil {
		return nil, fail("birth_date", raw.BirthDate, err.Error())
	}
	died, err := entities.ParseDate(raw.DeathDate)
	if err != nil {
		return nil, fail("death_date", raw.DeathDate, err.Error())
	}

	p := &entities.Person{
		ID:         raw.ID,
		Name:       raw.Name,
		Gender:     gender,
		BirthDate:  born,
		DeathDate:  died,
		Alive:      raw.Alive == nil || *raw.Alive,
		BirthOrder: raw.BirthOrder,
		Notes:      raw.Notes,
	}
	if err := validatePerson(p); err != nil {
		return nil, fail("", "", err.Error())
	}
	p.NormalizedName = entities.NormalizeName(p.Name)
	return p, nil
}

// collectRelationships validates raw edges against the stored edges and the
// edges accepted earlier in the same file. Edges that already exist are
// counted as skipped so re-importing an export is a no-op.
func (s *ImportService) collectRelationships(
	ctx context.Context,
	raws []parsers.RawRelationship,
	existing []entities.Relationship,
	known map[string]bool,
	result *ImportResult,
) ([]entities.Relationship, error) {
	all := append([]entities.Relationship{}, existing...)
	var accepted []entities.Relationship
	now := time.Now()

	for i := range raws {
		raw := &raws[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}
		fail := func(field, value, msg string) {
			result.Errors = append(result.Errors, ImportError{
				Section: SectionRelationships, Line: lineNum, Field: field, Value: value, Message: msg,
			})
		}

		kind, err := entities.ParseEdgeKind(raw.Kind)
		if err != nil {
			fail("kind", raw.Kind, err.Error())
			continue
		}

		missing := ""
		for _, ref := range []struct{ field, id string }{{"person", raw.Person}, {"related", raw.Related}} {
			ok, err := s.personExists(ctx, ref.id, known)
			if err != nil {
				return nil, err
			}
			if !ok {
				missing = ref.field
				msg := fmt.Sprintf("unknown person %q", ref.id)
				if ref.id == "" {
					msg = "missing required field: " + ref.field
				}
				fail(ref.field, ref.id, msg)
				break
			}
		}
		if missing != "" {
			continue
		}

		if err := checkEdge(all, kind, raw.Person, raw.Related); err != nil {
			if errors.Is(err, ErrDuplicateEdge) {
				result.Skipped++
				continue
			}
			fail("", "", err.Error())
			continue
		}

		rel := entities.Relationship{
			ID:              uuid.New().String(),
			PersonID:        raw.Person,
			RelatedPersonID: raw.Related,
			Kind:            kind,
			CreatedAt:       now,
		}
		all = append(all, rel)
		accepted = append(accepted, rel)
		result.Relationships++
	}

	return accepted, nil
}

// personExists reports whether id names a person in the file or the store.
func (s *ImportService) personExists(ctx context.Context, id string, known map[string]bool) (bool, error) {
	if id == "" {
		return false, nil
	}
	if known[id] {
		return true, nil
	}
	p, err := s.store.FindPersonByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("checking person %s: %w", id, err)
	}
	if p != nil {
		known[id] = true
	}
	return p != nil, nil
}
