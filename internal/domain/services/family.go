package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/xungho/internal/domain/entities"
	"github.com/ersonp/xungho/internal/domain/ports"
)

// Sentinel errors for family tree writes and lookups.
var (
	ErrPersonNotFound = errors.New("person not found")
	ErrAmbiguousName  = errors.New("name matches more than one person")
	ErrSelfLoop       = errors.New("a person cannot be linked to themselves")
	ErrDuplicateEdge  = errors.New("relationship already exists")
	ErrTooManyParents = errors.New("person already has two parents")
	ErrCycle          = errors.New("relationship would make a person their own ancestor")
	ErrInvalidPerson  = errors.New("invalid person")
)

// maxParents is the number of parent edges a person may have.
const maxParents = 2

// FamilyService manages the people and edges of one family tree.
type FamilyService struct {
	store ports.FamilyStore
}

// NewFamilyService creates a new FamilyService.
func NewFamilyService(store ports.FamilyStore) *FamilyService {
	return &FamilyService{store: store}
}

// AddPerson validates and stores a new person. An empty ID gets a fresh UUID.
func (s *FamilyService) AddPerson(ctx context.Context, p entities.Person) (*entities.Person, error) {
	if err := validatePerson(&p); err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	} else {
		existing, err := s.store.FindPersonByID(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("checking existing person: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: id %s is already taken", ErrInvalidPerson, p.ID)
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.NormalizedName = entities.NormalizeName(p.Name)

	if err := s.store.SavePerson(ctx, &p); err != nil {
		return nil, fmt.Errorf("saving person: %w", err)
	}
	s.audit(ctx, entities.ActionPersonAdded, p.ID, map[string]any{"name": p.Name})
	return &p, nil
}

// validatePerson checks the fields every stored person must carry.
func validatePerson(p *entities.Person) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPerson)
	}
	if p.Gender != entities.GenderMale && p.Gender != entities.GenderFemale {
		return fmt.Errorf("%w: gender must be male or female", ErrInvalidPerson)
	}
	if p.BirthOrder != nil && *p.BirthOrder < 1 {
		return fmt.Errorf("%w: birth order must be positive", ErrInvalidPerson)
	}
	if p.BirthDate != nil && p.DeathDate != nil && p.DeathDate.Before(*p.BirthDate) {
		return fmt.Errorf("%w: death date is before birth date", ErrInvalidPerson)
	}
	if p.DeathDate != nil {
		p.Alive = false
	}
	return nil
}

// GetPerson returns a person by ID.
func (s *FamilyService) GetPerson(ctx context.Context, id string) (*entities.Person, error) {
	p, err := s.store.FindPersonByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding person: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	return p, nil
}

// ResolvePerson finds a person by ID, falling back to an exact name match.
// A name shared by several people is rejected with ErrAmbiguousName.
func (s *FamilyService) ResolvePerson(ctx context.Context, ref string) (*entities.Person, error) {
	ref = strings.TrimSpace(ref)
	p, err := s.store.FindPersonByID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("finding person: %w", err)
	}
	if p != nil {
		return p, nil
	}

	matches, err := s.store.FindPeopleByName(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("finding person by name: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrPersonNotFound, ref)
	case 1:
		return &matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i := range matches {
			ids[i] = matches[i].ID
		}
		return nil, fmt.Errorf("%w: %q (use one of: %s)", ErrAmbiguousName, ref, strings.Join(ids, ", "))
	}
}

// ListPeople lists people ordered by name.
func (s *FamilyService) ListPeople(ctx context.Context, limit, offset int) ([]entities.Person, error) {
	return s.store.ListPeople(ctx, limit, offset)
}

// SearchPeople finds people whose name contains query.
func (s *FamilyService) SearchPeople(ctx context.Context, query string, limit int) ([]entities.Person, error) {
	return s.store.SearchPeople(ctx, query, limit)
}

// DeletePerson removes a person and every edge touching them.
func (s *FamilyService) DeletePerson(ctx context.Context, id string) error {
	p, err := s.GetPerson(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteRelationshipsByPerson(ctx, id); err != nil {
		return fmt.Errorf("deleting relationships: %w", err)
	}
	if err := s.store.DeletePerson(ctx, id); err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	s.audit(ctx, entities.ActionPersonDeleted, id, map[string]any{"name": p.Name})
	return nil
}

// AddParent links parentID as a parent of childID.
func (s *FamilyService) AddParent(ctx context.Context, parentID, childID string) (*entities.Relationship, error) {
	return s.addEdge(ctx, entities.EdgeParentChild, parentID, childID)
}

// AddSpouse links two people as spouses.
func (s *FamilyService) AddSpouse(ctx context.Context, personID, spouseID string) (*entities.Relationship, error) {
	return s.addEdge(ctx, entities.EdgeSpouse, personID, spouseID)
}

// AddRelationship links two people with an edge of the given kind.
func (s *FamilyService) AddRelationship(ctx context.Context, kind entities.EdgeKind, personID, relatedID string) (*entities.Relationship, error) {
	return s.addEdge(ctx, kind, personID, relatedID)
}

func (s *FamilyService) addEdge(ctx context.Context, kind entities.EdgeKind, from, to string) (*entities.Relationship, error) {
	for _, id := range []string{from, to} {
		if _, err := s.GetPerson(ctx, id); err != nil {
			return nil, err
		}
	}

	edges, err := s.store.ListRelationships(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading relationships: %w", err)
	}
	if err := checkEdge(edges, kind, from, to); err != nil {
		slog.Warn("rejected relationship",
			slog.String("kind", string(kind)),
			slog.String("person", from),
			slog.String("related", to),
			slog.String("reason", err.Error()),
		)
		return nil, err
	}

	rel := &entities.Relationship{
		ID:              uuid.New().String(),
		PersonID:        from,
		RelatedPersonID: to,
		Kind:            kind,
		CreatedAt:       time.Now(),
	}
	if err := s.store.SaveRelationship(ctx, rel); err != nil {
		return nil, fmt.Errorf("saving relationship: %w", err)
	}
	s.audit(ctx, entities.ActionRelationshipAdded, from, map[string]any{
		"id":      rel.ID,
		"kind":    string(kind),
		"related": to,
	})
	return rel, nil
}

// checkEdge validates a new edge against the existing ones. Parent edges
// must keep the tree acyclic and give nobody more than two parents.
func checkEdge(edges []entities.Relationship, kind entities.EdgeKind, from, to string) error {
	if from == to {
		return ErrSelfLoop
	}

	parents := 0
	for i := range edges {
		e := &edges[i]
		if e.Kind != kind {
			continue
		}
		if e.PersonID == from && e.RelatedPersonID == to {
			return fmt.Errorf("%w (id: %s)", ErrDuplicateEdge, e.ID)
		}
		if kind == entities.EdgeSpouse && e.PersonID == to && e.RelatedPersonID == from {
			return fmt.Errorf("%w (id: %s)", ErrDuplicateEdge, e.ID)
		}
		if kind == entities.EdgeParentChild && e.RelatedPersonID == to {
			parents++
		}
	}
	if kind != entities.EdgeParentChild {
		return nil
	}
	if parents >= maxParents {
		return ErrTooManyParents
	}
	if isAncestor(edges, to, from) {
		return ErrCycle
	}
	return nil
}

// isAncestor reports whether ancestor is reachable from person by walking
// parent edges upward.
func isAncestor(edges []entities.Relationship, ancestor, person string) bool {
	parentsOf := make(map[string][]string)
	for i := range edges {
		if edges[i].Kind == entities.EdgeParentChild {
			child := edges[i].RelatedPersonID
			parentsOf[child] = append(parentsOf[child], edges[i].PersonID)
		}
	}

	seen := map[string]bool{person: true}
	stack := []string{person}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range parentsOf[cur] {
			if p == ancestor {
				return true
			}
			if !seen[p] {
				seen[p] = true
				stack = append(stack, p)
			}
		}
	}
	return false
}

// DeleteRelationship removes an edge by ID.
func (s *FamilyService) DeleteRelationship(ctx context.Context, id string) error {
	if err := s.store.DeleteRelationship(ctx, id); err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	s.audit(ctx, entities.ActionRelationshipDeleted, "", map[string]any{"id": id})
	return nil
}

// RelationshipsOf returns the edges touching a person.
func (s *FamilyService) RelationshipsOf(ctx context.Context, personID string) ([]entities.Relationship, error) {
	if _, err := s.GetPerson(ctx, personID); err != nil {
		return nil, err
	}
	return s.store.FindRelationshipsByPerson(ctx, personID)
}

// History returns the audit entries for a person, newest first.
func (s *FamilyService) History(ctx context.Context, personID string) ([]entities.AuditEntry, error) {
	return s.store.FindAuditLog(ctx, personID)
}

// ActionLog returns the most recent audit entries for one action.
func (s *FamilyService) ActionLog(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	entries, err := s.store.FindAuditLogByAction(ctx, action, limit)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	return entries, nil
}

// Snapshot returns every person and edge of the tree in insertion order.
func (s *FamilyService) Snapshot(ctx context.Context) ([]entities.Person, []entities.Relationship, error) {
	people, err := s.store.AllPeople(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading people: %w", err)
	}
	edges, err := s.store.ListRelationships(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading relationships: %w", err)
	}
	return people, edges, nil
}

// Stats returns the number of people and edges in the tree.
func (s *FamilyService) Stats(ctx context.Context) (people, edges int, err error) {
	if people, err = s.store.CountPeople(ctx); err != nil {
		return 0, 0, fmt.Errorf("counting people: %w", err)
	}
	if edges, err = s.store.CountRelationships(ctx); err != nil {
		return 0, 0, fmt.Errorf("counting relationships: %w", err)
	}
	return people, edges, nil
}

// audit records a change. A failed audit write is logged, not returned.
func (s *FamilyService) audit(ctx context.Context, action, personID string, details map[string]any) {
	if err := s.store.LogAction(ctx, action, personID, details); err != nil {
		slog.Warn("failed to write audit entry",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
	}
}
