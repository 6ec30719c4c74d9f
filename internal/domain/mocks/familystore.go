package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ersonp/xungho/internal/domain/entities"
)

// FamilyStore is an in-memory implementation of ports.FamilyStore.
// Slices keep insertion order so queries see the same edge order as SQLite.
type FamilyStore struct {
	mu      sync.Mutex
	People  []entities.Person
	Edges   []entities.Relationship
	Audit   []entities.AuditEntry
	Err     error
	Closed  bool
	nextLog int64
}

// NewFamilyStore creates a new mock FamilyStore.
func NewFamilyStore() *FamilyStore {
	return &FamilyStore{}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *FamilyStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close marks the store closed.
func (m *FamilyStore) Close() error {
	m.Closed = true
	return nil
}

// Person methods.

// SavePerson inserts or updates a person by ID.
func (m *FamilyStore) SavePerson(_ context.Context, p *entities.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	saved := *p
	saved.NormalizedName = entities.NormalizeName(p.Name)
	for i := range m.People {
		if m.People[i].ID == p.ID {
			m.People[i] = saved
			return nil
		}
	}
	m.People = append(m.People, saved)
	return nil
}

// FindPersonByID finds a person by ID.
func (m *FamilyStore) FindPersonByID(_ context.Context, id string) (*entities.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.People {
		if m.People[i].ID == id {
			p := m.People[i]
			return &p, nil
		}
	}
	return nil, nil
}

// FindPeopleByName finds all people whose normalized name matches exactly.
func (m *FamilyStore) FindPeopleByName(_ context.Context, name string) ([]entities.Person, error) {
	return m.filter(func(p *entities.Person) bool {
		return p.NormalizedName == entities.NormalizeName(name)
	}, false, 0)
}

// ListPeople lists people ordered by name with pagination.
func (m *FamilyStore) ListPeople(_ context.Context, limit, offset int) ([]entities.Person, error) {
	all, err := m.filter(func(*entities.Person) bool { return true }, true, 0)
	if err != nil {
		return nil, err
	}
	if offset >= len(all) {
		return []entities.Person{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// SearchPeople searches people by name pattern.
func (m *FamilyStore) SearchPeople(_ context.Context, query string, limit int) ([]entities.Person, error) {
	q := entities.NormalizeName(query)
	return m.filter(func(p *entities.Person) bool {
		return strings.Contains(p.NormalizedName, q)
	}, true, limit)
}

// AllPeople returns every person in insertion order.
func (m *FamilyStore) AllPeople(_ context.Context) ([]entities.Person, error) {
	return m.filter(func(*entities.Person) bool { return true }, false, 0)
}

func (m *FamilyStore) filter(keep func(*entities.Person) bool, byName bool, limit int) ([]entities.Person, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Person, 0, len(m.People))
	for i := range m.People {
		if keep(&m.People[i]) {
			result = append(result, m.People[i])
		}
	}
	if byName {
		sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// DeletePerson deletes a person and the edges touching them.
func (m *FamilyStore) DeletePerson(ctx context.Context, id string) error {
	m.mu.Lock()
	if m.Err != nil {
		m.mu.Unlock()
		return m.Err
	}
	idx := -1
	for i := range m.People {
		if m.People[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("person not found: %s", id)
	}
	m.People = append(m.People[:idx], m.People[idx+1:]...)
	m.mu.Unlock()
	return m.DeleteRelationshipsByPerson(ctx, id)
}

// CountPeople returns the number of people.
func (m *FamilyStore) CountPeople(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.People), nil
}

// Relationship methods.

// SaveRelationship inserts or updates an edge by ID.
func (m *FamilyStore) SaveRelationship(_ context.Context, rel *entities.Relationship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Edges {
		if m.Edges[i].ID == rel.ID {
			m.Edges[i] = *rel
			return nil
		}
	}
	m.Edges = append(m.Edges, *rel)
	return nil
}

// ListRelationships returns every edge in insertion order.
func (m *FamilyStore) ListRelationships(_ context.Context) ([]entities.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]entities.Relationship{}, m.Edges...), nil
}

// FindRelationshipsByPerson finds all edges touching a person.
func (m *FamilyStore) FindRelationshipsByPerson(_ context.Context, personID string) ([]entities.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.Relationship
	for _, e := range m.Edges {
		if e.Involves(personID) {
			result = append(result, e)
		}
	}
	return result, nil
}

// FindRelationshipBetween finds an edge of the given kind between two people.
// Spouse edges match in either direction.
func (m *FamilyStore) FindRelationshipBetween(
	_ context.Context,
	kind entities.EdgeKind,
	personID, relatedPersonID string,
) (*entities.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Edges {
		e := m.Edges[i]
		if e.Kind != kind {
			continue
		}
		forward := e.PersonID == personID && e.RelatedPersonID == relatedPersonID
		backward := kind == entities.EdgeSpouse && e.PersonID == relatedPersonID && e.RelatedPersonID == personID
		if forward || backward {
			return &e, nil
		}
	}
	return nil, nil
}

// DeleteRelationship deletes an edge by ID.
func (m *FamilyStore) DeleteRelationship(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Edges {
		if m.Edges[i].ID == id {
			m.Edges = append(m.Edges[:i], m.Edges[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("relationship not found: %s", id)
}

// DeleteRelationshipsByPerson deletes all edges touching a person.
func (m *FamilyStore) DeleteRelationshipsByPerson(_ context.Context, personID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	kept := m.Edges[:0]
	for _, e := range m.Edges {
		if !e.Involves(personID) {
			kept = append(kept, e)
		}
	}
	m.Edges = kept
	return nil
}

// CountRelationships returns the number of edges.
func (m *FamilyStore) CountRelationships(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Edges), nil
}

// Audit methods.

// LogAction appends an audit entry.
func (m *FamilyStore) LogAction(_ context.Context, action string, personID string, details map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.nextLog++
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:        m.nextLog,
		Action:    action,
		PersonID:  personID,
		Details:   details,
		CreatedAt: time.Now(),
	})
	return nil
}

// FindAuditLog finds audit entries for a person, newest first.
func (m *FamilyStore) FindAuditLog(_ context.Context, personID string) ([]entities.AuditEntry, error) {
	return m.audit(func(e *entities.AuditEntry) bool { return e.PersonID == personID }, 0)
}

// FindAuditLogByAction finds audit entries by action, newest first.
func (m *FamilyStore) FindAuditLogByAction(_ context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	return m.audit(func(e *entities.AuditEntry) bool { return e.Action == action }, limit)
}

func (m *FamilyStore) audit(keep func(*entities.AuditEntry) bool, limit int) ([]entities.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for i := len(m.Audit) - 1; i >= 0; i-- {
		if keep(&m.Audit[i]) {
			result = append(result, m.Audit[i])
			if limit > 0 && len(result) == limit {
				break
			}
		}
	}
	return result, nil
}
