package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/xungho/internal/domain/entities"
	"github.com/ersonp/xungho/internal/domain/services"
)

// DefaultListLimit is the page size when none is given.
const DefaultListLimit = 50

// PersonHandler handles person operations.
type PersonHandler struct {
	service *services.FamilyService
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(service *services.FamilyService) *PersonHandler {
	return &PersonHandler{service: service}
}

// AddPersonInput holds raw person fields as given on the command line.
type AddPersonInput struct {
	ID         string // Optional; generated when empty
	Name       string
	Gender     string // male/female or nam/nữ
	Born       string // YYYY-MM-DD, optional
	Died       string // YYYY-MM-DD, optional
	BirthOrder int    // 0 means unknown
	Notes      string
}

// ListPeopleOptions configures person listing.
type ListPeopleOptions struct {
	Search string // Name substring filter (empty = all)
	Limit  int
	Offset int
}

// PersonDetails is a person with their edges and change history.
type PersonDetails struct {
	Person        entities.Person       `json:"person"`
	Relationships []RelationshipInfo    `json:"relationships"`
	History       []entities.AuditEntry `json:"history,omitempty"`
}

// HandleAdd parses and stores a new person.
func (h *PersonHandler) HandleAdd(ctx context.Context, in AddPersonInput) (*entities.Person, error) {
	gender, err := entities.ParseGender(in.Gender)
	if err != nil {
		return nil, err
	}
	born, err := entities.ParseDate(in.Born)
	if err != nil {
		return nil, fmt.Errorf("birth date: %w", err)
	}
	died, err := entities.ParseDate(in.Died)
	if err != nil {
		return nil, fmt.Errorf("death date: %w", err)
	}

	p := entities.Person{
		ID:        in.ID,
		Name:      in.Name,
		Gender:    gender,
		BirthDate: born,
		DeathDate: died,
		Alive:     true,
		Notes:     in.Notes,
	}
	if in.BirthOrder != 0 {
		order := in.BirthOrder
		p.BirthOrder = &order
	}

	return h.service.AddPerson(ctx, p)
}

// HandleList lists people, optionally filtered by name.
func (h *PersonHandler) HandleList(ctx context.Context, opts ListPeopleOptions) ([]entities.Person, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}
	if opts.Search != "" {
		return h.service.SearchPeople(ctx, opts.Search, opts.Limit)
	}
	return h.service.ListPeople(ctx, opts.Limit, opts.Offset)
}

// HandleShow returns a person, given by ID or unique name, with their edges
// and history.
func (h *PersonHandler) HandleShow(ctx context.Context, ref string) (*PersonDetails, error) {
	p, err := h.service.ResolvePerson(ctx, ref)
	if err != nil {
		return nil, err
	}

	rels, err := describeRelationships(ctx, h.service, p.ID)
	if err != nil {
		return nil, err
	}

	history, err := h.service.History(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	return &PersonDetails{
		Person:        *p,
		Relationships: rels,
		History:       history,
	}, nil
}

// HandleDelete removes a person, given by ID or unique name, and returns
// the removed record.
func (h *PersonHandler) HandleDelete(ctx context.Context, ref string) (*entities.Person, error) {
	p, err := h.service.ResolvePerson(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := h.service.DeletePerson(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// TreeStats counts the people and relationships in a tree.
type TreeStats struct {
	People        int `json:"people"`
	Relationships int `json:"relationships"`
}

// HandleStats returns the size of the tree.
func (h *PersonHandler) HandleStats(ctx context.Context) (*TreeStats, error) {
	people, edges, err := h.service.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &TreeStats{People: people, Relationships: edges}, nil
}

// DefaultHistoryLimit caps action log listings.
const DefaultHistoryLimit = 20

// HandleActionLog returns the newest audit entries recorded for action.
func (h *PersonHandler) HandleActionLog(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	switch action {
	case entities.ActionPersonAdded, entities.ActionPersonDeleted,
		entities.ActionRelationshipAdded, entities.ActionRelationshipDeleted,
		entities.ActionTreeImported:
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return h.service.ActionLog(ctx, action, limit)
}
