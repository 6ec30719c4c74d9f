package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/xungho/internal/domain/entities"
	"github.com/ersonp/xungho/internal/domain/services"
)

// Roles of the other person on an edge, seen from the listed person.
const (
	RoleParent = "parent"
	RoleChild  = "child"
	RoleSpouse = "spouse"
)

// RelationshipHandler handles edge operations.
type RelationshipHandler struct {
	service *services.FamilyService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(service *services.FamilyService) *RelationshipHandler {
	return &RelationshipHandler{service: service}
}

// RelationshipInfo is an edge seen from one of its endpoints.
type RelationshipInfo struct {
	Relationship entities.Relationship `json:"relationship"`
	Role         string                `json:"role"` // parent, child or spouse
	Other        *entities.Person      `json:"other,omitempty"`
}

// ListResult contains the edges of a person.
type ListResult struct {
	Person        entities.Person    `json:"person"`
	Relationships []RelationshipInfo `json:"relationships"`
}

// HandleLink creates an edge of the given kind. For parent_child, personRef
// is the parent. People may be given by ID or unique name.
func (h *RelationshipHandler) HandleLink(ctx context.Context, kind, personRef, relatedRef string) (*entities.Relationship, error) {
	k, err := entities.ParseEdgeKind(kind)
	if err != nil {
		return nil, err
	}

	a, err := h.service.ResolvePerson(ctx, personRef)
	if err != nil {
		return nil, err
	}
	b, err := h.service.ResolvePerson(ctx, relatedRef)
	if err != nil {
		return nil, err
	}

	return h.service.AddRelationship(ctx, k, a.ID, b.ID)
}

// HandleDelete removes an edge by ID.
func (h *RelationshipHandler) HandleDelete(ctx context.Context, id string) error {
	return h.service.DeleteRelationship(ctx, id)
}

// HandleList returns the edges of a person given by ID or unique name.
func (h *RelationshipHandler) HandleList(ctx context.Context, ref string) (*ListResult, error) {
	p, err := h.service.ResolvePerson(ctx, ref)
	if err != nil {
		return nil, err
	}

	rels, err := describeRelationships(ctx, h.service, p.ID)
	if err != nil {
		return nil, err
	}

	return &ListResult{Person: *p, Relationships: rels}, nil
}

// describeRelationships loads the edges of a person and resolves the person
// at the other end of each.
func describeRelationships(ctx context.Context, service *services.FamilyService, personID string) ([]RelationshipInfo, error) {
	relationships, err := service.RelationshipsOf(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}

	infos := make([]RelationshipInfo, 0, len(relationships))
	for i := range relationships {
		rel := relationships[i]
		otherID, role := rel.RelatedPersonID, RoleSpouse
		if rel.Kind == entities.EdgeParentChild {
			role = RoleChild
			if rel.RelatedPersonID == personID {
				otherID, role = rel.PersonID, RoleParent
			}
		} else if rel.RelatedPersonID == personID {
			otherID = rel.PersonID
		}

		other, err := service.GetPerson(ctx, otherID)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", otherID, err)
		}

		infos = append(infos, RelationshipInfo{
			Relationship: rel,
			Role:         role,
			Other:        other,
		})
	}
	return infos, nil
}
