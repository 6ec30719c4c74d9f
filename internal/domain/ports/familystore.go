package ports

import (
	"context"

	"github.com/ersonp/xungho/internal/domain/entities"
)

// FamilyStore defines persistence for one family tree: people, the edges
// between them and an audit trail of changes.
//
// Lookups that find nothing return (nil, nil).
type FamilyStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error

	// Person operations

	// SavePerson inserts or updates a person by ID.
	SavePerson(ctx context.Context, person *entities.Person) error

	// FindPersonByID finds a person by ID.
	FindPersonByID(ctx context.Context, id string) (*entities.Person, error)

	// FindPeopleByName finds all people whose normalized name matches exactly.
	FindPeopleByName(ctx context.Context, name string) ([]entities.Person, error)

	// ListPeople lists people ordered by name with pagination.
	ListPeople(ctx context.Context, limit, offset int) ([]entities.Person, error)

	// SearchPeople searches people by name pattern.
	SearchPeople(ctx context.Context, query string, limit int) ([]entities.Person, error)

	// AllPeople returns every person in insertion order.
	AllPeople(ctx context.Context) ([]entities.Person, error)

	// DeletePerson deletes a person by ID.
	DeletePerson(ctx context.Context, id string) error

	// CountPeople returns the number of people in the tree.
	CountPeople(ctx context.Context) (int, error)

	// Relationship operations

	// SaveRelationship inserts or updates an edge by ID.
	SaveRelationship(ctx context.Context, rel *entities.Relationship) error

	// ListRelationships returns every edge in insertion order.
	ListRelationships(ctx context.Context) ([]entities.Relationship, error)

	// FindRelationshipsByPerson finds all edges touching a person.
	FindRelationshipsByPerson(ctx context.Context, personID string) ([]entities.Relationship, error)

	// FindRelationshipBetween finds an edge of the given kind from personID to
	// relatedPersonID. Spouse edges match in either direction.
	FindRelationshipBetween(ctx context.Context, kind entities.EdgeKind, personID, relatedPersonID string) (*entities.Relationship, error)

	// DeleteRelationship deletes an edge by ID.
	DeleteRelationship(ctx context.Context, id string) error

	// DeleteRelationshipsByPerson deletes all edges touching a person.
	DeleteRelationshipsByPerson(ctx context.Context, personID string) error

	// CountRelationships returns the number of edges in the tree.
	CountRelationships(ctx context.Context) (int, error)

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, personID string, details map[string]any) error

	// FindAuditLog finds audit log entries for a person, newest first.
	FindAuditLog(ctx context.Context, personID string) ([]entities.AuditEntry, error)

	// FindAuditLogByAction finds audit log entries by action type, newest first.
	FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error)
}
