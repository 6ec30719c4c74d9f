package entities

import "time"

// Audit actions recorded by the family service.
const (
	ActionPersonAdded         = "person.added"
	ActionPersonDeleted       = "person.deleted"
	ActionRelationshipAdded   = "relationship.added"
	ActionRelationshipDeleted = "relationship.deleted"
	ActionTreeImported        = "tree.imported"
)

// AuditEntry represents a logged change to a family tree.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	PersonID  string         `json:"person_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
