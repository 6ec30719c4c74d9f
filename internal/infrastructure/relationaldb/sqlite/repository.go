// Package sqlite provides a SQLite implementation of the FamilyStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ersonp/xungho/internal/domain/entities"
	"github.com/ersonp/xungho/internal/infrastructure/config"
	"github.com/ersonp/xungho/internal/infrastructure/metrics"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Repository implements ports.FamilyStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// An in-memory database exists per connection.
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	pragmas := []struct{ stmt, what string }{
		{"PRAGMA foreign_keys = ON", "enabling foreign keys"},
		{"PRAGMA journal_mode = WAL", "enabling WAL mode"},
		{"PRAGMA busy_timeout = 5000", "setting busy timeout"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		gender TEXT NOT NULL,
		birth_date TEXT,
		death_date TEXT,
		alive INTEGER NOT NULL DEFAULT 1,
		birth_order INTEGER,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_people_normalized ON people(normalized_name);

	-- For parent_child edges person_id is the parent.
	CREATE TABLE IF NOT EXISTS relationships (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		related_person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(kind, person_id, related_person_id)
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_person ON relationships(person_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_related ON relationships(related_person_id);

	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		person_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_person ON audit_log(person_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

const personColumns = `id, name, normalized_name, gender, birth_date, death_date, alive, birth_order, notes, created_at`

// SavePerson inserts or updates a person by ID.
func (r *Repository) SavePerson(ctx context.Context, p *entities.Person) (err error) {
	done := metrics.TimeStoreOp("save_person")
	defer func() { done(err == nil) }()

	query := `
		INSERT INTO people (` + personColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			normalized_name = excluded.normalized_name,
			gender = excluded.gender,
			birth_date = excluded.birth_date,
			death_date = excluded.death_date,
			alive = excluded.alive,
			birth_order = excluded.birth_order,
			notes = excluded.notes
	`
	var birthOrder sql.NullInt64
	if p.BirthOrder != nil {
		birthOrder = sql.NullInt64{Int64: int64(*p.BirthOrder), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		entities.NormalizeName(p.Name),
		string(p.Gender),
		formatDate(p.BirthDate),
		formatDate(p.DeathDate),
		p.Alive,
		birthOrder,
		p.Notes,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving person: %w", err)
	}
	return nil
}

// FindPersonByID finds a person by ID.
func (r *Repository) FindPersonByID(ctx context.Context, id string) (*entities.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	p, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindPeopleByName finds all people whose normalized name matches exactly.
func (r *Repository) FindPeopleByName(ctx context.Context, name string) ([]entities.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE normalized_name = ? ORDER BY rowid`
	return r.queryPeople(ctx, query, entities.NormalizeName(name))
}

// ListPeople lists people ordered by name with pagination.
func (r *Repository) ListPeople(ctx context.Context, limit, offset int) ([]entities.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people ORDER BY name ASC LIMIT ? OFFSET ?`
	return r.queryPeople(ctx, query, limit, offset)
}

// SearchPeople searches people by name pattern.
func (r *Repository) SearchPeople(ctx context.Context, query string, limit int) ([]entities.Person, error) {
	pattern := "%" + entities.NormalizeName(query) + "%"
	sqlQuery := `
		SELECT ` + personColumns + `
		FROM people
		WHERE normalized_name LIKE ?
		ORDER BY name ASC
		LIMIT ?
	`
	return r.queryPeople(ctx, sqlQuery, pattern, limit)
}

// AllPeople returns every person in insertion order.
func (r *Repository) AllPeople(ctx context.Context) (people []entities.Person, err error) {
	done := metrics.TimeStoreOp("all_people")
	defer func() { done(err == nil) }()

	query := `SELECT ` + personColumns + ` FROM people ORDER BY rowid`
	return r.queryPeople(ctx, query)
}

// DeletePerson deletes a person by ID. Edges go with it.
func (r *Repository) DeletePerson(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("person not found: %s", id)
	}
	return nil
}

// CountPeople returns the number of people in the tree.
func (r *Repository) CountPeople(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting people: %w", err)
	}
	return count, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*entities.Person, error) {
	var (
		p                   entities.Person
		gender              string
		birthDate, deathDay sql.NullString
		birthOrder          sql.NullInt64
		notes               sql.NullString
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.NormalizedName,
		&gender,
		&birthDate,
		&deathDay,
		&p.Alive,
		&birthOrder,
		&notes,
		&p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning person: %w", err)
	}

	p.Gender = entities.Gender(gender)
	p.Notes = notes.String
	if birthOrder.Valid {
		n := int(birthOrder.Int64)
		p.BirthOrder = &n
	}
	if p.BirthDate, err = entities.ParseDate(birthDate.String); err != nil {
		return nil, fmt.Errorf("person %s: %w", p.ID, err)
	}
	if p.DeathDate, err = entities.ParseDate(deathDay.String); err != nil {
		return nil, fmt.Errorf("person %s: %w", p.ID, err)
	}
	return &p, nil
}

// queryPeople is a helper to execute person queries.
func (r *Repository) queryPeople(ctx context.Context, query string, args ...any) ([]entities.Person, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	people := make([]entities.Person, 0, 16)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, *p)
	}
	return people, rows.Err()
}

func formatDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(entities.DateLayout), Valid: true}
}

const relationshipColumns = `id, person_id, related_person_id, kind, created_at`

// SaveRelationship inserts or updates an edge by ID.
func (r *Repository) SaveRelationship(ctx context.Context, rel *entities.Relationship) (err error) {
	done := metrics.TimeStoreOp("save_relationship")
	defer func() { done(err == nil) }()

	query := `
		INSERT INTO relationships (` + relationshipColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			person_id = excluded.person_id,
			related_person_id = excluded.related_person_id,
			kind = excluded.kind
	`
	_, err = r.db.ExecContext(ctx, query,
		rel.ID,
		rel.PersonID,
		rel.RelatedPersonID,
		string(rel.Kind),
		rel.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving relationship: %w", err)
	}
	return nil
}

// ListRelationships returns every edge in insertion order.
func (r *Repository) ListRelationships(ctx context.Context) (rels []entities.Relationship, err error) {
	done := metrics.TimeStoreOp("list_relationships")
	defer func() { done(err == nil) }()

	query := `SELECT ` + relationshipColumns + ` FROM relationships ORDER BY rowid`
	return r.queryRelationships(ctx, query)
}

// FindRelationshipsByPerson finds all edges touching a person.
func (r *Repository) FindRelationshipsByPerson(ctx context.Context, personID string) ([]entities.Relationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM relationships
		WHERE person_id = ? OR related_person_id = ?
		ORDER BY rowid
	`
	return r.queryRelationships(ctx, query, personID, personID)
}

// FindRelationshipBetween finds an edge of the given kind from personID to
// relatedPersonID. Spouse edges match in either direction.
// Returns nil if no edge exists.
func (r *Repository) FindRelationshipBetween(
	ctx context.Context,
	kind entities.EdgeKind,
	personID, relatedPersonID string,
) (*entities.Relationship, error) {
	query := `
		SELECT ` + relationshipColumns + `
		FROM relationships
		WHERE kind = ? AND (
			(person_id = ? AND related_person_id = ?)
			OR (kind = 'spouse' AND person_id = ? AND related_person_id = ?)
		)
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, string(kind), personID, relatedPersonID, relatedPersonID, personID)

	rel, err := scanRelationship(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rel, nil
}

// DeleteRelationship deletes an edge by ID.
func (r *Repository) DeleteRelationship(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("relationship not found: %s", id)
	}
	return nil
}

// DeleteRelationshipsByPerson deletes all edges touching a person.
func (r *Repository) DeleteRelationshipsByPerson(ctx context.Context, personID string) error {
	query := `DELETE FROM relationships WHERE person_id = ? OR related_person_id = ?`
	_, err := r.db.ExecContext(ctx, query, personID, personID)
	if err != nil {
		return fmt.Errorf("deleting relationships by person: %w", err)
	}
	return nil
}

// CountRelationships returns the number of edges in the tree.
func (r *Repository) CountRelationships(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM relationships`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting relationships: %w", err)
	}
	return count, nil
}

func scanRelationship(row rowScanner) (*entities.Relationship, error) {
	var rel entities.Relationship
	var kind string
	err := row.Scan(
		&rel.ID,
		&rel.PersonID,
		&rel.RelatedPersonID,
		&kind,
		&rel.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning relationship: %w", err)
	}
	rel.Kind = entities.EdgeKind(kind)
	return &rel, nil
}

// queryRelationships is a helper to execute relationship queries.
func (r *Repository) queryRelationships(ctx context.Context, query string, args ...any) ([]entities.Relationship, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying relationships: %w", err)
	}
	defer rows.Close()

	relationships := make([]entities.Relationship, 0, 16)
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		relationships = append(relationships, *rel)
	}
	return relationships, rows.Err()
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, personID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var person sql.NullString
	if personID != "" {
		person = sql.NullString{String: personID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, person_id, details) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, action, person, detailsJSON); err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a person, newest first.
func (r *Repository) FindAuditLog(ctx context.Context, personID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, person_id, details, created_at
		FROM audit_log
		WHERE person_id = ?
		ORDER BY id DESC
	`
	return r.queryAuditLog(ctx, query, personID)
}

// FindAuditLogByAction finds audit log entries by action type, newest first.
func (r *Repository) FindAuditLogByAction(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, person_id, details, created_at
		FROM audit_log
		WHERE action = ?
		ORDER BY id DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, action, limit)
}

// queryAuditLog is a helper to execute audit log queries.
func (r *Repository) queryAuditLog(ctx context.Context, query string, args ...any) ([]entities.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var personID, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&personID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.PersonID = personID.String
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
