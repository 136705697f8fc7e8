package fragment

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements Store on top of a local SQLite database. It is
// the production store for ingested filing fragments; the shared *sql.DB
// handle is safe for concurrent readers.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the fragment database at dbPath and
// ensures the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}

	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating data directory: %w", ErrStoreUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", ErrStoreUnavailable, err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: initializing schema: %w", ErrStoreUnavailable, err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS fragments (
		id TEXT PRIMARY KEY,
		entity_id TEXT NOT NULL,
		text TEXT NOT NULL,
		redaction_markers TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_entity_id ON fragments(entity_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Lookup finds fragments for entityID whose text contains any term as a
// case-insensitive substring, in insertion order, capped at limit.
func (s *SQLiteStore) Lookup(ctx context.Context, entityID string, terms []string, limit int) ([]Fragment, error) {
	if entityID == "" {
		return nil, fmt.Errorf("entity ID cannot be empty")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	// An empty predicate matches nothing, never everything.
	if len(terms) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(terms))
	args := []any{entityID}
	for _, term := range terms {
		conditions = append(conditions, "instr(lower(text), ?) > 0")
		args = append(args, strings.ToLower(term))
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT id, entity_id, text, redaction_markers
		FROM fragments
		WHERE entity_id = ? AND (%s)
		ORDER BY rowid
		LIMIT ?
	`, strings.Join(conditions, " OR "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying fragments: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var fragments []Fragment
	for rows.Next() {
		frag, err := scanFragment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning row: %w", ErrStoreUnavailable, err)
		}
		fragments = append(fragments, frag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading rows: %w", ErrStoreUnavailable, err)
	}

	return fragments, nil
}

// Put inserts fragments, replacing any with the same ID.
func (s *SQLiteStore) Put(ctx context.Context, fragments []Fragment) error {
	if len(fragments) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %w", ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO fragments (id, entity_id, text, redaction_markers)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing statement: %w", ErrStoreUnavailable, err)
	}
	defer stmt.Close()

	for _, frag := range fragments {
		if frag.ID == "" || frag.EntityID == "" {
			return fmt.Errorf("fragment requires id and entity_id")
		}
		markers, err := json.Marshal(frag.RedactionMarkers)
		if err != nil {
			return fmt.Errorf("encoding redaction markers: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, frag.ID, frag.EntityID, frag.Text, markers); err != nil {
			return fmt.Errorf("%w: inserting fragment: %w", ErrStoreUnavailable, err)
		}
	}

	return tx.Commit()
}

// Stats returns fragment counts for entityID, or ErrNoSuchEntity when the
// entity has no fragments at all.
func (s *SQLiteStore) Stats(ctx context.Context, entityID string) (Stats, error) {
	if entityID == "" {
		return Stats{}, fmt.Errorf("entity ID cannot be empty")
	}

	var total, redacted int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(CASE WHEN redaction_markers != '[]' THEN 1 END)
		FROM fragments
		WHERE entity_id = ?
	`, entityID).Scan(&total, &redacted)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: counting fragments: %w", ErrStoreUnavailable, err)
	}

	if total == 0 {
		return Stats{}, fmt.Errorf("%w: %s", ErrNoSuchEntity, entityID)
	}

	return Stats{EntityID: entityID, Total: total, Redacted: redacted}, nil
}

// Entities lists the distinct entity IDs present in the store.
func (s *SQLiteStore) Entities(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT entity_id FROM fragments ORDER BY entity_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing entities: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var entities []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning entity: %w", ErrStoreUnavailable, err)
		}
		entities = append(entities, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading entities: %w", ErrStoreUnavailable, err)
	}

	return entities, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFragment(row rowScanner) (Fragment, error) {
	var frag Fragment
	var markers []byte
	if err := row.Scan(&frag.ID, &frag.EntityID, &frag.Text, &markers); err != nil {
		return Fragment{}, err
	}
	if err := json.Unmarshal(markers, &frag.RedactionMarkers); err != nil {
		// Tolerate legacy rows with malformed marker blobs.
		frag.RedactionMarkers = nil
	}
	return frag, nil
}
