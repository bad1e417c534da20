// ABOUTME: SQLite-backed scroll position store for restart persistence
// ABOUTME: File-based positions so a reader resumes where they left off

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"docview-engine/core/domain"
	"docview-engine/core/errors"
)

// Store implements the ScrollPositionStore interface on SQLite.
type Store struct {
	db       *sql.DB
	filePath string
}

// NewStore opens (or creates) the positions database at filePath.
// An empty filePath defaults to "positions.db".
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = "positions.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	s := &Store{db: db, filePath: filePath}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// initSchema creates the positions table if it doesn't exist
func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS scroll_positions (
			document_key TEXT PRIMARY KEY,
			offset REAL NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`

	_, err := s.db.Exec(query)
	return err
}

// Save unconditionally overwrites the offset for a document.
func (s *Store) Save(ctx context.Context, key domain.DocumentKey, offset float64) error {
	if key == "" {
		return &errors.StoreError{Backend: "sqlite", Op: "save", Err: fmt.Errorf("empty document key")}
	}

	query := `
		INSERT OR REPLACE INTO scroll_positions (document_key, offset, updated_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, string(key), offset, time.Now().Unix())
	if err != nil {
		return &errors.StoreError{Backend: "sqlite", Op: "save", Err: err}
	}

	return nil
}

// Get returns the saved offset for a document.
func (s *Store) Get(ctx context.Context, key domain.DocumentKey) (float64, bool, error) {
	var offset float64

	query := "SELECT offset FROM scroll_positions WHERE document_key = ?"
	err := s.db.QueryRowContext(ctx, query, string(key)).Scan(&offset)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &errors.StoreError{Backend: "sqlite", Op: "get", Err: err}
	}

	return offset, true, nil
}

// Delete removes the entry for a document.
func (s *Store) Delete(ctx context.Context, key domain.DocumentKey) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM scroll_positions WHERE document_key = ?", string(key))
	if err != nil {
		return &errors.StoreError{Backend: "sqlite", Op: "delete", Err: err}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
