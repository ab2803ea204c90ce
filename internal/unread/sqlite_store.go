package unread

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const unreadDBFileName = "unread.db"

const unreadSchema = `
CREATE TABLE IF NOT EXISTS unread_ids (
	id TEXT PRIMARY KEY
);
`

// SQLiteStore persists the unread-id set in a SQLite database. SQLite's
// own locking handles concurrently running instances, so no extra lock
// is needed around writes.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed store at the provided path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite store: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite store: create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open db: %w", err)
	}
	if _, err := db.Exec(unreadSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite store: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads the persisted id set. Query failures degrade to empty.
func (s *SQLiteStore) Load() ([]string, error) {
	rows, err := s.db.Query("SELECT id FROM unread_ids")
	if err != nil {
		return []string{}, nil
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return []string{}, nil
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return []string{}, nil
	}
	return ids, nil
}

// Save replaces the persisted set in a single transaction.
func (s *SQLiteStore) Save(ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM unread_ids"); err != nil {
		return fmt.Errorf("sqlite store: clear ids: %w", err)
	}
	stmt, err := tx.Prepare("INSERT OR IGNORE INTO unread_ids (id) VALUES (?)")
	if err != nil {
		return fmt.Errorf("sqlite store: prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, id := range ids {
		if _, err := stmt.Exec(id); err != nil {
			return fmt.Errorf("sqlite store: insert id %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite store: commit: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
