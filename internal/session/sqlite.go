package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"evalclient/internal/logging"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the token slot in a local SQLite database.
// Every operation is a single statement, so reads never observe a partial write.
type SQLiteStore struct {
	db     *sql.DB
	key    string
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the database at path and binds
// the store to key.
func NewSQLiteStore(path, key string) (*SQLiteStore, error) {
	if key == "" {
		return nil, fmt.Errorf("session key required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection serializes writers.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, key: key, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.SessionDebug("session store opened: %s (key=%s)", path, key)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS local_storage (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Read(ctx context.Context) (string, bool, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM local_storage WHERE key = ?`, s.key).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session: %w", err)
	}
	return token, true, nil
}

func (s *SQLiteStore) Write(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.key, token)
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	logging.Session("session token persisted")
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	logging.Session("session token cleared")
	return nil
}

// Path returns the database file backing the store.
func (s *SQLiteStore) Path() string { return s.dbPath }

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
