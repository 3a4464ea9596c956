// Package sqlite keeps every slot as a row in a single SQLite table so that
// favorites and preferences survive restarts in one file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"recipefinder/storage"
)

type Store struct {
	db *sql.DB
}

func Open(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = "recipefinder.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close() // nolint: errcheck
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close() // nolint: errcheck
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);
	`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Slot returns the slot stored under key.
func (s *Store) Slot(key string) *Slot {
	return &Slot{db: s.db, key: key}
}

type Slot struct {
	db  *sql.DB
	key string
}

var _ storage.Slot = (*Slot)(nil)

func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", s.key, err)
	}
	return value, nil
}

func (s *Slot) Save(ctx context.Context, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.ExecContext(ctx, "INSERT OR REPLACE INTO slots (key, value) VALUES (?, ?)", s.key, data)
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", s.key, err)
	}
	return nil
}
