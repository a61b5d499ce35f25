// Package store is a SQLite-backed cache of fetched question documents, so
// repeated widget loads do not refetch unchanged sources.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// New opens (or creates) the cache database. Use ":memory:" in tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS document_cache (
		location TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		fetched_at DATETIME NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the cached body and fetch time for a location. The boolean is
// false when the location has never been cached.
func (s *Store) Get(location string) (string, time.Time, bool, error) {
	var body string
	var fetchedAt time.Time
	err := s.db.QueryRow(
		`SELECT body, fetched_at FROM document_cache WHERE location = ?`, location,
	).Scan(&body, &fetchedAt)
	if err == sql.ErrNoRows {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, err
	}
	return body, fetchedAt, true, nil
}

// Put upserts a document body for a location, stamping the current time.
func (s *Store) Put(location, body string) error {
	_, err := s.db.Exec(
		`INSERT INTO document_cache (location, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(location) DO UPDATE SET body = ?, fetched_at = ?`,
		location, body, time.Now(), body, time.Now(),
	)
	return err
}

// Purge deletes entries older than the given age and reports how many were
// removed.
func (s *Store) Purge(olderThan time.Duration) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM document_cache WHERE fetched_at < ?`, time.Now().Add(-olderThan),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
