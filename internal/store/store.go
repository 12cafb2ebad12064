// Package store persists canonical resume records in a single-file SQLite
// database, deduplicating on the (email, source) uniqueness key.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// BackupFunc archives one resume artifact before its record is saved.
// Failures are logged, never fatal.
type BackupFunc func(ctx context.Context, source, resumeFile string) (string, error)

// Store manages resume persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	backup BackupFunc
	log    *slog.Logger
}

// Open initializes or connects to the resume database, creating the file
// and schema on first use.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: path, log: slog.Default()}, nil
}

// SetBackup installs the artifact backup hook invoked from SaveResumes.
func (s *Store) SetBackup(fn BackupFunc) {
	s.backup = fn
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
