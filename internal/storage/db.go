// Package storage provides the SQLite-backed persistence layer for dirjump:
// the deduplicated current-path set, the append-only visit history, and the
// shortcut table, together with schema migrations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// schemaVersion is the schema level this build expects. A fresh database is
// bootstrapped directly at this version; an older database is upgraded one
// script at a time.
const schemaVersion = 3

// Store owns the embedded database handle. It is not safe for concurrent
// use; a multi-threaded consumer must serialize access itself.
type Store struct {
	db        *sql.DB
	path      string
	closeOnce sync.Once
	closeErr  error
}

// DefaultDBPath returns the default database location (~/.dirjump/state.db).
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".dirjump", "state.db"), nil
}

// Open opens (or creates) the database at dbPath and brings the schema up
// to the current version. A migration failure is fatal: the returned error
// must abort the process, since a partially migrated schema is unsafe to
// continue from. An empty dbPath selects the default location.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		var err error
		dbPath, err = DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// A missing file means a fresh database: the bootstrap script runs
	// instead of the upgrade chain. Checked before sql.Open, which creates
	// the file as a side effect of the first connection.
	_, statErr := os.Stat(dbPath)
	fresh := os.IsNotExist(statErr)

	// modernc.org/sqlite uses _pragma=name(value) DSN syntax.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection: the engine assumes one local writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(context.Background(), fresh); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}
	return s, nil
}

// Close closes the database connection. Safe to call multiple times.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		if s.db != nil {
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			s.closeErr = s.db.Close()
		}
	})
	return s.closeErr
}

// DB exposes the underlying connection for advanced queries and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the on-disk location of the database file.
func (s *Store) Path() string {
	return s.path
}

// migrate brings the schema to schemaVersion. Fresh databases run the
// bootstrap script and are stamped directly at the current version.
// Existing databases run every upgrade script for versions strictly below
// current, in increasing order. A missing or unreadable version row is
// treated as version 0 so the full upgrade chain runs rather than failing
// silently.
func (s *Store) migrate(ctx context.Context, fresh bool) error {
	if fresh {
		if _, err := s.db.ExecContext(ctx, bootstrapSQL); err != nil {
			return fmt.Errorf("bootstrap script: %w", err)
		}
		return s.stampVersion(ctx, schemaVersion)
	}

	current, err := s.readVersion(ctx)
	if err != nil {
		return err
	}
	for v := current; v < schemaVersion; v++ {
		if _, err := s.db.ExecContext(ctx, upgradeScripts[v]); err != nil {
			return fmt.Errorf("upgrade script v%d -> v%d: %w", v, v+1, err)
		}
	}
	return s.stampVersion(ctx, schemaVersion)
}

// readVersion returns the stored schema version, or 0 when the version
// table or row does not exist yet.
func (s *Store) readVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM version LIMIT 1`).Scan(&v)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, sql.ErrNoRows), isMissingTableError(err):
		return 0, nil
	default:
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
}

// stampVersion replaces the single version row with v.
func (s *Store) stampVersion(ctx context.Context, v int) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM version`); err != nil {
		return fmt.Errorf("failed to clear version row: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO version (version) VALUES (?)`, v); err != nil {
		return fmt.Errorf("failed to stamp schema version: %w", err)
	}
	return nil
}

// isMissingTableError checks if the error indicates a missing table.
func isMissingTableError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

// bootstrapSQL creates a fresh schema already at the current version. The
// version row itself is stamped by the caller.
const bootstrapSQL = `
CREATE TABLE IF NOT EXISTS version (
  version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS paths (
  id INTEGER PRIMARY KEY,
  path TEXT NOT NULL,
  date INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_paths_date ON paths(date DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_paths_path ON paths(path);

CREATE TABLE IF NOT EXISTS paths_history (
  id INTEGER PRIMARY KEY,
  path TEXT NOT NULL,
  date INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_paths_history_path ON paths_history(path, id DESC);

CREATE TABLE IF NOT EXISTS shortcuts (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  path TEXT NOT NULL,
  description TEXT
);

CREATE INDEX IF NOT EXISTS idx_shortcuts_name ON shortcuts(name);
`

// upgradeScripts[v] takes the schema from version v to v+1. The chain
// mirrors how the schema actually evolved: the current-path set first, the
// append-only history next, shortcuts last.
var upgradeScripts = [schemaVersion]string{
	// v0 -> v1: version tracking and the current-path set.
	`
CREATE TABLE IF NOT EXISTS version (
  version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS paths (
  id INTEGER PRIMARY KEY,
  path TEXT NOT NULL,
  date INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_paths_date ON paths(date DESC, id DESC);
CREATE INDEX IF NOT EXISTS idx_paths_path ON paths(path);
`,
	// v1 -> v2: append-only visit history.
	`
CREATE TABLE IF NOT EXISTS paths_history (
  id INTEGER PRIMARY KEY,
  path TEXT NOT NULL,
  date INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_paths_history_path ON paths_history(path, id DESC);
`,
	// v2 -> v3: named shortcuts with optional descriptions.
	`
CREATE TABLE IF NOT EXISTS shortcuts (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  path TEXT NOT NULL,
  description TEXT
);

CREATE INDEX IF NOT EXISTS idx_shortcuts_name ON shortcuts(name);
`,
}
