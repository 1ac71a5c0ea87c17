package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/runger/dirjump/internal/model"
)

// PathQuery defines parameters for exact listings over the current-path set
// or the visit history.
type PathQuery struct {
	Offset int
	Limit  int
	Filter string // substring filter; empty matches everything

	// ShortcutAware extends a non-empty filter to also match entries that
	// live under a shortcut whose name or description contains the filter.
	ShortcutAware bool
}

// Visit is one raw history row, used by the sequence miner.
type Visit struct {
	ID   int64
	Path string
	Date int64
}

// AddPath records a visit to path at the given unix timestamp. The
// current-set row for the same path text is replaced (latest timestamp
// wins) and a history row is appended. Both writes run in one transaction
// so a crash cannot leave the history ahead of the current set.
func (s *Store) AddPath(ctx context.Context, path string, timestamp int64) (model.PathEntry, error) {
	var entry model.PathEntry
	if path == "" {
		return entry, fmt.Errorf("path is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return entry, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM paths WHERE path = ?`, path); err != nil {
		return entry, fmt.Errorf("failed to replace current-set row: %w", err)
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO paths (path, date) VALUES (?, ?)`, path, timestamp)
	if err != nil {
		return entry, fmt.Errorf("failed to insert current-set row: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO paths_history (path, date) VALUES (?, ?)`, path, timestamp); err != nil {
		return entry, fmt.Errorf("failed to append history row: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return entry, fmt.Errorf("failed to commit visit: %w", err)
	}

	entry = model.PathEntry{Path: path, Timestamp: timestamp}
	if id, err := res.LastInsertId(); err == nil {
		entry.ID = id
	}
	return entry, nil
}

// DeletePath removes a row from the current-path set only; the history log
// is untouched. A missing id is a no-op, not an error.
func (s *Store) DeletePath(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM paths WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete path: %w", err)
	}
	return nil
}

// QueryPaths returns current-set entries ordered by visit time descending,
// ties broken by id descending.
func (s *Store) QueryPaths(ctx context.Context, q PathQuery) ([]model.PathEntry, error) {
	return s.queryTable(ctx, "paths", q)
}

// QueryHistory returns visit-history entries in the same order and with the
// same filter semantics as QueryPaths.
func (s *Store) QueryHistory(ctx context.Context, q PathQuery) ([]model.PathEntry, error) {
	return s.queryTable(ctx, "paths_history", q)
}

// queryTable builds and runs the exact listing over the named table.
func (s *Store) queryTable(ctx context.Context, table string, q PathQuery) ([]model.PathEntry, error) {
	query := `SELECT id, path, date FROM ` + table + ` WHERE 1=1`
	args := make([]any, 0, 6)

	if q.Filter != "" {
		if q.ShortcutAware {
			// Either the path text contains the filter, or the entry lives
			// under a shortcut whose name or description contains it.
			query += ` AND (instr(lower(path), lower(?)) > 0 OR EXISTS (
				SELECT 1 FROM shortcuts s
				WHERE (instr(lower(s.name), lower(?)) > 0
				    OR instr(lower(COALESCE(s.description, '')), lower(?)) > 0)
				  AND (` + table + `.path = s.path
				    OR substr(` + table + `.path, 1, length(s.path) + 1) = s.path || '/')
			))`
			args = append(args, q.Filter, q.Filter, q.Filter)
		} else {
			query += ` AND instr(lower(path), lower(?)) > 0`
			args = append(args, q.Filter)
		}
	}

	query += ` ORDER BY date DESC, id DESC`

	limit := q.Limit
	if limit <= 0 {
		// Default bound; dataset sizes are one user's shell history.
		limit = 1000
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var entries []model.PathEntry
	for rows.Next() {
		var e model.PathEntry
		if err := rows.Scan(&e.ID, &e.Path, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}
	return entries, nil
}

// AllPaths loads the entire current-path set, most recent first. The fuzzy
// matcher scores every entry, so pagination happens after scoring.
func (s *Store) AllPaths(ctx context.Context) ([]model.PathEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, path, date FROM paths ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to load current paths: %w", err)
	}
	defer rows.Close()

	var entries []model.PathEntry
	for rows.Next() {
		var e model.PathEntry
		if err := rows.Scan(&e.ID, &e.Path, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan path row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating paths: %w", err)
	}
	return entries, nil
}

// RecentVisits returns up to limit history rows whose path equals path,
// most recent first. These are the anchor occurrences for sequence mining.
func (s *Store) RecentVisits(ctx context.Context, path string, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, date FROM paths_history
		WHERE path = ?
		ORDER BY id DESC
		LIMIT ?
	`, path, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query anchor visits: %w", err)
	}
	defer rows.Close()
	return scanVisits(rows)
}

// VisitsAfter returns every history row with id strictly greater than
// afterID, in ascending id order: the forward navigation sequence that
// followed that visit.
func (s *Store) VisitsAfter(ctx context.Context, afterID int64) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, date FROM paths_history
		WHERE id > ?
		ORDER BY id ASC
	`, afterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query forward visits: %w", err)
	}
	defer rows.Close()
	return scanVisits(rows)
}

func scanVisits(rows *sql.Rows) ([]Visit, error) {
	var visits []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.Path, &v.Date); err != nil {
			return nil, fmt.Errorf("failed to scan visit row: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating visits: %w", err)
	}
	return visits, nil
}
