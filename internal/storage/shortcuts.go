package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/runger/dirjump/internal/model"
)

// ErrShortcutNotFound is returned when a shortcut lookup finds no row.
// Deletions of missing shortcuts are no-ops and do not return it.
var ErrShortcutNotFound = errors.New("shortcut not found")

// ShortcutQuery defines parameters for listing shortcuts.
type ShortcutQuery struct {
	Offset int
	Limit  int
	Filter string // matches name, path, or description (case-insensitive)
}

// AddShortcut binds name to path. Re-adding an existing name deletes the
// old binding first, so at most one shortcut exists per name. Description
// may be empty.
func (s *Store) AddShortcut(ctx context.Context, name, path, description string) (model.Shortcut, error) {
	var sc model.Shortcut
	if name == "" {
		return sc, fmt.Errorf("shortcut name is required")
	}
	if path == "" {
		return sc, fmt.Errorf("shortcut path is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return sc, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM shortcuts WHERE name = ?`, name); err != nil {
		return sc, fmt.Errorf("failed to replace shortcut: %w", err)
	}

	var desc any
	if description != "" {
		desc = description
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO shortcuts (name, path, description) VALUES (?, ?, ?)`,
		name, path, desc)
	if err != nil {
		return sc, fmt.Errorf("failed to insert shortcut: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return sc, fmt.Errorf("failed to commit shortcut: %w", err)
	}

	sc = model.Shortcut{Name: name, Path: path, Description: description}
	if id, err := res.LastInsertId(); err == nil {
		sc.ID = id
	}
	return sc, nil
}

// DeleteShortcut removes the shortcut with the given name. Missing names
// are a no-op.
func (s *Store) DeleteShortcut(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shortcuts WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete shortcut: %w", err)
	}
	return nil
}

// DeleteShortcutByID removes the shortcut with the given id. Missing ids
// are a no-op.
func (s *Store) DeleteShortcutByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM shortcuts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete shortcut: %w", err)
	}
	return nil
}

// GetShortcut looks up a shortcut by name.
func (s *Store) GetShortcut(ctx context.Context, name string) (model.Shortcut, error) {
	var sc model.Shortcut
	var desc sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, path, description FROM shortcuts WHERE name = ?`, name).
		Scan(&sc.ID, &sc.Name, &sc.Path, &desc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sc, ErrShortcutNotFound
		}
		return sc, fmt.Errorf("failed to get shortcut: %w", err)
	}
	sc.Description = desc.String
	return sc, nil
}

// ListShortcuts returns shortcuts ordered by name, optionally filtered.
func (s *Store) ListShortcuts(ctx context.Context, q ShortcutQuery) ([]model.Shortcut, error) {
	query := `SELECT id, name, path, description FROM shortcuts WHERE 1=1`
	args := make([]any, 0, 5)

	if q.Filter != "" {
		query += ` AND (instr(lower(name), lower(?)) > 0
			OR instr(lower(path), lower(?)) > 0
			OR instr(lower(COALESCE(description, '')), lower(?)) > 0)`
		args = append(args, q.Filter, q.Filter, q.Filter)
	}

	query += ` ORDER BY name ASC`

	limit := q.Limit
	if limit <= 0 {
		limit = 1000
	}
	query += ` LIMIT ? OFFSET ?`
	args = append(args, limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortcuts: %w", err)
	}
	defer rows.Close()

	var shortcuts []model.Shortcut
	for rows.Next() {
		var sc model.Shortcut
		var desc sql.NullString
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.Path, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan shortcut row: %w", err)
		}
		sc.Description = desc.String
		shortcuts = append(shortcuts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shortcuts: %w", err)
	}
	return shortcuts, nil
}

// AllShortcuts loads the full shortcut set for resolution and scoring.
func (s *Store) AllShortcuts(ctx context.Context) ([]model.Shortcut, error) {
	return s.ListShortcuts(ctx, ShortcutQuery{})
}
