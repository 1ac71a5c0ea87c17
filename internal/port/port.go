// Package port implements bulk import and export of visits and shortcuts.
// Imports go through the same AddPath/AddShortcut operations as live
// navigation, so every store invariant holds for imported data too.
package port

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/runger/dirjump/internal/storage"
)

// VisitRecord is one exported directory visit. The timestamp is a string so
// hand-written files can be diagnosed precisely when malformed.
type VisitRecord struct {
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// ShortcutRecord is one exported shortcut.
type ShortcutRecord struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// Archive is the on-disk import/export format.
type Archive struct {
	ID         string           `json:"id"`
	ExportedAt string           `json:"exported_at,omitempty"`
	Visits     []VisitRecord    `json:"visits"`
	Shortcuts  []ShortcutRecord `json:"shortcuts"`
}

// Export dumps the full visit history (oldest first, so re-importing
// preserves sequence order) and all shortcuts.
func Export(ctx context.Context, store *storage.Store) (*Archive, error) {
	visits, err := store.VisitsAfter(ctx, 0)
	if err != nil {
		return nil, err
	}
	shortcuts, err := store.AllShortcuts(ctx)
	if err != nil {
		return nil, err
	}

	a := &Archive{
		ID:         uuid.NewString(),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, v := range visits {
		a.Visits = append(a.Visits, VisitRecord{
			Timestamp: strconv.FormatInt(v.Date, 10),
			Path:      v.Path,
		})
	}
	for _, sc := range shortcuts {
		a.Shortcuts = append(a.Shortcuts, ShortcutRecord{
			Name:        sc.Name,
			Path:        sc.Path,
			Description: sc.Description,
		})
	}
	return a, nil
}

// Import inserts the archive's records via AddPath/AddShortcut. Malformed
// rows (bad timestamp, empty path or name) are logged at warning level and
// skipped; the batch continues. Returns how many visits and shortcuts were
// imported.
func Import(ctx context.Context, store *storage.Store, a *Archive, logger *slog.Logger) (visits, shortcuts int, err error) {
	for _, r := range a.Visits {
		ts, perr := strconv.ParseInt(r.Timestamp, 10, 64)
		if perr != nil || r.Path == "" {
			logger.Warn("import row skipped",
				"path", r.Path, "timestamp", r.Timestamp, "error", perr)
			continue
		}
		if _, err := store.AddPath(ctx, r.Path, ts); err != nil {
			return visits, shortcuts, fmt.Errorf("failed to import visit %s: %w", r.Path, err)
		}
		visits++
	}
	for _, r := range a.Shortcuts {
		if r.Name == "" || r.Path == "" {
			logger.Warn("import shortcut skipped", "name", r.Name, "path", r.Path)
			continue
		}
		if _, err := store.AddShortcut(ctx, r.Name, r.Path, r.Description); err != nil {
			return visits, shortcuts, fmt.Errorf("failed to import shortcut %s: %w", r.Name, err)
		}
		shortcuts++
	}
	return visits, shortcuts, nil
}

// WriteFile writes the archive as indented JSON.
func WriteFile(path string, a *Archive) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	return nil
}

// ReadFile parses an archive file.
func ReadFile(path string) (*Archive, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse archive: %w", err)
	}
	return &a, nil
}
