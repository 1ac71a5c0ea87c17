package index

import (
	"context"
	"sort"

	"github.com/runger/dirjump/internal/model"
	"github.com/runger/dirjump/internal/storage"
)

// sortByScoreDesc orders scored entries best-first, preserving the input
// order among equal scores.
func sortByScoreDesc(scored []scoredEntry) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
}

// PathLister adapts the current-set listing to the Lister contract handed
// to interactive consumers.
type PathLister struct {
	Index *Index
}

var _ model.Lister[model.PathEntry] = PathLister{}

// List implements model.Lister.
func (l PathLister) List(offset, limit int, filter string, fz bool) ([]model.PathEntry, error) {
	return l.Index.ListPaths(context.Background(), offset, limit, filter, fz)
}

// HistoryLister adapts the visit-history listing. The fuzzy flag is
// accepted for contract compatibility but history is always listed exactly.
type HistoryLister struct {
	Index *Index
}

var _ model.Lister[model.PathEntry] = HistoryLister{}

// List implements model.Lister.
func (l HistoryLister) List(offset, limit int, filter string, _ bool) ([]model.PathEntry, error) {
	return l.Index.ListHistory(context.Background(), offset, limit, filter)
}

// ShortcutLister adapts the shortcut listing.
type ShortcutLister struct {
	Store *storage.Store
}

var _ model.Lister[model.Shortcut] = ShortcutLister{}

// List implements model.Lister.
func (l ShortcutLister) List(offset, limit int, filter string, _ bool) ([]model.Shortcut, error) {
	return l.Store.ListShortcuts(context.Background(), storage.ShortcutQuery{
		Offset: offset,
		Limit:  limit,
		Filter: filter,
	})
}
