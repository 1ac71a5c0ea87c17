// Package index composes the storage layer, the shortcut resolver, the
// fuzzy matcher, and the smart suggester into the ranked, paginated,
// filterable listings consumers query.
package index

import (
	"context"

	"github.com/sahilm/fuzzy"

	"github.com/runger/dirjump/internal/model"
	"github.com/runger/dirjump/internal/storage"
	"github.com/runger/dirjump/internal/suggest"
)

// Options are the query-time settings. They are produced fresh for every
// call, so a consumer may change them between calls without invalidating
// anything; a single call always sees one consistent snapshot.
type Options struct {
	// ShortcutAware extends exact filters and fuzzy scoring to shortcut
	// names and descriptions.
	ShortcutAware bool
	// SmartSuggest prepends predicted entries to unfiltered listings.
	SmartSuggest bool
	SuggestDepth int
	SuggestCount int
}

// Index answers "which directory did I mean?" queries over the store.
type Index struct {
	store     *storage.Store
	suggester *suggest.Suggester
	opts      func() Options
	cwd       string // anchor for predictive suggestions; may be empty
}

// New creates an Index. opts is called once per listing to snapshot the
// current settings. cwd is the directory predictions are anchored at.
func New(store *storage.Store, suggester *suggest.Suggester, opts func() Options, cwd string) *Index {
	return &Index{store: store, suggester: suggester, opts: opts, cwd: cwd}
}

// ListPaths lists current-set entries. A non-empty filter with fuzzy set
// dispatches to subsequence scoring; otherwise the exact listing runs,
// prepending predicted entries when the filter is empty and smart
// suggestions are enabled. Every returned entry carries its resolved
// shortcut.
func (x *Index) ListPaths(ctx context.Context, offset, limit int, filter string, fz bool) ([]model.PathEntry, error) {
	opts := x.opts()
	shortcuts, err := x.store.AllShortcuts(ctx)
	if err != nil {
		return nil, err
	}

	// Fuzzy scoring needs a pattern; an empty filter falls back to the
	// exact listing so the unfiltered view still shows everything.
	if fz && filter != "" {
		return x.listFuzzy(ctx, offset, limit, filter, opts, shortcuts)
	}
	return x.listExact(ctx, offset, limit, filter, opts, shortcuts)
}

// ListHistory lists the append-only visit log with the exact-listing filter
// semantics. Predictions never appear here.
func (x *Index) ListHistory(ctx context.Context, offset, limit int, filter string) ([]model.PathEntry, error) {
	opts := x.opts()
	shortcuts, err := x.store.AllShortcuts(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := x.store.QueryHistory(ctx, storage.PathQuery{
		Offset:        offset,
		Limit:         limit,
		Filter:        filter,
		ShortcutAware: opts.ShortcutAware,
	})
	if err != nil {
		return nil, err
	}
	model.AssignShortcuts(entries, shortcuts)
	return entries, nil
}

// listExact runs the timestamp-ordered listing, prepending reversed
// predictions on the unfiltered view.
func (x *Index) listExact(ctx context.Context, offset, limit int, filter string, opts Options, shortcuts []model.Shortcut) ([]model.PathEntry, error) {
	var preds []model.PathEntry
	if filter == "" && opts.SmartSuggest && x.cwd != "" && x.suggester != nil {
		var err error
		preds, err = x.suggester.Suggest(ctx, x.cwd, opts.SuggestDepth, opts.SuggestCount, shortcuts)
		if err != nil {
			return nil, err
		}
		// Reverse so the best guess sits immediately above the most recent
		// real entry.
		for i, j := 0, len(preds)-1; i < j; i, j = i+1, j-1 {
			preds[i], preds[j] = preds[j], preds[i]
		}
	}

	out := make([]model.PathEntry, 0, limit)
	realOffset := offset

	// Consume predicted rows first, adjusting the window for however many
	// of them earlier pages already used.
	if offset < len(preds) {
		take := preds[offset:]
		if len(take) > limit {
			take = take[:limit]
		}
		out = append(out, take...)
		realOffset = 0
	} else {
		realOffset = offset - len(preds)
	}
	if len(out) == limit {
		return out, nil
	}

	entries, err := x.store.QueryPaths(ctx, storage.PathQuery{
		Offset:        realOffset,
		Limit:         limit - len(out),
		Filter:        filter,
		ShortcutAware: opts.ShortcutAware,
	})
	if err != nil {
		return nil, err
	}
	model.AssignShortcuts(entries, shortcuts)
	return append(out, entries...), nil
}

// scoredEntry pairs an entry with its best fuzzy score.
type scoredEntry struct {
	entry model.PathEntry
	score int
}

// listFuzzy loads the whole current set and scores each entry. An entry's
// score is the maximum of the path's own score and, when shortcut-aware
// scoring is on, the score of "{path} {name} {description}" for every
// ancestor shortcut. Entries the pattern does not match at all are
// excluded.
func (x *Index) listFuzzy(ctx context.Context, offset, limit int, filter string, opts Options, shortcuts []model.Shortcut) ([]model.PathEntry, error) {
	entries, err := x.store.AllPaths(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]scoredEntry, 0, len(entries))
	for _, e := range entries {
		candidates := []string{e.Path}
		if opts.ShortcutAware {
			for _, sc := range shortcuts {
				if !model.IsAncestor(sc.Path, e.Path) {
					continue
				}
				c := e.Path + " " + sc.Name
				if sc.Description != "" {
					c += " " + sc.Description
				}
				candidates = append(candidates, c)
			}
		}
		matches := fuzzy.Find(filter, candidates)
		if len(matches) == 0 {
			continue
		}
		// Find returns matches ordered best-first.
		scored = append(scored, scoredEntry{entry: e, score: matches[0].Score})
	}

	// Stable sort keeps the recency order among equal scores.
	sortByScoreDesc(scored)

	if offset >= len(scored) {
		return nil, nil
	}
	end := offset + limit
	if end > len(scored) {
		end = len(scored)
	}

	out := make([]model.PathEntry, 0, end-offset)
	for _, se := range scored[offset:end] {
		e := se.entry
		model.AssignShortcut(&e, shortcuts)
		out = append(out, e)
	}
	return out, nil
}
