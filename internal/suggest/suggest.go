// Package suggest implements the predictive "next directory" ranking: it
// mines the visit history for navigation sequences that previously followed
// the current directory and scores the directories that came next.
package suggest

import (
	"context"
	"sort"

	"github.com/runger/dirjump/internal/model"
	"github.com/runger/dirjump/internal/storage"
)

// HistorySource supplies the raw history rows the miner needs. *storage.Store
// satisfies it; tests may substitute a fake.
type HistorySource interface {
	// RecentVisits returns up to limit history rows for path, most recent first.
	RecentVisits(ctx context.Context, path string, limit int) ([]storage.Visit, error)
	// VisitsAfter returns all history rows after the given id, ascending.
	VisitsAfter(ctx context.Context, afterID int64) ([]storage.Visit, error)
}

var _ HistorySource = (*storage.Store)(nil)

// Suggester produces predicted PathEntry values from historical sequences.
type Suggester struct {
	src  HistorySource
	home string // the user's home directory is never suggested
}

// New creates a Suggester. home may be empty, in which case nothing is
// excluded from the forward scans.
func New(src HistorySource, home string) *Suggester {
	return &Suggester{src: src, home: home}
}

// candidate accumulates the summed weight for one predicted path.
type candidate struct {
	path  string
	score int64
	date  int64 // most recent occurrence seen, carried onto the entry
}

// Suggest predicts up to count directories likely to follow matchPath,
// based on the depth most recent visits to matchPath ("anchors").
//
// For each anchor i (0 = most recent), the history is scanned forward from
// that visit, skipping the home directory and stopping early when matchPath
// itself reappears (the sequence looped back). The first count distinct
// paths collected get a weight of
//
//	((1 << (count-1-rank)) << 2) + (depth - i - 1)
//
// where rank is the 0-based forward position. The exponential term makes
// "what came right after this directory last time" dominate; the additive
// term only breaks ties among equal proximity ranks, favoring more recent
// anchors. Weights for the same path sum across anchors, so a recurring
// successor outranks a one-off even at a worse proximity rank.
//
// Every returned entry is flagged IsPredicted and decorated with its
// resolved shortcut.
func (sg *Suggester) Suggest(ctx context.Context, matchPath string, depth, count int, shortcuts []model.Shortcut) ([]model.PathEntry, error) {
	if matchPath == "" || depth <= 0 || count <= 0 {
		return nil, nil
	}

	anchors, err := sg.src.RecentVisits(ctx, matchPath, depth)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*candidate)
	for i, anchor := range anchors {
		forward, err := sg.src.VisitsAfter(ctx, anchor.ID)
		if err != nil {
			return nil, err
		}

		seen := make(map[string]bool, count)
		rank := 0
		for _, v := range forward {
			if v.Path == matchPath {
				break // looped back; later visits belong to the next sequence
			}
			if v.Path == sg.home || seen[v.Path] {
				continue
			}
			if rank >= count {
				break
			}
			seen[v.Path] = true

			weight := (int64(1) << uint(count-1-rank) << 2) + int64(depth-i-1)
			c, ok := totals[v.Path]
			if !ok {
				c = &candidate{path: v.Path}
				totals[v.Path] = c
			}
			c.score += weight
			if v.Date > c.date {
				c.date = v.Date
			}
			rank++
		}
	}

	if len(totals) == 0 {
		return nil, nil
	}

	ranked := make([]*candidate, 0, len(totals))
	for _, c := range totals {
		ranked = append(ranked, c)
	}
	// Score descending; equal scores fall back to path order so output is
	// deterministic across runs.
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].path < ranked[b].path
	})
	if len(ranked) > count {
		ranked = ranked[:count]
	}

	entries := make([]model.PathEntry, 0, len(ranked))
	for _, c := range ranked {
		e := model.PathEntry{Path: c.path, Timestamp: c.date, IsPredicted: true}
		model.AssignShortcut(&e, shortcuts)
		entries = append(entries, e)
	}
	return entries, nil
}
