package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPath_ReplacesCurrentSetRow(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.AddPath(ctx, "/tmp/a", 100)
	require.NoError(t, err)
	_, err = store.AddPath(ctx, "/tmp/a", 200)
	require.NoError(t, err)

	// The current set holds the path once, at the latest timestamp.
	entries, err := store.QueryPaths(ctx, PathQuery{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/tmp/a", entries[0].Path)
	assert.Equal(t, int64(200), entries[0].Timestamp)

	// The history keeps both visits.
	hist, err := store.QueryHistory(ctx, PathQuery{})
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}

func TestAddPath_EmptyPath(t *testing.T) {
	store := openTestStore(t)
	_, err := store.AddPath(context.Background(), "", 100)
	assert.Error(t, err)
}

func TestDeletePath_LeavesHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	entry, err := store.AddPath(ctx, "/tmp/a", 100)
	require.NoError(t, err)
	require.NoError(t, store.DeletePath(ctx, entry.ID))

	entries, err := store.QueryPaths(ctx, PathQuery{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	hist, err := store.QueryHistory(ctx, PathQuery{})
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestDeletePath_MissingIDIsNoop(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.DeletePath(context.Background(), 9999))
}

func TestQueryPaths_Ordering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.AddPath(ctx, "/tmp/old", 100)
	require.NoError(t, err)
	_, err = store.AddPath(ctx, "/tmp/new", 300)
	require.NoError(t, err)
	_, err = store.AddPath(ctx, "/tmp/mid", 200)
	require.NoError(t, err)
	// Same timestamp as /tmp/new: higher id wins the tie.
	_, err = store.AddPath(ctx, "/tmp/tie", 300)
	require.NoError(t, err)

	entries, err := store.QueryPaths(ctx, PathQuery{})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "/tmp/tie", entries[0].Path)
	assert.Equal(t, "/tmp/new", entries[1].Path)
	assert.Equal(t, "/tmp/mid", entries[2].Path)
	assert.Equal(t, "/tmp/old", entries[3].Path)
}

func TestQueryPaths_PaginationIsComplete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	const total = 7
	for i := 0; i < total; i++ {
		_, err := store.AddPath(ctx, fmt.Sprintf("/tmp/dir%d", i), int64(100+i))
		require.NoError(t, err)
	}

	// Walking the listing page by page yields every entry exactly once.
	seen := make(map[string]bool)
	for offset := 0; ; offset += 3 {
		page, err := store.QueryPaths(ctx, PathQuery{Offset: offset, Limit: 3})
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		for _, e := range page {
			assert.False(t, seen[e.Path], "duplicate %s", e.Path)
			seen[e.Path] = true
		}
	}
	assert.Len(t, seen, total)
}

func TestQueryPaths_FilterIsCaseInsensitive(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.AddPath(ctx, "/home/user/Projects/app", 100)
	require.NoError(t, err)
	_, err = store.AddPath(ctx, "/var/log", 200)
	require.NoError(t, err)

	entries, err := store.QueryPaths(ctx, PathQuery{Filter: "projects"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/home/user/Projects/app", entries[0].Path)
}

func TestQueryPaths_ShortcutAwareFilter(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.AddShortcut(ctx, "work", "/home/user/projects", "client stuff")
	require.NoError(t, err)
	_, err = store.AddPath(ctx, "/home/user/projects/app", 100)
	require.NoError(t, err)
	_, err = store.AddPath(ctx, "/home/user/projects", 150)
	require.NoError(t, err)
	// Shares the shortcut path as a string prefix but is not under it.
	_, err = store.AddPath(ctx, "/home/user/projectsarchive", 200)
	require.NoError(t, err)
	_, err = store.AddPath(ctx, "/var/log", 300)
	require.NoError(t, err)

	// "work" appears in no path text; only shortcut-aware search finds the
	// entries under the shortcut, including the shortcut path itself.
	entries, err := store.QueryPaths(ctx, PathQuery{Filter: "work", ShortcutAware: true})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "/home/user/projects", entries[0].Path)
	assert.Equal(t, "/home/user/projects/app", entries[1].Path)

	// The description matches too.
	entries, err = store.QueryPaths(ctx, PathQuery{Filter: "client", ShortcutAware: true})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// Without shortcut awareness the same filter finds nothing.
	entries, err = store.QueryPaths(ctx, PathQuery{Filter: "work", ShortcutAware: false})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecentVisits_And_VisitsAfter(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, p := range []string{"/a", "/b", "/a", "/c", "/d"} {
		_, err := store.AddPath(ctx, p, int64(100+i))
		require.NoError(t, err)
	}

	anchors, err := store.RecentVisits(ctx, "/a", 10)
	require.NoError(t, err)
	require.Len(t, anchors, 2)
	// Most recent first.
	assert.Greater(t, anchors[0].ID, anchors[1].ID)

	forward, err := store.VisitsAfter(ctx, anchors[0].ID)
	require.NoError(t, err)
	require.Len(t, forward, 2)
	assert.Equal(t, "/c", forward[0].Path)
	assert.Equal(t, "/d", forward[1].Path)
}
