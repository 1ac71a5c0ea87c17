package suggest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/dirjump/internal/model"
	"github.com/runger/dirjump/internal/storage"
)

// fakeSource serves a scripted visit log, ids assigned by position.
type fakeSource struct {
	visits []storage.Visit
}

// newFakeSource builds the log from an ordered list of paths.
func newFakeSource(paths ...string) *fakeSource {
	f := &fakeSource{}
	for i, p := range paths {
		f.visits = append(f.visits, storage.Visit{
			ID:   int64(i + 1),
			Path: p,
			Date: int64(100 + i),
		})
	}
	return f
}

func (f *fakeSource) RecentVisits(_ context.Context, path string, limit int) ([]storage.Visit, error) {
	var out []storage.Visit
	for i := len(f.visits) - 1; i >= 0 && len(out) < limit; i-- {
		if f.visits[i].Path == path {
			out = append(out, f.visits[i])
		}
	}
	return out, nil
}

func (f *fakeSource) VisitsAfter(_ context.Context, afterID int64) ([]storage.Visit, error) {
	var out []storage.Visit
	for _, v := range f.visits {
		if v.ID > afterID {
			out = append(out, v)
		}
	}
	return out, nil
}

func TestSuggest_EmptyParameters(t *testing.T) {
	sg := New(newFakeSource(), "")
	ctx := context.Background()

	for _, tc := range []struct {
		name  string
		path  string
		depth int
		count int
	}{
		{"empty path", "", 5, 3},
		{"zero depth", "/a", 0, 3},
		{"zero count", "/a", 5, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := sg.Suggest(ctx, tc.path, tc.depth, tc.count, nil)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestSuggest_NoAnchors(t *testing.T) {
	sg := New(newFakeSource("/a", "/b"), "")
	entries, err := sg.Suggest(context.Background(), "/never-visited", 5, 3, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSuggest_ImmediateSuccessorWins(t *testing.T) {
	// After /work the user always went to /work/api, once to /tmp.
	src := newFakeSource(
		"/work", "/work/api", "/tmp",
		"/work", "/work/api",
	)
	sg := New(src, "")

	entries, err := sg.Suggest(context.Background(), "/work", 10, 4, nil)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "/work/api", entries[0].Path)
	assert.True(t, entries[0].IsPredicted)
}

func TestSuggest_StopsAtAnchorReappearance(t *testing.T) {
	// The forward scan from the older /work visit must stop when /work
	// reappears: /after belongs to the newer sequence and must not be
	// counted twice through the older anchor.
	src := newFakeSource(
		"/work", "/middle",
		"/work", "/after",
	)
	sg := New(src, "")

	entries, err := sg.Suggest(context.Background(), "/work", 10, 4, nil)
	require.NoError(t, err)

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	assert.ElementsMatch(t, []string{"/middle", "/after"}, paths)
}

func TestSuggest_SkipsHomeDirectory(t *testing.T) {
	src := newFakeSource("/work", "/home/user", "/work/api")
	sg := New(src, "/home/user")

	entries, err := sg.Suggest(context.Background(), "/work", 10, 4, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/work/api", entries[0].Path)
}

func TestSuggest_RecurringSuccessorOutranksOneOff(t *testing.T) {
	// /b follows /a twice at rank 1; /c follows once at rank 0. With
	// count=4 a single rank-0 hit weighs 32+tie, a rank-1 hit 16+tie, so
	// two rank-1 hits beat one rank-0 hit.
	src := newFakeSource(
		"/a", "/x", "/b",
		"/a", "/x", "/b",
		"/a", "/c",
	)
	sg := New(src, "")

	entries, err := sg.Suggest(context.Background(), "/a", 10, 4, nil)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	// /x also recurs at rank 0; it must lead, /b beats the one-off /c.
	assert.Equal(t, "/x", entries[0].Path)

	pos := map[string]int{}
	for i, e := range entries {
		pos[e.Path] = i
	}
	assert.Less(t, pos["/b"], pos["/c"])
}

func TestSuggest_DepthLimitsAnchors(t *testing.T) {
	// Two recorded sequences: start a b c, then start a b d.
	src := newFakeSource(
		"/start", "/a", "/b", "/c",
		"/start", "/a", "/b", "/d",
	)
	sg := New(src, "")
	ctx := context.Background()

	// depth=1 mines only the most recent sequence: /c is unreachable.
	entries, err := sg.Suggest(ctx, "/start", 1, 5, nil)
	require.NoError(t, err)
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	assert.ElementsMatch(t, []string{"/a", "/b", "/d"}, paths)

	// depth=2 sees both; /a and /b recur, so they outrank /c and /d.
	entries, err = sg.Suggest(ctx, "/start", 2, 5, nil)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.ElementsMatch(t, []string{"/a", "/b"},
		[]string{entries[0].Path, entries[1].Path})
}

func TestSuggest_CountCapsResults(t *testing.T) {
	src := newFakeSource("/a", "/p1", "/p2", "/p3", "/p4", "/p5")
	sg := New(src, "")

	entries, err := sg.Suggest(context.Background(), "/a", 10, 2, nil)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSuggest_DecoratesWithShortcuts(t *testing.T) {
	src := newFakeSource("/a", "/work/api")
	sg := New(src, "")
	shortcuts := []model.Shortcut{{ID: 1, Name: "work", Path: "/work"}}

	entries, err := sg.Suggest(context.Background(), "/a", 10, 4, shortcuts)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Shortcut)
	assert.Equal(t, "work", entries[0].Shortcut.Name)
}

func TestSuggest_DeterministicTieBreak(t *testing.T) {
	// /y and /z swap ranks across the two anchors, so their summed scores
	// come out close; repeated calls must still rank them identically.
	src := newFakeSource(
		"/a", "/z", "/y",
		"/a", "/y", "/z",
	)
	sg := New(src, "")

	first, err := sg.Suggest(context.Background(), "/a", 10, 4, nil)
	require.NoError(t, err)
	second, err := sg.Suggest(context.Background(), "/a", 10, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
