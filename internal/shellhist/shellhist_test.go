package shellhist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTarget(t *testing.T) {
	const home = "/home/user"

	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"absolute cd", "cd /tmp/work", "/tmp/work"},
		{"pushd", "pushd /var/log", "/var/log"},
		{"quoted path", `cd "/tmp/with space"`, "/tmp/with space"},
		{"tilde", "cd ~", home},
		{"tilde slash", "cd ~/src/app", "/home/user/src/app"},
		{"trailing slash cleaned", "cd /tmp/work/", "/tmp/work"},
		{"relative skipped", "cd src", ""},
		{"dash skipped", "cd -", ""},
		{"flag skipped", "cd -P /tmp", ""},
		{"bare cd skipped", "cd", ""},
		{"not a navigation", "git status", ""},
		{"cd in pipeline not parsed", "ls | cd /tmp", ""},
		{"unbalanced quote", `cd "/tmp`, ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTarget(tt.command, home))
		})
	}
}

func writeHistory(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportBash_PlainAndTimestamped(t *testing.T) {
	path := writeHistory(t, ".bash_history", `ls -la
cd /tmp/plain
#1706000000
cd /tmp/stamped
#not-a-timestamp
cd /tmp/after-bad-stamp
`)

	visits, err := ImportBash(path, "/home/user")
	require.NoError(t, err)
	require.Len(t, visits, 3)

	assert.Equal(t, "/tmp/plain", visits[0].Path)
	assert.True(t, visits[0].Timestamp.IsZero())

	assert.Equal(t, "/tmp/stamped", visits[1].Path)
	assert.Equal(t, int64(1706000000), visits[1].Timestamp.Unix())

	assert.Equal(t, "/tmp/after-bad-stamp", visits[2].Path)
}

func TestImportZsh_ExtendedFormat(t *testing.T) {
	path := writeHistory(t, ".zsh_history", `: 1706000001:0;cd /tmp/one
: 1706000002:5;git status
cd /tmp/plain
: 1706000003:0;cd ~/src
`)

	visits, err := ImportZsh(path, "/home/user")
	require.NoError(t, err)
	require.Len(t, visits, 3)

	assert.Equal(t, "/tmp/one", visits[0].Path)
	assert.Equal(t, int64(1706000001), visits[0].Timestamp.Unix())

	assert.Equal(t, "/tmp/plain", visits[1].Path)
	assert.True(t, visits[1].Timestamp.IsZero())

	assert.Equal(t, "/home/user/src", visits[2].Path)
}

func TestImportFish(t *testing.T) {
	path := writeHistory(t, "fish_history", `- cmd: cd /tmp/one
  when: 1706000001
- cmd: ls -la
  when: 1706000002
- cmd: cd /tmp/two
`)

	visits, err := ImportFish(path, "/home/user")
	require.NoError(t, err)
	require.Len(t, visits, 2)

	assert.Equal(t, "/tmp/one", visits[0].Path)
	assert.Equal(t, int64(1706000001), visits[0].Timestamp.Unix())

	// Trailing entry without a "when:" line still flushes.
	assert.Equal(t, "/tmp/two", visits[1].Path)
	assert.True(t, visits[1].Timestamp.IsZero())
}

func TestImport_MissingFileIsNotAnError(t *testing.T) {
	visits, err := ImportBash(filepath.Join(t.TempDir(), "nope"), "/home/user")
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestTrimToLimit(t *testing.T) {
	visits := []Visit{{Path: "/a"}, {Path: "/b"}, {Path: "/c"}}

	trimmed := trimToLimit(visits, 2)
	require.Len(t, trimmed, 2)
	// The most recent entries survive.
	assert.Equal(t, "/b", trimmed[0].Path)
	assert.Equal(t, "/c", trimmed[1].Path)

	assert.Len(t, trimToLimit(visits, 5), 3)
}
