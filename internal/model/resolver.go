package model

import (
	"os"
	"strings"
)

// IsAncestor reports whether dir is a directory-ancestor of (or equal to)
// path. A bare string prefix is not enough: the character following the
// prefix must be the path separator, so /home/abc never matches /home/abcd.
func IsAncestor(dir, path string) bool {
	if dir == "" || !strings.HasPrefix(path, dir) {
		return false
	}
	return len(path) == len(dir) || path[len(dir)] == os.PathSeparator
}

// AssignShortcut decorates entry with the most specific matching shortcut:
// among all shortcuts whose path is a directory-ancestor of the entry's
// path, the one with the longest path wins. An already-assigned shortcut is
// only replaced by a strictly longer match, so equal-length candidates keep
// whichever was assigned first.
func AssignShortcut(entry *PathEntry, shortcuts []Shortcut) {
	for i := range shortcuts {
		sc := &shortcuts[i]
		if !IsAncestor(sc.Path, entry.Path) {
			continue
		}
		if entry.Shortcut != nil && len(sc.Path) <= len(entry.Shortcut.Path) {
			continue
		}
		entry.Shortcut = sc
	}
}

// AssignShortcuts resolves shortcuts for every entry in place.
func AssignShortcuts(entries []PathEntry, shortcuts []Shortcut) {
	for i := range entries {
		AssignShortcut(&entries[i], shortcuts)
	}
}
