package picker

import (
	"github.com/mattn/go-runewidth"
)

// MiddleTruncate truncates a string in the middle with an ellipsis if its
// display width exceeds maxWidth. Directory paths carry their most useful
// information at both ends (root prefix and leaf name), so the middle is
// the right place to cut. Display-width-aware: CJK characters and emoji
// count as two columns.
func MiddleTruncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "…"
	const ellipsisWidth = 1

	// Not enough room for head + ellipsis + tail: hard-truncate.
	if maxWidth < 3 {
		return truncateLeft(s, maxWidth)
	}

	remaining := maxWidth - ellipsisWidth
	headWidth := (remaining + 1) / 2
	tailWidth := remaining / 2

	return truncateLeft(s, headWidth) + ellipsis + truncateRight(s, tailWidth)
}

// truncateLeft returns the longest prefix of s whose display width does not
// exceed maxWidth.
func truncateLeft(s string, maxWidth int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth {
			return s[:i]
		}
		w += rw
	}
	return s
}

// truncateRight returns the longest suffix of s whose display width does
// not exceed maxWidth.
func truncateRight(s string, maxWidth int) string {
	runes := []rune(s)
	w := 0
	start := len(runes)
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > maxWidth {
			break
		}
		w += rw
		start = i
	}
	return string(runes[start:])
}
