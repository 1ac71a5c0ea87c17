// Package shellhist extracts directory visits from existing shell history
// files so a fresh dirjump database can be seeded with the directories the
// user already navigates to.
package shellhist

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
)

// MaxImportEntries bounds how many visits one history file contributes.
const MaxImportEntries = 25000

// Visit is one directory navigation recovered from shell history.
type Visit struct {
	Timestamp time.Time // zero when the history file carries no timestamps
	Path      string    // absolute directory path
}

// ExtractTarget returns the directory a shell command navigates to, or ""
// when the command is not a navigation or its target cannot be resolved to
// an absolute path. home is used to expand a leading ~; relative targets
// are skipped because the working directory at the time is unknown.
func ExtractTarget(command, home string) string {
	tokens, err := shlex.Split(command)
	if err != nil || len(tokens) == 0 {
		return ""
	}
	switch tokens[0] {
	case "cd", "pushd":
	default:
		return ""
	}
	if len(tokens) < 2 {
		return "" // bare cd goes home; not useful as a suggestion
	}

	target := tokens[1]
	switch {
	case target == "-" || strings.HasPrefix(target, "-"):
		return "" // cd - and flag forms carry no usable path
	case target == "~":
		target = home
	case strings.HasPrefix(target, "~/"):
		target = filepath.Join(home, target[2:])
	}
	if !filepath.IsAbs(target) {
		return ""
	}
	return filepath.Clean(target)
}

// ImportBash parses a bash history file (one command per line; with
// HISTTIMEFORMAT, timestamp lines start with #<unix_ts>) and returns the
// directory visits found in it.
func ImportBash(path, home string) ([]Visit, error) {
	if path == "" {
		path = bashHistoryPath()
	}
	return parseFile(path, func(sc *bufio.Scanner) []Visit {
		var visits []Visit
		var pending time.Time
		for sc.Scan() {
			line := sc.Text()
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "#") && len(line) > 1 {
				if ts, err := strconv.ParseInt(line[1:], 10, 64); err == nil {
					pending = time.Unix(ts, 0)
					continue
				}
			}
			if dir := ExtractTarget(line, home); dir != "" {
				visits = append(visits, Visit{Path: dir, Timestamp: pending})
			}
			pending = time.Time{}
		}
		return visits
	})
}

// ImportZsh parses a zsh history file. Extended history lines look like
// `: <timestamp>:<duration>;<command>`; plain lines are bare commands.
// Multiline commands are ignored: a navigation target fits on one line.
func ImportZsh(path, home string) ([]Visit, error) {
	if path == "" {
		path = zshHistoryPath()
	}
	return parseFile(path, func(sc *bufio.Scanner) []Visit {
		var visits []Visit
		for sc.Scan() {
			line := sc.Text()
			var ts time.Time
			cmd := line
			if strings.HasPrefix(line, ": ") {
				idx := strings.Index(line, ";")
				if idx == -1 {
					continue
				}
				meta := line[2:idx]
				if colon := strings.Index(meta, ":"); colon != -1 {
					if sec, err := strconv.ParseInt(meta[:colon], 10, 64); err == nil {
						ts = time.Unix(sec, 0)
					}
				}
				cmd = line[idx+1:]
			}
			if dir := ExtractTarget(cmd, home); dir != "" {
				visits = append(visits, Visit{Path: dir, Timestamp: ts})
			}
		}
		return visits
	})
}

// ImportFish parses a fish history file:
//
//	- cmd: <command>
//	  when: <unix_timestamp>
func ImportFish(path, home string) ([]Visit, error) {
	if path == "" {
		path = fishHistoryPath()
	}
	return parseFile(path, func(sc *bufio.Scanner) []Visit {
		var visits []Visit
		var current string
		flush := func(ts time.Time) {
			if current == "" {
				return
			}
			if dir := ExtractTarget(current, home); dir != "" {
				visits = append(visits, Visit{Path: dir, Timestamp: ts})
			}
			current = ""
		}
		for sc.Scan() {
			line := sc.Text()
			switch {
			case strings.HasPrefix(line, "- cmd: "):
				flush(time.Time{})
				current = strings.TrimPrefix(line, "- cmd: ")
			case strings.HasPrefix(line, "  when: "):
				var ts time.Time
				if sec, err := strconv.ParseInt(strings.TrimPrefix(line, "  when: "), 10, 64); err == nil {
					ts = time.Unix(sec, 0)
				}
				flush(ts)
			}
		}
		flush(time.Time{})
		return visits
	})
}

// ImportForShell imports visits for the named shell ("bash", "zsh", "fish",
// or "auto" to detect from $SHELL). Unknown shells yield no visits.
func ImportForShell(shell, home string) ([]Visit, error) {
	if shell == "auto" || shell == "" {
		shell = DetectShell()
	}
	switch shell {
	case "bash":
		return ImportBash("", home)
	case "zsh":
		return ImportZsh("", home)
	case "fish":
		return ImportFish("", home)
	default:
		return nil, nil
	}
}

// DetectShell returns the shell name based on $SHELL.
func DetectShell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return ""
	}
	switch filepath.Base(shell) {
	case "bash", "zsh", "fish":
		return filepath.Base(shell)
	default:
		return ""
	}
}

// parseFile opens path and runs parse over it. A missing file yields no
// visits rather than an error.
func parseFile(path string, parse func(*bufio.Scanner) []Visit) ([]Visit, error) {
	if path == "" {
		return nil, nil
	}
	file, err := os.Open(path) //nolint:gosec // G304: path is the user's own history file
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	visits := parse(scanner)
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return trimToLimit(visits, MaxImportEntries), nil
}

func bashHistoryPath() string {
	if histFile := os.Getenv("HISTFILE"); histFile != "" {
		return histFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bash_history")
}

func zshHistoryPath() string {
	if histFile := os.Getenv("HISTFILE"); histFile != "" {
		return histFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".zsh_history")
}

func fishHistoryPath() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "fish", "fish_history")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "fish", "fish_history")
}

// trimToLimit returns the last n visits.
func trimToLimit(visits []Visit, n int) []Visit {
	if len(visits) <= n {
		return visits
	}
	return visits[len(visits)-n:]
}
