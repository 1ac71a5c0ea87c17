// Package log builds the JSON-lines structured logger used across dirjump.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config configures the structured logger.
type Config struct {
	// Output is the writer for log output (default: os.Stderr).
	Output io.Writer

	// Level is the minimum log level (default: warn).
	Level slog.Level

	// Debug enables debug level logging (overrides Level).
	Debug bool
}

// New creates a JSON-lines logger:
//
//	{"ts":"2026-08-23T10:30:00Z","level":"WARN","msg":"import row skipped","path":"..."}
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	level := cfg.Level
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}
	return slog.New(slog.NewJSONHandler(output, opts))
}

// ParseLevel maps a config string to a slog level, defaulting to warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// FromConfig builds the logger for the given level string, honoring
// DIRJUMP_DEBUG=1.
func FromConfig(level string) *slog.Logger {
	cfg := &Config{Level: ParseLevel(level)}
	if os.Getenv("DIRJUMP_DEBUG") == "1" {
		cfg.Debug = true
	}
	return New(cfg)
}
