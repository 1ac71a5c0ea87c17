package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/runger/dirjump/internal/config"
	"github.com/runger/dirjump/internal/index"
	"github.com/runger/dirjump/internal/log"
	"github.com/runger/dirjump/internal/storage"
	"github.com/runger/dirjump/internal/suggest"
)

// loadConfig reads the user config from the default location, falling back
// to defaults when the file does not exist. A malformed file is a hard
// error so typos do not silently revert settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from config. It writes to stderr so
// stdout stays clean for shell substitution.
func newLogger(cfg *config.Config) *slog.Logger {
	return log.FromConfig(cfg.Log.Level)
}

// openStore opens the database named in config, creating and migrating it
// when needed.
func openStore(cfg *config.Config) (*storage.Store, error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = config.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// newIndex wires the search index over a store with options from config.
// cwd anchors smart suggestions; pass "" to disable them for this call.
func newIndex(store *storage.Store, cfg *config.Config, cwd string) *index.Index {
	home, _ := os.UserHomeDir()
	suggester := suggest.New(store, home)
	return index.New(store, suggester, func() index.Options {
		return index.Options{
			ShortcutAware: cfg.Search.ShortcutAware,
			SmartSuggest:  cfg.Suggestions.Enabled,
			SuggestDepth:  cfg.Suggestions.Depth,
			SuggestCount:  cfg.Suggestions.Count,
		}
	}, cwd)
}

// workingDir returns the current directory, or "" when it cannot be
// determined (deleted cwd). Callers treat "" as "no anchor".
func workingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return cwd
}
