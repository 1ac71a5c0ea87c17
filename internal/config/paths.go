package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// envHome overrides the dirjump directory, mainly for tests.
const envHome = "DIRJUMP_HOME"

// Dir returns the dirjump directory (~/.dirjump, or $DIRJUMP_HOME).
func Dir() (string, error) {
	if dir := os.Getenv(envHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".dirjump"), nil
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultDBPath returns the default database location, honoring
// $DIRJUMP_HOME.
func DefaultDBPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.db"), nil
}
