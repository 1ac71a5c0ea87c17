package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ParsesAndMergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /custom/state.db
search:
  shortcut_aware: false
suggestions:
  count: 8
picker:
  page_size: 40
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/custom/state.db", cfg.Database.Path)
	assert.False(t, cfg.Search.ShortcutAware)
	assert.Equal(t, 8, cfg.Suggestions.Count)
	// Unset keys keep their defaults.
	assert.Equal(t, Default().Suggestions.Depth, cfg.Suggestions.Depth)
	assert.Equal(t, 40, cfg.Picker.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("picker: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_NormalizesNonsenseValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
suggestions:
  depth: -1
  count: 0
picker:
  page_size: -5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	def := Default()
	assert.Equal(t, def.Suggestions.Depth, cfg.Suggestions.Depth)
	assert.Equal(t, def.Suggestions.Count, cfg.Suggestions.Count)
	assert.Equal(t, def.Picker.PageSize, cfg.Picker.PageSize)
}

func TestDir_HonorsEnvOverride(t *testing.T) {
	t.Setenv(envHome, "/custom/dirjump")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/custom/dirjump", dir)

	dbPath, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/dirjump", "state.db"), dbPath)
}
