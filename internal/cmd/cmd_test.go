package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Registration(t *testing.T) {
	expected := []string{
		"add", "list", "history", "shortcut", "suggest", "pick",
		"export", "import", "import-shell", "version",
	}
	for _, name := range expected {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "command %q not registered", name)
	}
}

func TestShortcutSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range shortcutCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["add"])
	assert.True(t, names["rm"])
	assert.True(t, names["list"])
}

func TestListCommand_Flags(t *testing.T) {
	for _, flag := range []string{"offset", "limit", "fuzzy"} {
		require.NotNil(t, listCmd.Flags().Lookup(flag), "flag %q", flag)
	}
}

func TestSuggestCommand_Flags(t *testing.T) {
	for _, flag := range []string{"depth", "count", "format"} {
		require.NotNil(t, suggestCmd.Flags().Lookup(flag), "flag %q", flag)
	}
}

func TestLoadConfig_UsesDirjumpHome(t *testing.T) {
	t.Setenv("DIRJUMP_HOME", t.TempDir())

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Suggestions.Enabled)

	store, err := openStore(cfg)
	require.NoError(t, err)
	defer store.Close()
	assert.NotEmpty(t, store.Path())
}
