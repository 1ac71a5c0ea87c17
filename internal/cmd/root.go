package cmd

import (
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	groupCore = "core"
	groupData = "data"
)

var rootCmd = &cobra.Command{
	Use:   "dirjump",
	Short: "jump to directories you actually use",
	Long: `dirjump - jump to directories you actually use
  - records every directory you visit
  - learns which directory you go to next
  - pick → fuzzy-search and jump in two keystrokes`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Core Commands:"},
		&cobra.Group{ID: groupData, Title: "Data Commands:"},
	)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(shortcutCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(importShellCmd)
	rootCmd.AddCommand(versionCmd)
}
