package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/dirjump/internal/storage"
)

var shortcutCmd = &cobra.Command{
	Use:     "shortcut",
	Short:   "Manage named directory shortcuts",
	GroupID: groupCore,
	Long: `Manage named directory shortcuts.

A shortcut names a directory subtree. Searches can match shortcut names
in addition to raw paths, so 'dirjump list work' finds everything under
the directory the "work" shortcut points at.`,
}

var shortcutAddCmd = &cobra.Command{
	Use:   "add <name> <path> [description]",
	Short: "Create or replace a shortcut",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runShortcutAdd,
}

var shortcutRmID int64

var shortcutRmCmd = &cobra.Command{
	Use:     "rm [name]",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a shortcut by name or id",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runShortcutRm,
}

var shortcutListCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List shortcuts",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShortcutList,
}

func init() {
	shortcutRmCmd.Flags().Int64Var(&shortcutRmID, "id", 0, "delete by shortcut id instead of name")
	shortcutCmd.AddCommand(shortcutAddCmd)
	shortcutCmd.AddCommand(shortcutRmCmd)
	shortcutCmd.AddCommand(shortcutListCmd)
}

func runShortcutAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	name := args[0]
	abs, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", args[1], err)
	}
	description := ""
	if len(args) > 2 {
		description = args[2]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sc, err := store.AddShortcut(ctx, name, filepath.Clean(abs), description)
	if err != nil {
		return fmt.Errorf("failed to add shortcut: %w", err)
	}
	fmt.Printf("%s%s%s -> %s\n", colorBold, sc.Name, colorReset, sc.Path)
	return nil
}

func runShortcutRm(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && shortcutRmID == 0 {
		return fmt.Errorf("a shortcut name or --id is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if shortcutRmID != 0 {
		if err := store.DeleteShortcutByID(ctx, shortcutRmID); err != nil {
			return fmt.Errorf("failed to delete shortcut: %w", err)
		}
		return nil
	}
	if err := store.DeleteShortcut(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete shortcut: %w", err)
	}
	return nil
}

func runShortcutList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	shortcuts, err := store.ListShortcuts(ctx, storage.ShortcutQuery{Filter: filter})
	if err != nil {
		return fmt.Errorf("failed to list shortcuts: %w", err)
	}

	if len(shortcuts) == 0 {
		fmt.Println("No shortcuts defined. Add one with 'dirjump shortcut add <name> <path>'.")
		return nil
	}

	for _, sc := range shortcuts {
		line := fmt.Sprintf("%s%-12s%s %s", colorBold, sc.Name, colorReset, sc.Path)
		if sc.Description != "" {
			line += fmt.Sprintf("  %s%s%s", colorDim, sc.Description, colorReset)
		}
		fmt.Println(line)
	}
	return nil
}
