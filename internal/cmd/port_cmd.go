package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/dirjump/internal/port"
	"github.com/runger/dirjump/internal/shellhist"
)

var exportCmd = &cobra.Command{
	Use:     "export <file>",
	Short:   "Export visits and shortcuts to a JSON archive",
	GroupID: groupData,
	Args:    cobra.ExactArgs(1),
	RunE:    runExport,
}

var importCmd = &cobra.Command{
	Use:     "import <file>",
	Short:   "Import visits and shortcuts from a JSON archive",
	GroupID: groupData,
	Long: `Import a previously exported archive.

Imported visits go through the same recording path as live navigation,
so the current set and history stay consistent. Malformed rows are
skipped with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importShellFlag string

var importShellCmd = &cobra.Command{
	Use:     "import-shell",
	Short:   "Seed the database from shell history",
	GroupID: groupData,
	Long: `Scan the shell history file for cd/pushd commands and record their
targets as visits. Useful right after installing, so the picker is not
empty on first use.

Examples:
  dirjump import-shell              # Detect shell from $SHELL
  dirjump import-shell --shell zsh  # Parse ~/.zsh_history`,
	Args: cobra.NoArgs,
	RunE: runImportShell,
}

func init() {
	importShellCmd.Flags().StringVar(&importShellFlag, "shell", "auto", "shell history to parse: auto, bash, zsh, or fish")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	archive, err := port.Export(ctx, store)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	if err := port.WriteFile(args[0], archive); err != nil {
		return err
	}

	fmt.Printf("%sExported %d visit(s) and %d shortcut(s) to %s%s\n",
		colorGreen, len(archive.Visits), len(archive.Shortcuts), args[0], colorReset)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	archive, err := port.ReadFile(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	visits, shortcuts, err := port.Import(ctx, store, archive, newLogger(cfg))
	if err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}

	fmt.Printf("%sImported %d visit(s) and %d shortcut(s)%s\n", colorGreen, visits, shortcuts, colorReset)
	return nil
}

func runImportShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to resolve home directory: %w", err)
	}

	visits, err := shellhist.ImportForShell(importShellFlag, home)
	if err != nil {
		return fmt.Errorf("failed to parse shell history: %w", err)
	}
	if len(visits) == 0 {
		fmt.Println("No directory visits found in shell history.")
		return nil
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now().Unix()
	imported := 0
	for _, v := range visits {
		ts := v.Timestamp.Unix()
		if v.Timestamp.IsZero() {
			// History files without timestamps still preserve order; stamping
			// them all "now" would invert nothing since AddPath keeps
			// insertion order for equal dates.
			ts = now
		}
		if _, err := store.AddPath(ctx, v.Path, ts); err != nil {
			return fmt.Errorf("failed to record %s: %w", v.Path, err)
		}
		imported++
	}

	fmt.Printf("Imported %d visit(s) from shell history\n", imported)
	return nil
}
