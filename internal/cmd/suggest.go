package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/dirjump/internal/suggest"
)

var (
	suggestDepth  int
	suggestCount  int
	suggestFormat string
)

var suggestCmd = &cobra.Command{
	Use:     "suggest [path]",
	Short:   "Predict the next directories from here",
	GroupID: groupCore,
	Long: `Predict which directories usually follow the given one.

The prediction scans the visit history for past visits to the anchor
directory and scores what came after each of them, weighting recent
visits higher. Without arguments, the anchor is the current directory.

This command is designed for shell integration (fast, minimal output).

Examples:
  dirjump suggest               # Predictions for $PWD
  dirjump suggest ~/src/app     # Predictions for an explicit anchor
  dirjump suggest --count 8     # More predictions
  dirjump suggest --format=json # Machine-readable output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVar(&suggestDepth, "depth", 0, "how many past visits to the anchor to scan (0 = config default)")
	suggestCmd.Flags().IntVarP(&suggestCount, "count", "n", 0, "maximum number of predictions (0 = config default)")
	suggestCmd.Flags().StringVar(&suggestFormat, "format", "text", "output format: text or json")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	anchor := workingDir()
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", args[0], err)
		}
		anchor = filepath.Clean(abs)
	}
	if anchor == "" {
		return fmt.Errorf("no anchor directory")
	}

	depth := suggestDepth
	if depth <= 0 {
		depth = cfg.Suggestions.Depth
	}
	count := suggestCount
	if count <= 0 {
		count = cfg.Suggestions.Count
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	shortcuts, err := store.AllShortcuts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load shortcuts: %w", err)
	}

	home, _ := os.UserHomeDir()
	entries, err := suggest.New(store, home).Suggest(ctx, anchor, depth, count, shortcuts)
	if err != nil {
		return fmt.Errorf("failed to compute suggestions: %w", err)
	}

	if suggestFormat == "json" {
		paths := make([]string, 0, len(entries))
		for _, e := range entries {
			paths = append(paths, e.Path)
		}
		return json.NewEncoder(os.Stdout).Encode(paths)
	}

	for _, e := range entries {
		fmt.Println(e.Path)
	}
	return nil
}
