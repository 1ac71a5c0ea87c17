package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runger/dirjump/internal/model"
)

var (
	listOffset int
	listLimit  int
	listFuzzy  bool
)

var listCmd = &cobra.Command{
	Use:     "list [filter]",
	Short:   "List known directories",
	GroupID: groupCore,
	Long: `List directories from the dirjump database, most recent first.

Without arguments, shows the most recently visited directories; when
smart suggestions are enabled, predicted next directories are shown
first, marked with *.
With a filter argument, shows directories whose path contains it.

Examples:
  dirjump list                  # Most recent directories
  dirjump list --limit=50       # Show more
  dirjump list proj             # Paths containing "proj"
  dirjump list --fuzzy prj      # Fuzzy match "prj"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Number of entries to skip")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Maximum number of entries to show")
	listCmd.Flags().BoolVarP(&listFuzzy, "fuzzy", "f", false, "Use fuzzy matching for the filter")
}

func runList(cmd *cobra.Command, args []string) error {
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

	idx := newIndex(store, cfg, workingDir())
	entries, err := idx.ListPaths(ctx, listOffset, listLimit, filter, listFuzzy)
	if err != nil {
		return fmt.Errorf("failed to list directories: %w", err)
	}

	if len(entries) == 0 {
		if filter != "" {
			fmt.Printf("No directories matching '%s'\n", filter)
		} else {
			fmt.Println("No directories recorded yet. Run 'dirjump add' from a shell hook.")
		}
		return nil
	}

	for _, e := range entries {
		printEntry(e)
	}
	return nil
}

func printEntry(e model.PathEntry) {
	marker := " "
	if e.IsPredicted {
		marker = colorCyan + "*" + colorReset
	}
	line := fmt.Sprintf("%s %s", marker, e.Path)
	if e.Shortcut != nil {
		line += fmt.Sprintf("  %s[%s]%s", colorYellow, e.Shortcut.Name, colorReset)
	}
	if !e.IsPredicted && e.Timestamp > 0 {
		t := time.Unix(e.Timestamp, 0)
		line += fmt.Sprintf("  %s%s%s", colorDim, t.Format("2006-01-02 15:04"), colorReset)
	}
	fmt.Println(line)
}
