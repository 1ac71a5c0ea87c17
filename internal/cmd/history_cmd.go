package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyOffset int
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:     "history [filter]",
	Short:   "Show the full visit history",
	GroupID: groupCore,
	Long: `Show the append-only visit history, most recent first.

Unlike 'list', which shows each directory once at its latest visit,
history shows every recorded visit including repeats.

Examples:
  dirjump history               # Last 20 visits
  dirjump history --limit=100   # Show more
  dirjump history proj          # Visits to paths containing "proj"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "Number of entries to skip")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of visits to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	idx := newIndex(store, cfg, "")
	entries, err := idx.ListHistory(ctx, historyOffset, historyLimit, filter)
	if err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}

	if len(entries) == 0 {
		if filter != "" {
			fmt.Printf("No visits matching '%s'\n", filter)
		} else {
			fmt.Println("No visit history available.")
		}
		return nil
	}

	// Oldest at top for typical terminal reading order.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		t := time.Unix(e.Timestamp, 0)
		fmt.Printf("%s%s%s  %s\n", colorDim, t.Format("2006-01-02 15:04:05"), colorReset, e.Path)
	}

	fmt.Println()
	fmt.Printf("%sShowing %d visit(s)%s\n", colorDim, len(entries), colorReset)
	return nil
}
