package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:     "add [path]",
	Short:   "Record a directory visit",
	GroupID: groupCore,
	Long: `Record a directory visit in the dirjump database.

Without arguments, records the current working directory. This is the
command shell hooks call on every cd:

  dirjump add            # record $PWD
  dirjump add /tmp/work  # record an explicit path`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := workingDir()
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no directory to record")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := store.AddPath(ctx, filepath.Clean(abs), time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}
