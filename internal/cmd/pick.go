package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/runger/dirjump/internal/index"
	"github.com/runger/dirjump/internal/picker"
)

// Exit codes.
// These match the expectations of shell wrappers:
//
//	0 = selection made (cd to the printed path)
//	1 = cancelled by user (stay where you are)
//	2 = fallback (no TTY, error; the wrapper should do nothing)
const (
	exitSuccess   = 0
	exitCancelled = 1
	exitFallback  = 2
)

var pickQuery string

var pickCmd = &cobra.Command{
	Use:     "pick",
	Short:   "Interactively pick a directory",
	GroupID: groupCore,
	Long: `Open the interactive picker and print the chosen directory.

Designed for shell substitution:

  dj() {
    local dir
    dir=$(dirjump pick) && cd "$dir"
  }

Tab switches between recent directories, full history and shortcuts.
Typing filters; ctrl+f toggles fuzzy matching; ctrl+x deletes the
selected directory from the current set; Enter selects; Esc cancels.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if code := runPick(); code != exitSuccess {
			os.Exit(code)
		}
	},
}

func init() {
	pickCmd.Flags().StringVarP(&pickQuery, "query", "q", "", "initial search query")
}

func runPick() int {
	if err := checkTERM(); err != nil {
		fmt.Fprintf(os.Stderr, "dirjump: %v\n", err)
		return exitFallback
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dirjump: %v\n", err)
		return exitFallback
	}
	logger := newLogger(cfg)

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dirjump: %v\n", err)
		return exitFallback
	}
	defer store.Close()

	idx := newIndex(store, cfg, workingDir())
	tabs := []picker.Tab{
		{
			ID:        "paths",
			Label:     "Paths",
			Lister:    picker.PathItems(index.PathLister{Index: idx}),
			Deletable: true,
		},
		{
			ID:     "history",
			Label:  "History",
			Lister: picker.PathItems(index.HistoryLister{Index: idx}),
		},
		{
			ID:     "shortcuts",
			Label:  "Shortcuts",
			Lister: picker.ShortcutItems(index.ShortcutLister{Store: store}),
		},
	}

	model := picker.NewModel(tabs, cfg.Picker.PageSize, store, logger)
	if pickQuery != "" {
		model = model.WithQuery(pickQuery)
	}

	// Open /dev/tty for TUI input/output since stdout is used for the result.
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dirjump: cannot open /dev/tty: %v\n", err)
		return exitFallback
	}
	defer tty.Close()

	// Detect color profile from the tty and apply it to the default renderer.
	// When invoked via $(dirjump pick), stdout is a pipe so lipgloss defaults
	// to Ascii (no color). We detect from the real tty instead.
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
	)

	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dirjump: TUI error: %v\n", err)
		return exitFallback
	}

	m, ok := finalModel.(*picker.Model)
	if !ok {
		fmt.Fprintln(os.Stderr, "dirjump: unexpected model type")
		return exitFallback
	}

	if m.IsCancelled() || m.Result() == "" {
		return exitCancelled
	}
	fmt.Fprintln(os.Stdout, m.Result())
	return exitSuccess
}

// checkTERM rejects terminals that cannot run the TUI.
func checkTERM() error {
	if os.Getenv("TERM") == "dumb" {
		return fmt.Errorf("TERM=dumb, cannot run interactive picker")
	}
	return nil
}
