// Package picker implements the interactive directory picker: a Bubble Tea
// list over windowed result caches, one per tab, with live filtering and a
// fuzzy-match toggle. Enter prints the chosen directory so shells can wire
// it as cd "$(dirjump pick)".
package picker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runger/dirjump/internal/model"
	"github.com/runger/dirjump/internal/window"
)

// PathDeleter removes a current-set entry by id. *storage.Store satisfies it.
type PathDeleter interface {
	DeletePath(ctx context.Context, id int64) error
}

// Tab describes one selectable data source.
type Tab struct {
	ID     string
	Label  string
	Lister model.Lister[Item]

	// Deletable enables ctrl+x row deletion on this tab.
	Deletable bool
}

// initMsg triggers the first fetch through Update, where state mutations
// are visible to the Bubble Tea runtime.
type initMsg struct{}

// tabState is the per-tab cache plus its load flag.
type tabState struct {
	def    Tab
	win    *window.Window[Item]
	loaded bool
	empty  bool // latest notification payload
}

// Model is the Bubble Tea model for the picker.
type Model struct {
	tabs      []*tabState
	activeTab int
	selection int // index into the active window's entries; -1 when empty
	input     textinput.Model
	fuzzy     bool
	pageSize  int
	deleter   PathDeleter
	logger    *slog.Logger

	width  int
	height int

	err       error
	result    string
	cancelled bool
}

// NewModel builds a picker over the given tabs. deleter may be nil, in
// which case deletion keys are inert.
func NewModel(tabs []Tab, pageSize int, deleter PathDeleter, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	input := textinput.New()
	input.Prompt = "> "
	input.Focus()

	m := &Model{
		tabs:      make([]*tabState, 0, len(tabs)),
		selection: -1,
		input:     input,
		pageSize:  pageSize,
		deleter:   deleter,
		logger:    logger,
	}
	for _, def := range tabs {
		ts := &tabState{def: def}
		ts.win = window.New(def.Lister, def.ID, func(n model.Notification) {
			ts.empty = n.IsEmpty
		})
		m.tabs = append(m.tabs, ts)
	}
	return m
}

// WithQuery pre-fills the search query; the first load filters by it.
func (m *Model) WithQuery(q string) *Model {
	m.input.SetValue(q)
	m.input.CursorEnd()
	return m
}

// Result returns the selected directory, or "" when cancelled.
func (m *Model) Result() string { return m.result }

// IsCancelled reports whether the user aborted the picker.
func (m *Model) IsCancelled() bool { return m.cancelled }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return initMsg{} }
}

// Update implements tea.Model. All cache calls are synchronous: the engine
// is a local embedded database and every operation is fast enough to run
// inline.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case initMsg:
		m.loadActive()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.cancelled = true
		return m, tea.Quit

	case tea.KeyEnter:
		items := m.activeWin().Entries()
		if m.selection >= 0 && m.selection < len(items) {
			m.result = items[m.selection].Path
		}
		return m, tea.Quit

	case tea.KeyUp:
		m.moveSelection(-1)
		return m, nil

	case tea.KeyDown:
		m.moveSelection(1)
		return m, nil

	case tea.KeyTab:
		if len(m.tabs) > 1 {
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			m.loadActive()
		}
		return m, nil

	case tea.KeyCtrlF:
		m.fuzzy = !m.fuzzy
		m.runCacheOp(m.activeWin().SetFuzzyMatch(m.fuzzy))
		m.clampSelection()
		return m, nil

	case tea.KeyCtrlX:
		m.deleteSelected()
		return m, nil
	}

	// Everything else edits the query.
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.runCacheOp(m.activeWin().UpdateFilter(m.pageSize, after, m.fuzzy))
		m.selection = firstSelectable(m.activeWin().Entries())
	}
	return m, cmd
}

// moveSelection moves the cursor, scrolling the window when the cursor is
// already at its edge. Scrolling hits the subset fast path unless the
// window actually has to grow past its cached range.
func (m *Model) moveSelection(delta int) {
	win := m.activeWin()
	items := win.Entries()
	next := m.selection + delta
	switch {
	case len(items) == 0:
		m.selection = -1
	case next < 0:
		m.runCacheOp(win.UpdateToOffset(-1, m.pageSize))
		m.clampSelection()
	case next >= len(items):
		m.runCacheOp(win.UpdateToOffset(1, m.pageSize))
		m.selection = len(win.Entries()) - 1
	default:
		m.selection = next
	}
}

// deleteSelected removes the selected row from the current-path set and
// reloads the window. Predicted rows and non-deletable tabs are ignored.
func (m *Model) deleteSelected() {
	tab := m.tabs[m.activeTab]
	if m.deleter == nil || !tab.def.Deletable {
		return
	}
	items := tab.win.Entries()
	if m.selection < 0 || m.selection >= len(items) {
		return
	}
	it := items[m.selection]
	if it.Predicted || it.ID == 0 {
		return
	}
	if err := m.deleter.DeletePath(context.Background(), it.ID); err != nil {
		m.fail(err)
		return
	}
	m.runCacheOp(tab.win.Reload())
	m.clampSelection()
}

// loadActive ensures the active tab's window is populated.
func (m *Model) loadActive() {
	tab := m.tabs[m.activeTab]
	if !tab.loaded {
		m.runCacheOp(tab.win.UpdateFilter(m.pageSize, m.input.Value(), m.fuzzy))
		tab.loaded = true
	}
	m.clampSelection()
}

// runCacheOp records a cache error. Listing failures render as an empty
// view but are still surfaced to the log.
func (m *Model) runCacheOp(err error) {
	if err != nil {
		m.fail(err)
	} else {
		m.err = nil
	}
}

func (m *Model) fail(err error) {
	m.err = err
	m.logger.Error("picker storage error", "error", err)
}

func (m *Model) activeWin() *window.Window[Item] {
	return m.tabs[m.activeTab].win
}

func (m *Model) clampSelection() {
	items := m.activeWin().Entries()
	if len(items) == 0 {
		m.selection = -1
		return
	}
	if m.selection < 0 {
		m.selection = firstSelectable(items)
	}
	if m.selection >= len(items) {
		m.selection = len(items) - 1
	}
}

// firstSelectable starts the cursor on the first real entry, skipping past
// the predicted block when one is present.
func firstSelectable(items []Item) int {
	if len(items) == 0 {
		return -1
	}
	return 0
}

// --- View rendering ---

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	predictedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Italic(true)
	annotationStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewTabBar())
	b.WriteRune('\n')
	b.WriteString(m.viewList())
	b.WriteRune('\n')
	b.WriteString(m.input.View())
	b.WriteRune('\n')
	b.WriteString(m.viewStatus())
	return b.String()
}

func (m *Model) viewTabBar() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		label := " " + tab.def.Label + " "
		if i == m.activeTab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) viewList() string {
	items := m.activeWin().Entries()
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("error: %s", m.err))
	}
	if len(items) == 0 {
		return dimStyle.Render("no matches")
	}

	var b strings.Builder
	for i, it := range items {
		line := it.Path
		if m.width > 4 {
			line = MiddleTruncate(line, m.width-4)
		}
		style := normalStyle
		marker := "  "
		if it.Predicted {
			style = predictedStyle
			marker = " *"
		}
		if i == m.selection {
			style = selectedStyle
			marker = "> "
		}
		b.WriteString(style.Render(marker + line))
		if it.Annotation != "" {
			b.WriteString(annotationStyle.Render("  [" + it.Annotation + "]"))
		}
		if i < len(items)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func (m *Model) viewStatus() string {
	tab := m.tabs[m.activeTab]
	parts := []string{fmt.Sprintf("offset %d", tab.win.First())}
	if m.fuzzy {
		parts = append(parts, "fuzzy")
	}
	if tab.empty {
		parts = append(parts, "empty")
	}
	return dimStyle.Render(strings.Join(parts, " · "))
}
