package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/top-internal/topctl/internal/store"
)

// rowAction is one key-triggered operation on the selected row of a list
// screen.
type rowAction[T any] struct {
	key     string
	help    string
	enabled func() bool // nil means always offered
	run     func(item T) tea.Cmd
}

// listLoadedMsg delivers a finished list fetch. The name routes the message
// to the screen instance that requested it.
type listLoadedMsg[T any] struct {
	name  string
	items []T
	err   error
}

// listUpdatedMsg delivers the outcome of a row mutation.
type listUpdatedMsg[T any] struct {
	name string
	item T
	verb string
	err  error
}

// listScreen is the shared model behind the plain entity list screens.
// State is read from its store and mutated only through its own messages;
// the last successful response wins.
type listScreen[T any] struct {
	name    string
	store   *store.List[T]
	toRow   func(T) table.Row
	load    func() ([]T, error)
	actions []rowAction[T]

	table   table.Model
	spinner spinner.Model
	loading bool
	loadErr string
	width   int
}

func newListScreen[T any](name string, st *store.List[T], cols []table.Column, toRow func(T) table.Row, load func() ([]T, error)) listScreen[T] {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	tbl := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("62"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("170")).Bold(true)
	tbl.SetStyles(styles)

	return listScreen[T]{
		name:    name,
		store:   st,
		toRow:   toRow,
		load:    load,
		table:   tbl,
		spinner: sp,
	}
}

func (m listScreen[T]) Init() tea.Cmd {
	if m.store.Len() > 0 {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m listScreen[T]) fetch() tea.Cmd {
	name, load := m.name, m.load
	return func() tea.Msg {
		items, err := load()
		return listLoadedMsg[T]{name: name, items: items, err: err}
	}
}

func (m listScreen[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetHeight(max(4, msg.Height-8))
		return m, nil

	case listLoadedMsg[T]:
		if msg.name != m.name {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			// Read failures render as an inline panel in place of content.
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.store.Set(msg.items)
		m.rebuildRows()
		return m, nil

	case listUpdatedMsg[T]:
		if msg.name != m.name {
			return m, nil
		}
		if msg.err != nil {
			err := msg.err
			verb := msg.verb
			return m, func() tea.Msg {
				return ToastMsg{Text: fmt.Sprintf("%s failed: %v", verb, err), IsErr: true}
			}
		}
		m.store.Upsert(msg.item)
		m.rebuildRows()
		verb := msg.verb
		return m, func() tea.Msg {
			return ToastMsg{Text: verb + " succeeded"}
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetch())
		}
		for _, action := range m.actions {
			if msg.String() != action.key {
				continue
			}
			if action.enabled != nil && !action.enabled() {
				continue
			}
			item, ok := m.selected()
			if !ok {
				continue
			}
			return m, action.run(item)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *listScreen[T]) rebuildRows() {
	items := m.store.All()
	rows := make([]table.Row, len(items))
	for i, item := range items {
		rows[i] = m.toRow(item)
	}
	m.table.SetRows(rows)
}

func (m listScreen[T]) selected() (T, bool) {
	var zero T
	idx := m.table.Cursor()
	items := m.store.All()
	if idx < 0 || idx >= len(items) {
		return zero, false
	}
	return items[idx], true
}

func (m listScreen[T]) View() string {
	view := TitleStyle.Render(m.name) + "\n"

	switch {
	case m.loading:
		view += m.spinner.View() + " Loading..."
	case m.loadErr != "":
		view += PanelStyle.Render(ErrorStyle.Render("Failed to load: " + m.loadErr))
	default:
		view += m.table.View()
	}

	help := "r refresh"
	for _, action := range m.actions {
		if action.enabled != nil && !action.enabled() {
			continue
		}
		help += " · " + action.key + " " + action.help
	}
	return view + "\n" + HelpStyle.Render(help)
}
