package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/top-internal/topctl/internal/domain"
	"github.com/top-internal/topctl/internal/export"
)

const dateLayout = "2006-01-02"

type reportLoadedMsg struct {
	rows []domain.ReportRow
	err  error
}

type reportExportedMsg struct {
	path string
	err  error
}

// reportsModel runs the time report for a date range and exports it to an
// XLSX workbook.
type reportsModel struct {
	deps Deps

	from textinput.Model
	to   textinput.Model
	// focus: 0 from, 1 to, 2 table
	focus int

	rows    []domain.ReportRow
	table   table.Model
	spinner spinner.Model
	loading bool
	errText string
}

func newReportsModel(deps Deps) tea.Model {
	now := time.Now()
	from := textinput.New()
	from.Placeholder = dateLayout
	from.CharLimit = 10
	from.SetValue(now.AddDate(0, 0, -30).Format(dateLayout))
	from.Focus()

	to := textinput.New()
	to.Placeholder = dateLayout
	to.CharLimit = 10
	to.SetValue(now.Format(dateLayout))

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "User", Width: 18},
			{Title: "Job", Width: cellWidth},
			{Title: "Task", Width: cellWidth},
			{Title: "Hours", Width: 8},
			{Title: "Billable", Width: 8},
		}),
		table.WithHeight(10),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return reportsModel{deps: deps, from: from, to: to, table: tbl, spinner: sp}
}

// capturesInput keeps tab for moving between the date inputs and the table.
func (m reportsModel) capturesInput() bool {
	return m.focus < 2
}

func (m reportsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m reportsModel) parseRange() (from, to time.Time, err error) {
	from, err = time.Parse(dateLayout, m.from.Value())
	if err != nil {
		return from, to, fmt.Errorf("from date: %w", err)
	}
	to, err = time.Parse(dateLayout, m.to.Value())
	if err != nil {
		return from, to, fmt.Errorf("to date: %w", err)
	}
	return from, to, nil
}

func (m reportsModel) run() (tea.Model, tea.Cmd) {
	from, to, err := m.parseRange()
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.errText = ""
	m.loading = true
	deps := m.deps
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		rows, err := deps.API.Reports().Time(deps.Ctx, from, to)
		return reportLoadedMsg{rows: rows, err: err}
	})
}

func (m reportsModel) export() (tea.Model, tea.Cmd) {
	if len(m.rows) == 0 {
		return m, func() tea.Msg {
			return ToastMsg{Text: "Run the report before exporting", IsErr: true}
		}
	}
	from, to, err := m.parseRange()
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	rows := m.rows
	return m, func() tea.Msg {
		path := export.DefaultFileName(from, to)
		if err := export.TimeReport(path, rows); err != nil {
			return reportExportedMsg{err: err}
		}
		return reportExportedMsg{path: path}
	}
}

func (m reportsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(4, msg.Height-12))
		return m, nil

	case reportLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.rows = msg.rows
		rows := make([]table.Row, len(msg.rows))
		for i, r := range msg.rows {
			rows[i] = table.Row{
				r.Date.Format(dateLayout), cell(r.UserName), cell(r.JobName), cell(r.TaskName),
				formatHours(r.Minutes), yesNo(r.Billable),
			}
		}
		m.table.SetRows(rows)
		return m, nil

	case reportExportedMsg:
		if msg.err != nil {
			err := msg.err
			return m, func() tea.Msg {
				return ToastMsg{Text: "Export: " + err.Error(), IsErr: true}
			}
		}
		path := msg.path
		return m, func() tea.Msg {
			return ToastMsg{Text: "Exported to " + path}
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.focus = (m.focus + 1) % 3
			m.syncFocus()
			return m, textinput.Blink
		case "enter":
			if m.focus < 2 {
				return m.run()
			}
		case "r":
			if m.focus == 2 {
				return m.run()
			}
		case "e":
			if m.focus == 2 {
				return m.export()
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case 0:
		m.from, cmd = m.from.Update(msg)
	case 1:
		m.to, cmd = m.to.Update(msg)
	default:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

func (m *reportsModel) syncFocus() {
	m.from.Blur()
	m.to.Blur()
	m.table.Blur()
	switch m.focus {
	case 0:
		m.from.Focus()
	case 1:
		m.to.Focus()
	default:
		m.table.Focus()
	}
}

func (m reportsModel) View() string {
	view := TitleStyle.Render("Time Report") + "\n"
	view += "From: " + m.from.View() + "   To: " + m.to.View() + "\n"

	switch {
	case m.loading:
		view += m.spinner.View() + " Running report..."
	case m.errText != "":
		view += ErrorStyle.Render(m.errText)
	case len(m.rows) == 0:
		view += DimStyle.Render("No rows. Set the range and press enter to run.")
	default:
		total := 0
		for _, r := range m.rows {
			total += r.Minutes
		}
		view += m.table.View() + "\n" + fmt.Sprintf("Total: %s over %d entries", formatHours(total), len(m.rows))
	}

	return view + "\n" + HelpStyle.Render("tab cycle focus · enter run · e export xlsx · r re-run")
}
