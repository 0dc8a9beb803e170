package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/top-internal/topctl/internal/domain"
)

type statsLoadedMsg struct {
	stats *domain.DashboardStats
	err   error
}

// dashboardModel shows the aggregate counters for the organization.
type dashboardModel struct {
	deps Deps

	stats   *domain.DashboardStats
	loadErr string
	loading bool
	spinner spinner.Model
	width   int
}

func newDashboardModel(deps Deps) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return dashboardModel{deps: deps, spinner: sp}
}

func (m dashboardModel) Init() tea.Cmd {
	if m.stats != nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m dashboardModel) fetch() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		stats, err := deps.API.Dashboard().Stats(deps.Ctx)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case statsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.stats = msg.stats
		return m, nil

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
	}
	return m, nil
}

func (m dashboardModel) View() string {
	view := TitleStyle.Render("Dashboard") + "\n"

	switch {
	case m.loading:
		return view + m.spinner.View() + " Loading..."
	case m.loadErr != "":
		return view + PanelStyle.Render(ErrorStyle.Render("Failed to load: "+m.loadErr))
	case m.stats == nil:
		return view + DimStyle.Render("No data yet. Press r to refresh.")
	}

	s := m.stats
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Active jobs", fmt.Sprintf("%d", s.ActiveJobs)),
		statCard("Open tasks", fmt.Sprintf("%d", s.OpenTasks)),
		statCard("Pending timesheets", fmt.Sprintf("%d", s.PendingTimesheets)),
		statCard("Unpaid invoices", fmt.Sprintf("%d", s.UnpaidInvoices)),
	)
	hours := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Hours this week", formatHours(s.MinutesThisWeek)),
		statCard("Hours this month", formatHours(s.MinutesThisMonth)),
	)
	return view + cards + "\n" + hours + "\n" + HelpStyle.Render("r refresh")
}

func statCard(label, value string) string {
	body := lipgloss.NewStyle().Bold(true).Render(value) + "\n" + DimStyle.Render(label)
	return PanelStyle.Render(body)
}

func formatHours(minutes int) string {
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}
