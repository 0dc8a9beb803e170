package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/top-internal/topctl/internal/domain"
	"github.com/top-internal/topctl/internal/store"
)

type tasksLoadedMsg struct {
	tasks []domain.Task
	err   error
}

// timerToggledMsg reports the server's verdict on a timer start or stop.
// The rollback closure undoes the optimistic store change on failure.
type timerToggledMsg struct {
	taskID   string
	starting bool
	rollback func()
	err      error
}

// tasksModel lists tasks and drives the timer toggles. Timer changes apply
// to the store immediately and roll back if the server rejects them.
type tasksModel struct {
	deps  Deps
	tasks *store.Tasks

	table   table.Model
	spinner spinner.Model
	loading bool
	loadErr string
}

func newTasksModel(deps Deps) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Title", Width: cellWidth},
			{Title: "Job", Width: cellWidth},
			{Title: "Assignee", Width: 18},
			{Title: "Status", Width: 12},
			{Title: "Timer", Width: 8},
			{Title: "Tracked", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	tbl.SetStyles(styles)

	return tasksModel{
		deps:    deps,
		tasks:   store.NewTasks(),
		table:   tbl,
		spinner: sp,
	}
}

func (m tasksModel) Init() tea.Cmd {
	if len(m.tasks.All()) > 0 {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m tasksModel) fetch() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		tasks, err := deps.API.Tasks().List(deps.Ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m tasksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(4, msg.Height-8))
		return m, nil

	case tasksLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.tasks.Set(msg.tasks)
		m.rebuildRows()
		return m, nil

	case timerToggledMsg:
		if msg.err != nil {
			if msg.rollback != nil {
				msg.rollback()
			}
			m.rebuildRows()
			err := msg.err
			return m, func() tea.Msg {
				return ToastMsg{Text: "Timer: " + err.Error(), IsErr: true}
			}
		}
		verb := "stopped"
		if msg.starting {
			verb = "started"
		}
		return m, func() tea.Msg {
			return ToastMsg{Text: "Timer " + verb}
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
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.fetch())
		case "t":
			return m.toggleTimer()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// toggleTimer flips the timer of the selected task. The store mutates
// before the request goes out; the resulting message carries the rollback.
func (m tasksModel) toggleTimer() (tea.Model, tea.Cmd) {
	task, ok := m.selected()
	if !ok {
		return m, nil
	}

	deps := m.deps
	if task.TimerRunning {
		rollback, err := m.tasks.StopTimer(task.ID)
		if err != nil {
			return m, nil
		}
		m.rebuildRows()
		return m, func() tea.Msg {
			err := deps.API.Tasks().StopTimer(deps.Ctx, task.ID)
			return timerToggledMsg{taskID: task.ID, rollback: rollback, err: err}
		}
	}

	rollback, err := m.tasks.StartTimer(task.ID)
	if err != nil {
		return m, nil
	}
	m.rebuildRows()
	return m, func() tea.Msg {
		err := deps.API.Tasks().StartTimer(deps.Ctx, task.ID)
		return timerToggledMsg{taskID: task.ID, starting: true, rollback: rollback, err: err}
	}
}

func (m *tasksModel) rebuildRows() {
	tasks := m.tasks.All()
	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		timer := ""
		if t.TimerRunning {
			timer = "● rec"
		}
		rows[i] = table.Row{
			cell(t.Title), cell(t.JobName), cell(t.AssigneeName),
			t.Status, timer, formatHours(t.TrackedMinutes),
		}
	}
	m.table.SetRows(rows)
}

func (m tasksModel) selected() (domain.Task, bool) {
	idx := m.table.Cursor()
	tasks := m.tasks.All()
	if idx < 0 || idx >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[idx], true
}

func (m tasksModel) View() string {
	view := TitleStyle.Render("Tasks") + "\n"

	switch {
	case m.loading:
		view += m.spinner.View() + " Loading..."
	case m.loadErr != "":
		view += PanelStyle.Render(ErrorStyle.Render("Failed to load: " + m.loadErr))
	default:
		view += m.table.View()
	}

	if running, ok := m.tasks.Running(); ok {
		view += "\n" + SuccessStyle.Render(fmt.Sprintf("● Tracking: %s", running.Title))
	}
	return view + "\n" + HelpStyle.Render("t start/stop timer · r refresh")
}
