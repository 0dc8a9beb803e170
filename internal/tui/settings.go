package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/top-internal/topctl/internal/domain"
)

type taskTypesLoadedMsg struct {
	types []domain.TaskType
	err   error
}

type taskTypeSavedMsg struct {
	taskType *domain.TaskType
	err      error
}

type taskTypeDeletedMsg struct {
	id  string
	err error
}

type settingsSavedMsg struct {
	settings *domain.OrgSettings
	err      error
}

// taskTypeColors is the palette the add flow cycles through.
var taskTypeColors = []string{"75", "114", "176", "180", "208", "72"}

// settingsModel edits the organization notification settings and manages
// the task type taxonomy.
type settingsModel struct {
	deps Deps

	// Pending edits to the org settings; nil until the session is loaded.
	edits *domain.OrgSettings

	taskTypes []domain.TaskType
	cursor    int

	adding   bool
	addInput textinput.Model
	colorIdx int

	errText string
}

func newSettingsModel(deps Deps) tea.Model {
	input := textinput.New()
	input.Placeholder = "Task type name"
	input.CharLimit = 60
	return settingsModel{deps: deps, addInput: input}
}

func (m settingsModel) capturesInput() bool {
	return m.adding
}

func (m settingsModel) Init() tea.Cmd {
	if len(m.taskTypes) > 0 {
		return nil
	}
	return m.fetchTypes()
}

func (m settingsModel) fetchTypes() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		types, err := deps.API.Settings().TaskTypes(deps.Ctx)
		return taskTypesLoadedMsg{types: types, err: err}
	}
}

// settings returns the working copy, seeding it from the session on first
// use.
func (m *settingsModel) settings() *domain.OrgSettings {
	if m.edits == nil {
		if s := m.deps.Session.Settings(); s != nil {
			copied := *s
			m.edits = &copied
		}
	}
	return m.edits
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskTypesLoadedMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
			return m, nil
		}
		m.errText = ""
		m.taskTypes = msg.types
		if m.cursor >= len(m.taskTypes) && len(m.taskTypes) > 0 {
			m.cursor = len(m.taskTypes) - 1
		}
		return m, nil

	case taskTypeSavedMsg:
		if msg.err != nil {
			err := msg.err
			return m, func() tea.Msg {
				return ToastMsg{Text: "Add task type: " + err.Error(), IsErr: true}
			}
		}
		m.taskTypes = append(m.taskTypes, *msg.taskType)
		name := msg.taskType.Name
		return m, func() tea.Msg {
			return ToastMsg{Text: fmt.Sprintf("Task type %q added", name)}
		}

	case taskTypeDeletedMsg:
		if msg.err != nil {
			err := msg.err
			return m, func() tea.Msg {
				return ToastMsg{Text: "Delete task type: " + err.Error(), IsErr: true}
			}
		}
		for i, t := range m.taskTypes {
			if t.ID == msg.id {
				m.taskTypes = append(m.taskTypes[:i], m.taskTypes[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.taskTypes) && m.cursor > 0 {
			m.cursor--
		}
		return m, func() tea.Msg {
			return ToastMsg{Text: "Task type deleted"}
		}

	case settingsSavedMsg:
		if msg.err != nil {
			err := msg.err
			return m, func() tea.Msg {
				return ToastMsg{Text: "Save settings: " + err.Error(), IsErr: true}
			}
		}
		m.deps.Session.SetSettings(msg.settings)
		m.edits = nil
		return m, func() tea.Msg {
			return ToastMsg{Text: "Settings saved"}
		}

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdd(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m settingsModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m, m.fetchTypes()

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.taskTypes)-1 {
			m.cursor++
		}

	case "a":
		m.adding = true
		m.addInput.SetValue("")
		m.addInput.Focus()
		m.colorIdx = 0
		return m, textinput.Blink

	case "d":
		if m.cursor < len(m.taskTypes) {
			id := m.taskTypes[m.cursor].ID
			deps := m.deps
			return m, func() tea.Msg {
				err := deps.API.Settings().DeleteTaskType(deps.Ctx, id)
				return taskTypeDeletedMsg{id: id, err: err}
			}
		}

	case "n":
		if s := m.settings(); s != nil {
			s.NotifyEmail = !s.NotifyEmail
		}

	case "g":
		if s := m.settings(); s != nil {
			s.NotifyDigest = !s.NotifyDigest
		}

	case "w":
		if s := m.settings(); s != nil {
			if s.WeekStart == "monday" {
				s.WeekStart = "sunday"
			} else {
				s.WeekStart = "monday"
			}
		}

	case "ctrl+s":
		s := m.settings()
		if s == nil {
			return m, nil
		}
		deps := m.deps
		in := *s
		return m, func() tea.Msg {
			updated, err := deps.API.Settings().Update(deps.Ctx, in)
			return settingsSavedMsg{settings: updated, err: err}
		}
	}
	return m, nil
}

func (m settingsModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.addInput.Blur()
		return m, nil

	case "left":
		m.colorIdx = (m.colorIdx + len(taskTypeColors) - 1) % len(taskTypeColors)
		return m, nil

	case "right":
		m.colorIdx = (m.colorIdx + 1) % len(taskTypeColors)
		return m, nil

	case "enter":
		name := m.addInput.Value()
		if name == "" {
			return m, nil
		}
		color := taskTypeColors[m.colorIdx]
		m.adding = false
		m.addInput.Blur()
		deps := m.deps
		return m, func() tea.Msg {
			created, err := deps.API.Settings().CreateTaskType(deps.Ctx, name, color)
			return taskTypeSavedMsg{taskType: created, err: err}
		}
	}

	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m settingsModel) View() string {
	view := TitleStyle.Render("Settings") + "\n"

	s := m.deps.Session.Settings()
	if m.edits != nil {
		s = m.edits
	}
	if s == nil {
		return view + DimStyle.Render("Waiting for session...")
	}

	view += fmt.Sprintf("%s · %s · %s · %s\n", s.OrgName, s.Locale, s.Timezone, s.Currency)
	view += fmt.Sprintf("Week starts: %s   Email notifications: %s   Weekly digest: %s\n",
		s.WeekStart, yesNo(s.NotifyEmail), yesNo(s.NotifyDigest))
	if m.edits != nil {
		view += DimStyle.Render("unsaved changes, ctrl+s to save") + "\n"
	}

	view += "\nTask types\n"
	if m.errText != "" {
		view += ErrorStyle.Render("Failed to load: "+m.errText) + "\n"
	}
	if len(m.taskTypes) == 0 && m.errText == "" {
		view += DimStyle.Render("  none yet") + "\n"
	}
	for i, t := range m.taskTypes {
		line := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render("■ ") + t.Name
		if i == m.cursor {
			line = SelectedItemStyle.Render("> " + line)
		} else {
			line = NormalItemStyle.Render("  " + line)
		}
		view += line + "\n"
	}

	if m.adding {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(taskTypeColors[m.colorIdx])).Render("■■■")
		view += "\nNew type: " + m.addInput.View() + "  " + swatch + DimStyle.Render("  ←/→ color") + "\n"
		view += HelpStyle.Render("enter add · esc cancel") + "\n"
	}

	return view + "\n" + HelpStyle.Render("a add type · d delete type · n email · g digest · w week start · ctrl+s save · r refresh")
}
