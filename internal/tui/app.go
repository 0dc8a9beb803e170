package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/top-internal/topctl/internal/api"
	"github.com/top-internal/topctl/internal/store"
)

// Screen identifies the top-level screens of the application.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenClients
	ScreenJobs
	ScreenTasks
	ScreenTimesheets
	ScreenUsers
	ScreenInvoices
	ScreenReports
	ScreenLayouts
	ScreenSettings

	screenCount
)

var screenTitles = map[Screen]string{
	ScreenDashboard:  "Dashboard",
	ScreenClients:    "Clients",
	ScreenJobs:       "Jobs",
	ScreenTasks:      "Tasks",
	ScreenTimesheets: "Timesheets",
	ScreenUsers:      "Users",
	ScreenInvoices:   "Invoices",
	ScreenReports:    "Reports",
	ScreenLayouts:    "Layouts",
	ScreenSettings:   "Settings",
}

// Deps bundles what every screen needs: the API gateway, the session, and
// the debug logger.
type Deps struct {
	API     *api.Client
	Session *store.Session
	Log     *zap.Logger
	Ctx     context.Context
}

// inputCapturer is implemented by screens that own the keyboard while a
// form is active; app-level navigation keys are suspended for them.
type inputCapturer interface {
	capturesInput() bool
}

// AppModel is the root Bubble Tea model. It owns the screen tab bar, the
// toast stack, and the post-login session bootstrap, and delegates
// everything else to the active screen.
type AppModel struct {
	deps Deps

	current Screen
	screens []tea.Model

	toasts   toastStack
	showHelp bool
	help     help.Model
	keymap   KeyMap

	width  int
	height int
	err    error
}

// NewAppModel creates the root model with all screens constructed.
func NewAppModel(deps Deps) AppModel {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	screens := make([]tea.Model, screenCount)
	screens[ScreenDashboard] = newDashboardModel(deps)
	screens[ScreenClients] = newClientsModel(deps)
	screens[ScreenJobs] = newJobsModel(deps)
	screens[ScreenTasks] = newTasksModel(deps)
	screens[ScreenTimesheets] = newTimesheetsModel(deps)
	screens[ScreenUsers] = newUsersModel(deps)
	screens[ScreenInvoices] = newInvoicesModel(deps)
	screens[ScreenReports] = newReportsModel(deps)
	screens[ScreenLayouts] = NewLayoutsModel(deps)
	screens[ScreenSettings] = newSettingsModel(deps)

	h := help.New()
	h.ShowAll = true

	return AppModel{
		deps:    deps,
		current: ScreenDashboard,
		screens: screens,
		keymap:  DefaultKeyMap(),
		help:    h,
	}
}

// Init starts the session bootstrap and the first screen. Without a token
// nothing is fetched; the view renders a login hint instead.
func (m AppModel) Init() tea.Cmd {
	if !m.deps.API.HasToken() {
		return nil
	}
	return tea.Batch(m.loadSession(), m.screens[m.current].Init())
}

// Update handles global concerns and delegates the rest to the active
// screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Size reaches every screen so background tabs stay laid out.
		var cmds []tea.Cmd
		for i := range m.screens {
			var cmd tea.Cmd
			m.screens[i], cmd = m.screens[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case sessionLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.deps.Session.Load(msg.user, msg.settings)
		return m, nil

	case ToastMsg:
		// Push mutates the stack, so it must not share a return with the
		// model copy.
		cmd := m.toasts.Push(msg.Text, msg.IsErr)
		return m, cmd

	case toastExpiredMsg:
		m.toasts.Expire(msg.id)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		captured := false
		if c, ok := m.screens[m.current].(inputCapturer); ok {
			captured = c.capturesInput()
		}
		if !captured {
			switch key := msg.String(); key {
			case "tab":
				return m.switchScreen((m.current + 1) % screenCount)
			case "shift+tab":
				return m.switchScreen((m.current + screenCount - 1) % screenCount)
			case "?":
				m.showHelp = !m.showHelp
				return m, nil
			default:
				// 1..9 jump to a screen directly, 0 to the last.
				if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
					target := Screen(key[0] - '1')
					if key[0] == '0' {
						target = screenCount - 1
					}
					if target < screenCount {
						return m.switchScreen(target)
					}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.screens[m.current], cmd = m.screens[m.current].Update(msg)
	return m, cmd
}

func (m AppModel) switchScreen(next Screen) (tea.Model, tea.Cmd) {
	m.current = next
	return m, tea.Batch(m.screens[next].Init(), tea.WindowSize())
}

// View renders the tab bar, the active screen, and the toast stack.
func (m AppModel) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress Ctrl+C to quit", m.err))
	}
	if !m.deps.API.HasToken() {
		return TitleStyle.Render("TOP Internal") + "\n" +
			"Not logged in. Run 'topctl login --token <token>' or set TOP_TOKEN.\n\n" +
			HelpStyle.Render("Press Ctrl+C to quit")
	}

	view := m.tabBar() + "\n" + m.screens[m.current].View()
	if toasts := m.toasts.View(); toasts != "" {
		view += "\n" + toasts
	}
	if m.showHelp {
		view += "\n" + m.helpOverlay()
	}
	return view
}

// helpOverlay renders the expanded key reference for all ten screens.
func (m AppModel) helpOverlay() string {
	if m.width > 4 {
		m.help.Width = m.width - 4
	}
	return PanelStyle.Render("Key reference\n" + m.help.View(m.keymap))
}

func (m AppModel) tabBar() string {
	bar := ""
	for s := Screen(0); s < screenCount; s++ {
		title := screenTitles[s]
		if s == m.current {
			bar += ActiveTabStyle.Render("[ "+title+" ]") + " "
		} else {
			bar += TabStyle.Render(title) + "  "
		}
	}
	return bar
}

// loadSession fetches the authenticated user and org settings once after
// startup.
func (m AppModel) loadSession() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		user, err := deps.API.Users().Me(deps.Ctx)
		if err != nil {
			return sessionLoadedMsg{err: fmt.Errorf("load session: %w", err)}
		}
		settings, err := deps.API.Settings().Get(deps.Ctx)
		if err != nil {
			return sessionLoadedMsg{err: fmt.Errorf("load settings: %w", err)}
		}
		return sessionLoadedMsg{user: user, settings: settings}
	}
}
