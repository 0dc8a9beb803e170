package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/top-internal/topctl/internal/api"
	"github.com/top-internal/topctl/internal/domain"
	"github.com/top-internal/topctl/internal/layout"
	"github.com/top-internal/topctl/internal/store"
)

func TestAppModel_TabCyclesScreens(t *testing.T) {
	m := NewAppModel(testDeps())
	require.Equal(t, ScreenDashboard, m.current)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(AppModel)
	assert.Equal(t, ScreenClients, m.current)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(AppModel)
	assert.Equal(t, ScreenDashboard, m.current)

	// Wrapping backwards lands on the last screen.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(AppModel)
	assert.Equal(t, ScreenSettings, m.current)
}

func TestAppModel_NumberKeysJumpToScreen(t *testing.T) {
	m := NewAppModel(testDeps())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("9")})
	m = updated.(AppModel)
	assert.Equal(t, ScreenLayouts, m.current)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")})
	m = updated.(AppModel)
	assert.Equal(t, ScreenSettings, m.current)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	m = updated.(AppModel)
	assert.Equal(t, ScreenDashboard, m.current)
}

func TestAppModel_FormsSuspendScreenSwitching(t *testing.T) {
	m := NewAppModel(testDeps())
	m.current = ScreenLayouts

	layouts, _ := m.screens[ScreenLayouts].Update(layoutsLoadedMsg{
		kind: layout.KindJobs, layouts: testLayouts(), system: testSystemFields(),
	})
	m.screens[ScreenLayouts] = layouts

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = updated.(AppModel)
	require.True(t, m.screens[ScreenLayouts].(inputCapturer).capturesInput())

	// Tab now belongs to the form, not the tab bar.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(AppModel)
	assert.Equal(t, ScreenLayouts, m.current)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(AppModel)
	require.False(t, m.screens[ScreenLayouts].(inputCapturer).capturesInput())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(AppModel)
	assert.Equal(t, ScreenSettings, m.current)
}

func TestAppModel_LoginHintWithoutToken(t *testing.T) {
	deps := Deps{
		API:     api.New("http://localhost:1", "", time.Second, nil),
		Session: store.NewSession(nil),
		Ctx:     context.Background(),
	}
	m := NewAppModel(deps)

	assert.Nil(t, m.Init(), "nothing is fetched without a token")
	assert.Contains(t, m.View(), "Not logged in")
	assert.Contains(t, m.View(), "TOP_TOKEN")
}

func TestAppModel_HelpOverlayToggle(t *testing.T) {
	m := NewAppModel(testDeps())
	assert.NotContains(t, m.View(), "Key reference")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m = updated.(AppModel)
	view := m.View()
	assert.Contains(t, view, "Key reference")
	assert.Contains(t, view, "jump to screen")
	assert.Contains(t, view, "next screen")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m = updated.(AppModel)
	assert.NotContains(t, m.View(), "Key reference")
}

func TestAppModel_SessionBootstrap(t *testing.T) {
	m := NewAppModel(testDeps())

	user := &domain.User{ID: "u-1", Name: "Dana", Role: domain.RoleManager}
	settings := &domain.OrgSettings{OrgName: "Acme", WeekStart: "monday"}
	updated, _ := m.Update(sessionLoadedMsg{user: user, settings: settings})
	m = updated.(AppModel)

	assert.True(t, m.deps.Session.IsManager())
	require.NotNil(t, m.deps.Session.Settings())
	assert.Equal(t, "Acme", m.deps.Session.Settings().OrgName)
}

func TestAppModel_ToastLifecycle(t *testing.T) {
	m := NewAppModel(testDeps())

	updated, cmd := m.Update(ToastMsg{Text: "Layout created"})
	m = updated.(AppModel)
	require.NotNil(t, cmd, "every toast schedules its own expiry")

	// The returned model must already hold the toast; the push happens
	// before the model copy is returned.
	assert.Contains(t, m.toasts.View(), "Layout created")
	assert.Contains(t, m.View(), "Layout created")

	id := m.toasts.toasts[0].id
	updated, _ = m.Update(toastExpiredMsg{id: id})
	m = updated.(AppModel)
	assert.Empty(t, m.toasts.View())
}
