package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/top-internal/topctl/internal/domain"
)

func testTasks() []domain.Task {
	return []domain.Task{
		{ID: "task-1", Title: "Wireframes", JobName: "Website", Status: "in_progress"},
		{ID: "task-2", Title: "Copywriting", JobName: "Website", Status: "todo", TimerRunning: true},
		{ID: "task-3", Title: "QA pass", JobName: "Website", Status: "todo"},
	}
}

func loadedTasksModel(t *testing.T) tasksModel {
	t.Helper()
	m := newTasksModel(testDeps()).(tasksModel)
	updated, _ := m.Update(tasksLoadedMsg{tasks: testTasks()})
	model, ok := updated.(tasksModel)
	require.True(t, ok)
	return model
}

func TestTasksModel_StartTimerPausesSibling(t *testing.T) {
	m := loadedTasksModel(t)

	// Cursor starts on task-1; task-2 has the running timer.
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m = updated.(tasksModel)
	require.NotNil(t, cmd, "the start request goes out after the local flip")

	started, err := m.tasks.Get("task-1")
	require.NoError(t, err)
	assert.True(t, started.TimerRunning)

	paused, err := m.tasks.Get("task-2")
	require.NoError(t, err)
	assert.False(t, paused.TimerRunning, "only one timer runs at a time")
}

func TestTasksModel_StartFailureRunsRollback(t *testing.T) {
	m := loadedTasksModel(t)

	rolledBack := false
	updated, cmd := m.Update(timerToggledMsg{
		taskID:   "task-1",
		starting: true,
		rollback: func() { rolledBack = true },
		err:      assert.AnError,
	})
	m = updated.(tasksModel)

	assert.True(t, rolledBack, "the captured rollback undoes the optimistic flip")
	require.NotNil(t, cmd, "the failure surfaces as a toast")
	msg := cmd()
	toast, ok := msg.(ToastMsg)
	require.True(t, ok)
	assert.True(t, toast.IsErr)
}

func TestTasksModel_StopTimer(t *testing.T) {
	m := loadedTasksModel(t)
	m.table.SetCursor(1) // task-2, the one with the running timer

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	m = updated.(tasksModel)
	require.NotNil(t, cmd)

	stopped, err := m.tasks.Get("task-2")
	require.NoError(t, err)
	assert.False(t, stopped.TimerRunning)

	updated, _ = m.Update(timerToggledMsg{taskID: "task-2"})
	m = updated.(tasksModel)
	_, running := m.tasks.Running()
	assert.False(t, running)
}

func TestTasksModel_ViewShowsRunningTimer(t *testing.T) {
	m := loadedTasksModel(t)

	view := m.View()
	assert.Contains(t, view, "Tracking: Copywriting")
}
