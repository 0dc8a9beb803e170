package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/top-internal/topctl/internal/domain"
)

func testTasks() []domain.Task {
	return []domain.Task{
		{ID: "tsk_a", Title: "Wire the office", Status: domain.TaskInProgress},
		{ID: "tsk_b", Title: "Order parts", Status: domain.TaskTodo, TimerRunning: true},
		{ID: "tsk_c", Title: "Site survey", Status: domain.TaskDone},
	}
}

func TestStartTimerMarksExactlyOneRunning(t *testing.T) {
	s := NewTasks()
	s.Set(testTasks())

	_, err := s.StartTimer("tsk_a")
	require.NoError(t, err)

	a, _ := s.Get("tsk_a")
	b, _ := s.Get("tsk_b")
	assert.True(t, a.TimerRunning)
	assert.False(t, b.TimerRunning, "previously running sibling is paused optimistically")

	running, ok := s.Running()
	require.True(t, ok)
	assert.Equal(t, "tsk_a", running.ID)
}

// TestStartTimerRollbackAsymmetry pins the compensating action: rolling back
// a failed start reverts only the started task. The sibling paused by the
// same action stays paused.
func TestStartTimerRollbackAsymmetry(t *testing.T) {
	s := NewTasks()
	s.Set(testTasks())

	rollback, err := s.StartTimer("tsk_a")
	require.NoError(t, err)
	rollback()

	a, _ := s.Get("tsk_a")
	b, _ := s.Get("tsk_b")
	assert.False(t, a.TimerRunning, "started task reverts")
	assert.False(t, b.TimerRunning, "paused sibling is not restored")

	_, ok := s.Running()
	assert.False(t, ok)
}

func TestStopTimerRollback(t *testing.T) {
	s := NewTasks()
	s.Set(testTasks())

	rollback, err := s.StopTimer("tsk_b")
	require.NoError(t, err)

	b, _ := s.Get("tsk_b")
	assert.False(t, b.TimerRunning)

	rollback()
	b, _ = s.Get("tsk_b")
	assert.True(t, b.TimerRunning)
}

func TestTimerUnknownTask(t *testing.T) {
	s := NewTasks()
	s.Set(testTasks())

	_, err := s.StartTimer("nope")
	assert.ErrorIs(t, err, ErrTaskNotFound)
	_, err = s.StopTimer("nope")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// Failed lookups leave the running state untouched.
	running, ok := s.Running()
	require.True(t, ok)
	assert.Equal(t, "tsk_b", running.ID)
}

func TestTasksUpsertAndRemove(t *testing.T) {
	s := NewTasks()
	s.Set(testTasks())

	s.Upsert(domain.Task{ID: "tsk_a", Title: "Wire the office", Status: domain.TaskDone})
	a, err := s.Get("tsk_a")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, a.Status)

	s.Upsert(domain.Task{ID: "tsk_d", Title: "Hand-over"})
	assert.Len(t, s.All(), 4)

	s.Remove("tsk_d")
	assert.Len(t, s.All(), 3)
}
