package store

import (
	"errors"

	"github.com/top-internal/topctl/internal/domain"
)

// ErrTaskNotFound indicates the requested task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// Tasks holds the task list and implements the optimistic timer toggles.
// Starting and stopping timers are the only operations in the application
// that mutate local state ahead of server confirmation.
type Tasks struct {
	tasks []domain.Task
}

// NewTasks creates an empty task store.
func NewTasks() *Tasks {
	return &Tasks{}
}

// Set replaces the stored tasks from a list response.
func (s *Tasks) Set(tasks []domain.Task) {
	s.tasks = append([]domain.Task(nil), tasks...)
}

// All returns a copy of the stored tasks.
func (s *Tasks) All() []domain.Task {
	return append([]domain.Task(nil), s.tasks...)
}

// Get returns the task with the given id.
func (s *Tasks) Get(id string) (domain.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, ErrTaskNotFound
}

// Upsert inserts or replaces a task after a successful mutation.
func (s *Tasks) Upsert(t domain.Task) {
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return
		}
	}
	s.tasks = append(s.tasks, t)
}

// Remove deletes a task.
func (s *Tasks) Remove(id string) {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// StartTimer optimistically marks exactly one task as running before the
// server confirms. It returns a rollback function that reverts only the
// started task's running flag: a sibling paused by the same action stays
// paused even if the request fails, matching the product's behavior.
func (s *Tasks) StartTimer(id string) (rollback func(), err error) {
	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	for i := range s.tasks {
		s.tasks[i].TimerRunning = i == idx
	}
	return func() {
		for i := range s.tasks {
			if s.tasks[i].ID == id {
				s.tasks[i].TimerRunning = false
			}
		}
	}, nil
}

// StopTimer optimistically marks a task as not running. The rollback
// restores the running flag if the server rejects the stop.
func (s *Tasks) StopTimer(id string) (rollback func(), err error) {
	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	s.tasks[idx].TimerRunning = false
	return func() {
		for i := range s.tasks {
			if s.tasks[i].ID == id {
				s.tasks[i].TimerRunning = true
			}
		}
	}, nil
}

// Running returns the task whose timer is currently running, if any.
func (s *Tasks) Running() (domain.Task, bool) {
	for _, t := range s.tasks {
		if t.TimerRunning {
			return t, true
		}
	}
	return domain.Task{}, false
}
