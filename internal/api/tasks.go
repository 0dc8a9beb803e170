package api

import (
	"context"
	"net/http"

	"github.com/top-internal/topctl/internal/domain"
)

// TaskService accesses /tasks, including the timer endpoints.
type TaskService struct {
	c *Client
}

// Tasks returns the task service.
func (c *Client) Tasks() *TaskService {
	return &TaskService{c: c}
}

type taskWire struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	TimerRunning   bool     `json:"timerRunning"`
	TrackedMinutes int      `json:"trackedMinutes"`
	Job            *refWire `json:"job"`
	Assignee       *refWire `json:"assignee"`
}

func (w taskWire) toDomain() domain.Task {
	return domain.Task{
		ID:             w.ID,
		Title:          w.Title,
		JobID:          w.Job.id(),
		JobName:        w.Job.name(),
		AssigneeID:     w.Assignee.id(),
		AssigneeName:   w.Assignee.name(),
		Status:         domain.FromWire(w.Status),
		Priority:       domain.FromWire(w.Priority),
		TimerRunning:   w.TimerRunning,
		TrackedMinutes: w.TrackedMinutes,
	}
}

// TaskInput carries the writable task fields.
type TaskInput struct {
	Title      string
	JobID      string
	AssigneeID string
	Status     string
	Priority   string
}

type taskWriteWire struct {
	Title      string `json:"title"`
	JobID      string `json:"jobId"`
	AssigneeID string `json:"assigneeId,omitempty"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
}

func (in TaskInput) toWire() taskWriteWire {
	return taskWriteWire{
		Title:      in.Title,
		JobID:      in.JobID,
		AssigneeID: in.AssigneeID,
		Status:     domain.ToWire(in.Status),
		Priority:   domain.ToWire(in.Priority),
	}
}

// List returns all tasks.
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	var wires []taskWire
	if err := s.c.call(ctx, http.MethodGet, "/tasks", nil, &wires); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, len(wires))
	for i, w := range wires {
		tasks[i] = w.toDomain()
	}
	return tasks, nil
}

// Create persists a new task.
func (s *TaskService) Create(ctx context.Context, in TaskInput) (*domain.Task, error) {
	var w taskWire
	if err := s.c.call(ctx, http.MethodPost, "/tasks", in.toWire(), &w); err != nil {
		return nil, err
	}
	task := w.toDomain()
	return &task, nil
}

// Update replaces a task's writable fields.
func (s *TaskService) Update(ctx context.Context, id string, in TaskInput) (*domain.Task, error) {
	var w taskWire
	if err := s.c.call(ctx, http.MethodPut, "/tasks/"+id, in.toWire(), &w); err != nil {
		return nil, err
	}
	task := w.toDomain()
	return &task, nil
}

// UpdateStatus transitions a task's status.
func (s *TaskService) UpdateStatus(ctx context.Context, id, status string) (*domain.Task, error) {
	body := map[string]string{"status": domain.ToWire(status)}
	var w taskWire
	if err := s.c.call(ctx, http.MethodPut, "/tasks/"+id+"/status", body, &w); err != nil {
		return nil, err
	}
	task := w.toDomain()
	return &task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.c.call(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

// StartTimer starts the timer on a task. The server pauses any other
// running timer for the user; the local store mirrors that optimistically
// before this call resolves.
func (s *TaskService) StartTimer(ctx context.Context, id string) error {
	return s.c.call(ctx, http.MethodPost, "/tasks/"+id+"/timer/start", nil, nil)
}

// StopTimer pauses the timer on a task.
func (s *TaskService) StopTimer(ctx context.Context, id string) error {
	return s.c.call(ctx, http.MethodPost, "/tasks/"+id+"/timer/stop", nil, nil)
}
