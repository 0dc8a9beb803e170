package api

import (
	"context"
	"net/http"
	"time"

	"github.com/top-internal/topctl/internal/domain"
)

// JobService accesses /jobs.
type JobService struct {
	c *Client
}

// Jobs returns the job service.
func (c *Client) Jobs() *JobService {
	return &JobService{c: c}
}

type jobWire struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	BillingType string    `json:"billingType"`
	Priority    string    `json:"priority"`
	LayoutID    string    `json:"layoutId"`
	DueDate     time.Time `json:"dueDate"`
	Client      *refWire  `json:"client"`
}

func (w jobWire) toDomain() domain.Job {
	return domain.Job{
		ID:          w.ID,
		Name:        w.Name,
		ClientID:    w.Client.id(),
		ClientName:  w.Client.name(),
		Status:      domain.FromWire(w.Status),
		BillingType: domain.FromWire(w.BillingType),
		Priority:    domain.FromWire(w.Priority),
		LayoutID:    w.LayoutID,
		DueDate:     w.DueDate,
	}
}

// JobInput carries the writable job fields. Enums are given in display form
// and upper-cased at the boundary.
type JobInput struct {
	Name        string
	ClientID    string
	Status      string
	BillingType string
	Priority    string
	LayoutID    string
	DueDate     time.Time
}

type jobWriteWire struct {
	Name        string    `json:"name"`
	ClientID    string    `json:"clientId"`
	Status      string    `json:"status"`
	BillingType string    `json:"billingType"`
	Priority    string    `json:"priority"`
	LayoutID    string    `json:"layoutId,omitempty"`
	DueDate     time.Time `json:"dueDate"`
}

func (in JobInput) toWire() jobWriteWire {
	return jobWriteWire{
		Name:        in.Name,
		ClientID:    in.ClientID,
		Status:      domain.ToWire(in.Status),
		BillingType: domain.ToWire(in.BillingType),
		Priority:    domain.ToWire(in.Priority),
		LayoutID:    in.LayoutID,
		DueDate:     in.DueDate,
	}
}

// List returns all jobs with relations flattened and enums normalized.
func (s *JobService) List(ctx context.Context) ([]domain.Job, error) {
	var wires []jobWire
	if err := s.c.call(ctx, http.MethodGet, "/jobs", nil, &wires); err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, len(wires))
	for i, w := range wires {
		jobs[i] = w.toDomain()
	}
	return jobs, nil
}

// Create persists a new job.
func (s *JobService) Create(ctx context.Context, in JobInput) (*domain.Job, error) {
	var w jobWire
	if err := s.c.call(ctx, http.MethodPost, "/jobs", in.toWire(), &w); err != nil {
		return nil, err
	}
	job := w.toDomain()
	return &job, nil
}

// Update replaces a job's writable fields.
func (s *JobService) Update(ctx context.Context, id string, in JobInput) (*domain.Job, error) {
	var w jobWire
	if err := s.c.call(ctx, http.MethodPut, "/jobs/"+id, in.toWire(), &w); err != nil {
		return nil, err
	}
	job := w.toDomain()
	return &job, nil
}

// UpdateStatus transitions a job's status.
func (s *JobService) UpdateStatus(ctx context.Context, id, status string) (*domain.Job, error) {
	body := map[string]string{"status": domain.ToWire(status)}
	var w jobWire
	if err := s.c.call(ctx, http.MethodPut, "/jobs/"+id+"/status", body, &w); err != nil {
		return nil, err
	}
	job := w.toDomain()
	return &job, nil
}

// Delete removes a job.
func (s *JobService) Delete(ctx context.Context, id string) error {
	return s.c.call(ctx, http.MethodDelete, "/jobs/"+id, nil, nil)
}
