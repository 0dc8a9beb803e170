package api

import (
	"context"
	"net/http"
	"time"

	"github.com/top-internal/topctl/internal/domain"
)

// TimesheetService accesses /timesheets.
type TimesheetService struct {
	c *Client
}

// Timesheets returns the timesheet service.
func (c *Client) Timesheets() *TimesheetService {
	return &TimesheetService{c: c}
}

type timesheetWire struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Minutes int       `json:"minutes"`
	Status  string    `json:"status"`
	Notes   string    `json:"notes"`
	User    *refWire  `json:"user"`
	Task    *refWire  `json:"task"`
}

func (w timesheetWire) toDomain() domain.Timesheet {
	return domain.Timesheet{
		ID:        w.ID,
		UserID:    w.User.id(),
		UserName:  w.User.name(),
		TaskID:    w.Task.id(),
		TaskTitle: w.Task.name(),
		Date:      w.Date,
		Minutes:   w.Minutes,
		Status:    domain.FromWire(w.Status),
		Notes:     w.Notes,
	}
}

// TimesheetInput carries the writable timesheet fields.
type TimesheetInput struct {
	TaskID  string    `json:"taskId"`
	Date    time.Time `json:"date"`
	Minutes int       `json:"minutes"`
	Notes   string    `json:"notes,omitempty"`
}

func wiresToTimesheets(wires []timesheetWire) []domain.Timesheet {
	sheets := make([]domain.Timesheet, len(wires))
	for i, w := range wires {
		sheets[i] = w.toDomain()
	}
	return sheets
}

// List returns the caller's timesheets.
func (s *TimesheetService) List(ctx context.Context) ([]domain.Timesheet, error) {
	var wires []timesheetWire
	if err := s.c.call(ctx, http.MethodGet, "/timesheets", nil, &wires); err != nil {
		return nil, err
	}
	return wiresToTimesheets(wires), nil
}

// Pending returns timesheets awaiting approval. The endpoint answers 403 for
// non-manager roles; callers inspect the error with IsStatus and treat that
// case as an empty list.
func (s *TimesheetService) Pending(ctx context.Context) ([]domain.Timesheet, error) {
	var wires []timesheetWire
	if err := s.c.call(ctx, http.MethodGet, "/timesheets/pending", nil, &wires); err != nil {
		return nil, err
	}
	return wiresToTimesheets(wires), nil
}

// Create records a new timesheet entry.
func (s *TimesheetService) Create(ctx context.Context, in TimesheetInput) (*domain.Timesheet, error) {
	var w timesheetWire
	if err := s.c.call(ctx, http.MethodPost, "/timesheets", in, &w); err != nil {
		return nil, err
	}
	sheet := w.toDomain()
	return &sheet, nil
}

// Delete removes a draft timesheet entry.
func (s *TimesheetService) Delete(ctx context.Context, id string) error {
	return s.c.call(ctx, http.MethodDelete, "/timesheets/"+id, nil, nil)
}

// Submit moves a draft entry into review.
func (s *TimesheetService) Submit(ctx context.Context, id string) (*domain.Timesheet, error) {
	return s.transition(ctx, id, "submit")
}

// Approve accepts a submitted entry. Manager-only.
func (s *TimesheetService) Approve(ctx context.Context, id string) (*domain.Timesheet, error) {
	return s.transition(ctx, id, "approve")
}

// Reject returns a submitted entry to its owner. Manager-only.
func (s *TimesheetService) Reject(ctx context.Context, id string) (*domain.Timesheet, error) {
	return s.transition(ctx, id, "reject")
}

func (s *TimesheetService) transition(ctx context.Context, id, action string) (*domain.Timesheet, error) {
	var w timesheetWire
	if err := s.c.call(ctx, http.MethodPost, "/timesheets/"+id+"/"+action, nil, &w); err != nil {
		return nil, err
	}
	sheet := w.toDomain()
	return &sheet, nil
}
