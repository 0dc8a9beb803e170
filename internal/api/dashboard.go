package api

import (
	"context"
	"net/http"

	"github.com/top-internal/topctl/internal/domain"
)

// DashboardService accesses /dashboard.
type DashboardService struct {
	c *Client
}

// Dashboard returns the dashboard service.
func (c *Client) Dashboard() *DashboardService {
	return &DashboardService{c: c}
}

type statsWire struct {
	ActiveJobs        int `json:"activeJobs"`
	OpenTasks         int `json:"openTasks"`
	PendingTimesheets int `json:"pendingTimesheets"`
	UnpaidInvoices    int `json:"unpaidInvoices"`
	MinutesThisWeek   int `json:"minutesThisWeek"`
	MinutesThisMonth  int `json:"minutesThisMonth"`
}

// Stats returns the aggregate dashboard snapshot.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var w statsWire
	if err := s.c.call(ctx, http.MethodGet, "/dashboard/stats", nil, &w); err != nil {
		return nil, err
	}
	return &domain.DashboardStats{
		ActiveJobs:        w.ActiveJobs,
		OpenTasks:         w.OpenTasks,
		PendingTimesheets: w.PendingTimesheets,
		UnpaidInvoices:    w.UnpaidInvoices,
		MinutesThisWeek:   w.MinutesThisWeek,
		MinutesThisMonth:  w.MinutesThisMonth,
	}, nil
}
