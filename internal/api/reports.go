package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/top-internal/topctl/internal/domain"
)

// ReportService accesses /reports.
type ReportService struct {
	c *Client
}

// Reports returns the report service.
func (c *Client) Reports() *ReportService {
	return &ReportService{c: c}
}

type reportRowWire struct {
	Date     time.Time `json:"date"`
	Minutes  int       `json:"minutes"`
	Billable bool      `json:"billable"`
	User     *refWire  `json:"user"`
	Job      *refWire  `json:"job"`
	Task     *refWire  `json:"task"`
}

func (w reportRowWire) toDomain() domain.ReportRow {
	return domain.ReportRow{
		UserName: w.User.name(),
		JobName:  w.Job.name(),
		TaskName: w.Task.name(),
		Date:     w.Date,
		Minutes:  w.Minutes,
		Billable: w.Billable,
	}
}

// Time returns the tracked-time report rows for the inclusive date range.
func (s *ReportService) Time(ctx context.Context, from, to time.Time) ([]domain.ReportRow, error) {
	q := url.Values{}
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))

	var wires []reportRowWire
	if err := s.c.call(ctx, http.MethodGet, "/reports/time?"+q.Encode(), nil, &wires); err != nil {
		return nil, err
	}
	rows := make([]domain.ReportRow, len(wires))
	for i, w := range wires {
		rows[i] = w.toDomain()
	}
	return rows, nil
}
