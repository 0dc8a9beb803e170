package api

import (
	"context"
	"net/http"

	"github.com/top-internal/topctl/internal/domain"
)

// SettingsService accesses /settings and the task-type taxonomy beneath it.
type SettingsService struct {
	c *Client
}

// Settings returns the settings service.
func (c *Client) Settings() *SettingsService {
	return &SettingsService{c: c}
}

type settingsWire struct {
	OrgName      string `json:"orgName"`
	Locale       string `json:"locale"`
	Timezone     string `json:"timezone"`
	Currency     string `json:"currency"`
	WeekStart    string `json:"weekStart"`
	NotifyEmail  bool   `json:"notifyEmail"`
	NotifyDigest bool   `json:"notifyDigest"`
}

func (w settingsWire) toDomain() domain.OrgSettings {
	return domain.OrgSettings{
		OrgName:      w.OrgName,
		Locale:       w.Locale,
		Timezone:     w.Timezone,
		Currency:     w.Currency,
		WeekStart:    domain.FromWire(w.WeekStart),
		NotifyEmail:  w.NotifyEmail,
		NotifyDigest: w.NotifyDigest,
	}
}

// Get returns the organization settings.
func (s *SettingsService) Get(ctx context.Context) (*domain.OrgSettings, error) {
	var w settingsWire
	if err := s.c.call(ctx, http.MethodGet, "/settings", nil, &w); err != nil {
		return nil, err
	}
	settings := w.toDomain()
	return &settings, nil
}

// Update replaces the organization settings.
func (s *SettingsService) Update(ctx context.Context, in domain.OrgSettings) (*domain.OrgSettings, error) {
	body := settingsWire{
		OrgName:      in.OrgName,
		Locale:       in.Locale,
		Timezone:     in.Timezone,
		Currency:     in.Currency,
		WeekStart:    domain.ToWire(in.WeekStart),
		NotifyEmail:  in.NotifyEmail,
		NotifyDigest: in.NotifyDigest,
	}
	var w settingsWire
	if err := s.c.call(ctx, http.MethodPut, "/settings", body, &w); err != nil {
		return nil, err
	}
	settings := w.toDomain()
	return &settings, nil
}

type taskTypeWire struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TaskTypes returns the organization's task taxonomy.
func (s *SettingsService) TaskTypes(ctx context.Context) ([]domain.TaskType, error) {
	var wires []taskTypeWire
	if err := s.c.call(ctx, http.MethodGet, "/settings/task-types", nil, &wires); err != nil {
		return nil, err
	}
	types := make([]domain.TaskType, len(wires))
	for i, w := range wires {
		types[i] = domain.TaskType(w)
	}
	return types, nil
}

// CreateTaskType adds a task type.
func (s *SettingsService) CreateTaskType(ctx context.Context, name, color string) (*domain.TaskType, error) {
	body := taskTypeWire{Name: name, Color: color}
	var w taskTypeWire
	if err := s.c.call(ctx, http.MethodPost, "/settings/task-types", body, &w); err != nil {
		return nil, err
	}
	tt := domain.TaskType(w)
	return &tt, nil
}

// DeleteTaskType removes a task type.
func (s *SettingsService) DeleteTaskType(ctx context.Context, id string) error {
	return s.c.call(ctx, http.MethodDelete, "/settings/task-types/"+id, nil, nil)
}
