package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/top-internal/topctl/internal/layout"
)

// LayoutService implements the layout persistence contract for one entity
// kind. Jobs and tasks do not share storage but share identical rules, so
// the same service type serves both namespaces.
type LayoutService struct {
	c    *Client
	kind layout.EntityKind
}

// Layouts returns the layout service for an entity kind.
func (c *Client) Layouts(kind layout.EntityKind) *LayoutService {
	return &LayoutService{c: c, kind: kind}
}

// Kind returns the entity kind this service operates on.
func (s *LayoutService) Kind() layout.EntityKind {
	return s.kind
}

func (s *LayoutService) path(parts ...string) string {
	p := "/layouts/" + string(s.kind)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// List returns all layouts for the kind plus the canonical read-only system
// field set the platform provisions for it.
func (s *LayoutService) List(ctx context.Context) ([]layout.Layout, []layout.Field, error) {
	env, err := s.c.do(ctx, http.MethodGet, s.path(), nil)
	if err != nil {
		return nil, nil, err
	}

	var layouts []layout.Layout
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &layouts); err != nil {
			return nil, nil, fmt.Errorf("decode layouts: %w", err)
		}
	}
	var system []layout.Field
	if len(env.SystemFields) > 0 {
		if err := json.Unmarshal(env.SystemFields, &system); err != nil {
			return nil, nil, fmt.Errorf("decode system fields: %w", err)
		}
	}
	return layouts, system, nil
}

type layoutCreateRequest struct {
	Name         string         `json:"name"`
	CustomFields []layout.Field `json:"customFields"`
	IsDefault    bool           `json:"isDefault"`
}

// Create persists a new layout. The caller supplies only the custom fields;
// the system set is attached server-side. When isDefault is true the server
// un-defaults every sibling as part of the same operation.
func (s *LayoutService) Create(ctx context.Context, name string, customFields []layout.Field, isDefault bool) (*layout.Layout, error) {
	if customFields == nil {
		customFields = []layout.Field{}
	}
	var created layout.Layout
	err := s.c.call(ctx, http.MethodPost, s.path(), layoutCreateRequest{
		Name:         name,
		CustomFields: customFields,
		IsDefault:    isDefault,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// LayoutPatch is a partial update at the layout level. Nil members are left
// untouched; a non-nil CustomFields replaces the entire custom-field list.
// System fields are never supplied: the server re-attaches them.
type LayoutPatch struct {
	Name         *string         `json:"name,omitempty"`
	CustomFields *[]layout.Field `json:"customFields,omitempty"`
	IsDefault    *bool           `json:"isDefault,omitempty"`
}

// Update applies a partial update to a layout. Unknown id yields a 404
// StatusError.
func (s *LayoutService) Update(ctx context.Context, id string, patch LayoutPatch) (*layout.Layout, error) {
	var updated layout.Layout
	if err := s.c.call(ctx, http.MethodPut, s.path(id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a layout. The server refuses to delete the last layout of a
// kind; the UI additionally hides the affordance when only one exists.
func (s *LayoutService) Delete(ctx context.Context, id string) error {
	return s.c.call(ctx, http.MethodDelete, s.path(id), nil, nil)
}

// SetDefault atomically marks id as the kind's default and un-defaults all
// siblings. Returns the refreshed layout list so callers can mirror the
// server state without a second fetch.
func (s *LayoutService) SetDefault(ctx context.Context, id string) ([]layout.Layout, error) {
	var layouts []layout.Layout
	if err := s.c.call(ctx, http.MethodPost, s.path(id, "default"), nil, &layouts); err != nil {
		return nil, err
	}
	return layouts, nil
}
