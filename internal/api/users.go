package api

import (
	"context"
	"net/http"

	"github.com/top-internal/topctl/internal/domain"
)

// UserService accesses /users.
type UserService struct {
	c *Client
}

// Users returns the user service.
func (c *Client) Users() *UserService {
	return &UserService{c: c}
}

type userWire struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

func (w userWire) toDomain() domain.User {
	return domain.User{
		ID:     w.ID,
		Name:   w.Name,
		Email:  w.Email,
		Role:   domain.FromWire(w.Role),
		Active: w.Active,
	}
}

// UserInput carries the writable user fields. Role is given in display form.
type UserInput struct {
	Name  string
	Email string
	Role  string
}

type userWriteWire struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Me returns the authenticated user.
func (s *UserService) Me(ctx context.Context) (*domain.User, error) {
	var w userWire
	if err := s.c.call(ctx, http.MethodGet, "/users/me", nil, &w); err != nil {
		return nil, err
	}
	user := w.toDomain()
	return &user, nil
}

// List returns all users of the organization.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	var wires []userWire
	if err := s.c.call(ctx, http.MethodGet, "/users", nil, &wires); err != nil {
		return nil, err
	}
	users := make([]domain.User, len(wires))
	for i, w := range wires {
		users[i] = w.toDomain()
	}
	return users, nil
}

// Create invites a new user.
func (s *UserService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	body := userWriteWire{Name: in.Name, Email: in.Email, Role: domain.ToWire(in.Role)}
	var w userWire
	if err := s.c.call(ctx, http.MethodPost, "/users", body, &w); err != nil {
		return nil, err
	}
	user := w.toDomain()
	return &user, nil
}

// Update replaces a user's writable fields.
func (s *UserService) Update(ctx context.Context, id string, in UserInput) (*domain.User, error) {
	body := userWriteWire{Name: in.Name, Email: in.Email, Role: domain.ToWire(in.Role)}
	var w userWire
	if err := s.c.call(ctx, http.MethodPut, "/users/"+id, body, &w); err != nil {
		return nil, err
	}
	user := w.toDomain()
	return &user, nil
}

// Deactivate disables a user account.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	return s.c.call(ctx, http.MethodDelete, "/users/"+id, nil, nil)
}
