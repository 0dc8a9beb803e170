package api

import (
	"context"
	"net/http"

	"github.com/top-internal/topctl/internal/domain"
)

// ClientService accesses /clients.
type ClientService struct {
	c *Client
}

// Clients returns the client service.
func (c *Client) Clients() *ClientService {
	return &ClientService{c: c}
}

type clientWire struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

func (w clientWire) toDomain() domain.Client {
	return domain.Client{
		ID:     w.ID,
		Name:   w.Name,
		Email:  w.Email,
		Phone:  w.Phone,
		Status: domain.FromWire(w.Status),
	}
}

// ClientInput carries the writable client fields.
type ClientInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// List returns all clients.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	var wires []clientWire
	if err := s.c.call(ctx, http.MethodGet, "/clients", nil, &wires); err != nil {
		return nil, err
	}
	clients := make([]domain.Client, len(wires))
	for i, w := range wires {
		clients[i] = w.toDomain()
	}
	return clients, nil
}

// Create persists a new client.
func (s *ClientService) Create(ctx context.Context, in ClientInput) (*domain.Client, error) {
	var w clientWire
	if err := s.c.call(ctx, http.MethodPost, "/clients", in, &w); err != nil {
		return nil, err
	}
	client := w.toDomain()
	return &client, nil
}

// Update replaces a client's writable fields.
func (s *ClientService) Update(ctx context.Context, id string, in ClientInput) (*domain.Client, error) {
	var w clientWire
	if err := s.c.call(ctx, http.MethodPut, "/clients/"+id, in, &w); err != nil {
		return nil, err
	}
	client := w.toDomain()
	return &client, nil
}

// Delete removes a client.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.c.call(ctx, http.MethodDelete, "/clients/"+id, nil, nil)
}
