package api

import (
	"context"
	"net/http"
	"time"

	"github.com/top-internal/topctl/internal/domain"
)

// InvoiceService accesses /invoices.
type InvoiceService struct {
	c *Client
}

// Invoices returns the invoice service.
func (c *Client) Invoices() *InvoiceService {
	return &InvoiceService{c: c}
}

type invoiceWire struct {
	ID       string    `json:"id"`
	Number   string    `json:"number"`
	Status   string    `json:"status"`
	Total    float64   `json:"total"`
	Currency string    `json:"currency"`
	URL      string    `json:"url"`
	IssuedAt time.Time `json:"issuedAt"`
	DueAt    time.Time `json:"dueAt"`
	Client   *refWire  `json:"client"`
}

func (w invoiceWire) toDomain() domain.Invoice {
	return domain.Invoice{
		ID:         w.ID,
		Number:     w.Number,
		ClientID:   w.Client.id(),
		ClientName: w.Client.name(),
		Status:     domain.FromWire(w.Status),
		Total:      w.Total,
		Currency:   w.Currency,
		URL:        w.URL,
		IssuedAt:   w.IssuedAt,
		DueAt:      w.DueAt,
	}
}

// List returns all invoices.
func (s *InvoiceService) List(ctx context.Context) ([]domain.Invoice, error) {
	var wires []invoiceWire
	if err := s.c.call(ctx, http.MethodGet, "/invoices", nil, &wires); err != nil {
		return nil, err
	}
	invoices := make([]domain.Invoice, len(wires))
	for i, w := range wires {
		invoices[i] = w.toDomain()
	}
	return invoices, nil
}

// Send emails a draft invoice to its client.
func (s *InvoiceService) Send(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.transition(ctx, id, "send")
}

// MarkPaid records payment of a sent invoice.
func (s *InvoiceService) MarkPaid(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.transition(ctx, id, "paid")
}

func (s *InvoiceService) transition(ctx context.Context, id, action string) (*domain.Invoice, error) {
	var w invoiceWire
	if err := s.c.call(ctx, http.MethodPost, "/invoices/"+id+"/"+action, nil, &w); err != nil {
		return nil, err
	}
	inv := w.toDomain()
	return &inv, nil
}
