package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	CustomerID   string     `json:"customer_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Notes        string     `json:"notes"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
}

type UpdateOrderRequest struct {
	ID           string     `json:"id"`
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
}

type AddLineRequest struct {
	OrderID             string          `json:"order_id"`
	CatalogID           string          `json:"catalog_id"`
	Quantity            decimal.Decimal `json:"quantity"`
	OverridePriceCents  *int64          `json:"override_price_cents,omitempty"`
	OverrideDescription *string         `json:"override_description,omitempty"`
}

type ListOrderFilter struct {
	CustomerID      string
	AssignedStaffID string
	Status          Status
	ScheduledFrom   *time.Time
	ScheduledTo     *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, filter ListOrderFilter) ([]Order, error)
	Update(ctx context.Context, req UpdateOrderRequest) (Order, error)
	Delete(ctx context.Context, id string) error

	SetStatus(ctx context.Context, id string, target Status) (Order, error)
	Assign(ctx context.Context, orderID, staffID string) (Order, error)
	Unassign(ctx context.Context, orderID string) (Order, error)

	AddLine(ctx context.Context, req AddLineRequest) (LineEntry, error)
	RemoveLine(ctx context.Context, orderID, lineID string) error

	// NextDue computes the next scheduled date from the customer's
	// cadence and last scheduled order. CreateNext materializes it as
	// a new scheduled order seeded with the customer's contracted
	// recurring lines.
	NextDue(ctx context.Context, customerID string) (*time.Time, error)
	CreateNext(ctx context.Context, customerID string) (Order, error)
}
