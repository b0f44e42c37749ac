package domain

import "context"

type CreateItemRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Unit           string `json:"unit"`
	Taxable        bool   `json:"taxable"`
}

type UpdateItemRequest struct {
	ID             string  `json:"id"`
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	UnitPriceCents *int64  `json:"unit_price_cents,omitempty"`
	Unit           *string `json:"unit,omitempty"`
	Taxable        *bool   `json:"taxable,omitempty"`
}

type ListItemFilter struct {
	ActiveOnly bool
	Name       string
}

type Service interface {
	GetByID(ctx context.Context, id string) (Item, error)
	List(ctx context.Context, filter ListItemFilter) ([]Item, error)
	Create(ctx context.Context, req CreateItemRequest) (Item, error)
	Update(ctx context.Context, req UpdateItemRequest) (Item, error)
	Deactivate(ctx context.Context, id string) (Item, error)
}
