package domain

import "context"

type CreateMemberRequest struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type UpdateMemberRequest struct {
	ID     string  `json:"id"`
	Name   *string `json:"name,omitempty"`
	Role   *string `json:"role,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Email  *string `json:"email,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type ListMemberFilter struct {
	ActiveOnly bool
}

type Service interface {
	GetByID(ctx context.Context, id string) (Member, error)
	List(ctx context.Context, filter ListMemberFilter) ([]Member, error)
	Create(ctx context.Context, req CreateMemberRequest) (Member, error)
	Update(ctx context.Context, req UpdateMemberRequest) (Member, error)
	Delete(ctx context.Context, id string) error
}
