// Package domain defines the bulk action contract: one action applied
// independently to a selection of service orders.
package domain

import (
	"context"
	"errors"

	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
)

type ActionType string

const (
	ActionSetStatus   ActionType = "set_status"
	ActionAssignStaff ActionType = "assign_staff"
	ActionDelete      ActionType = "delete"
)

// Action is the operation to apply to every selected order.
type Action struct {
	Type         ActionType      `json:"type"`
	TargetStatus sodomain.Status `json:"target_status,omitempty"`
	StaffID      string          `json:"staff_id,omitempty"`
}

// ItemResult reports the outcome for a single order. Error carries the
// stable error code when OK is false.
type ItemResult struct {
	OrderID string `json:"order_id"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// Result is the per-item outcome list for one bulk call. The batch
// itself never fails because an item does.
type Result struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

type Service interface {
	Apply(ctx context.Context, orderIDs []string, action Action) (Result, error)
}

var (
	ErrInvalidAction  = errors.New("invalid_bulk_action")
	ErrEmptySelection = errors.New("empty_bulk_selection")
)
