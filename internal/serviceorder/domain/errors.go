package domain

import "errors"

var (
	ErrNotFound          = errors.New("service_order_not_found")
	ErrLineNotFound      = errors.New("order_line_not_found")
	ErrInvalidID         = errors.New("invalid_service_order_id")
	ErrUnknownStatus     = errors.New("unknown_order_status")
	ErrIllegalTransition = errors.New("illegal_status_transition")
	ErrOrderFrozen       = errors.New("order_lines_frozen")
	ErrInvalidQuantity   = errors.New("invalid_line_quantity")
	ErrInvalidPrice      = errors.New("invalid_line_price")
	ErrNoCadence         = errors.New("customer_has_no_cadence")
)
