package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("invoice_not_found")
	ErrInvalidID       = errors.New("invalid_invoice_id")
	ErrNotInvoiceable  = errors.New("order_not_invoiceable")
	ErrAlreadyInvoiced = errors.New("order_already_invoiced")
	ErrNotReopenable   = errors.New("invoice_not_reopenable")

	// ErrEmptyOrder is the not-invoiceable case where the order is
	// completed but has no lines to bill.
	ErrEmptyOrder = fmt.Errorf("%w: order_has_no_lines", ErrNotInvoiceable)
)
