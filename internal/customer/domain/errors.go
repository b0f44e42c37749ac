package domain

import "errors"

var (
	ErrNotFound        = errors.New("customer_not_found")
	ErrProfileNotFound = errors.New("payment_profile_not_found")
	ErrInvalidID       = errors.New("invalid_customer_id")
	ErrInvalidName     = errors.New("invalid_customer_name")
	ErrInvalidMethod   = errors.New("invalid_payment_method")
	ErrDuplicateName   = errors.New("duplicate_customer_name")
)
