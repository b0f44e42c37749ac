package domain

import "errors"

var (
	ErrNotFound    = errors.New("staff_member_not_found")
	ErrInvalidID   = errors.New("invalid_staff_member_id")
	ErrInvalidName = errors.New("invalid_staff_member_name")
)
