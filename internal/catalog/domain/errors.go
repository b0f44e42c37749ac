package domain

import "errors"

var (
	ErrNotFound      = errors.New("catalog_item_not_found")
	ErrInvalidID     = errors.New("invalid_catalog_item_id")
	ErrInvalidName   = errors.New("invalid_catalog_item_name")
	ErrInvalidPrice  = errors.New("invalid_catalog_item_price")
	ErrDuplicateName = errors.New("duplicate_catalog_item_name")
)
