package errors

import "errors"

var (
	ErrNotFound = errors.New("menu item not found")

	ErrInvalidID = errors.New("invalid menu item ID format")
)
