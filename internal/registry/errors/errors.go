package errors

import "errors"

var (
	ErrNotFound = errors.New("resource not found")

	// ErrStatusChanged means the conditional status update matched no document:
	// either the resource is gone or its status moved under us.
	ErrStatusChanged = errors.New("resource status does not match expected state")
)
