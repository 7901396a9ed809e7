// Package apperr holds the error kinds surfaced to API callers.
package apperr

import "errors"

var (
	ErrUnauthenticated   = errors.New("unauthorized access")
	ErrInvalidCredential = errors.New("forbidden access")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrGateway           = errors.New("payment gateway error")
	ErrValidation        = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
)
