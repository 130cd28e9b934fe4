// Package errors provides structured error types for the storefront API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the request failure taxonomy.
var (
	ErrNotConfigured      = errors.New("admin API key not configured")
	ErrInvalidCredential  = errors.New("invalid admin API key or token")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
)

// ValidationError reports a request payload that failed validation before
// any side effect took place.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is makes every ValidationError match ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid creates a new validation error.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StoreError wraps a failure of the document store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err with the failed operation. A nil err stays nil and
// ErrNotFound passes through untouched.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// StatusCode maps err to the HTTP status it is reported with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotConfigured):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidCredential), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrMissingCredentials), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text that is safe to show to API clients. Store
// failures and unknown errors collapse to a short description.
func Message(err error) string {
	var ve *ValidationError
	var se *StoreError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &se):
		return "failed to " + se.Op
	case errors.Is(err, ErrNotConfigured),
		errors.Is(err, ErrInvalidCredential),
		errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrNotFound):
		return err.Error()
	default:
		return "an internal error occurred"
	}
}
