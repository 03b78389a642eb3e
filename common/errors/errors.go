package errors

import (
	"fmt"
	"net/http"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds a local-validation failure (never reached the network).
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Upstream builds an upstream-unavailable failure wrapping the cause.
func Upstream(message string, err error) *Error {
	return New(http.StatusBadGateway, message, err)
}

// IsValidation reports whether err is a local-validation failure.
func IsValidation(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == http.StatusBadRequest
}

// Business errors surfaced by the storefront
var (
	ErrEmptyCart   = Validation("Cart is empty")
	ErrInvalidItem = Validation("Invalid cart item")
)

// Code returns the HTTP status to surface for err, falling back to 500 for
// untyped errors.
func Code(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return http.StatusInternalServerError
}
