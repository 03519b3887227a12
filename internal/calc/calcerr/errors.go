// Package calcerr defines the error taxonomy shared by every calculation
// package. Inputs that fail validation before any arithmetic wrap
// ErrValidation; otherwise-valid inputs that drive a formula into an
// indeterminate result wrap ErrComputation. Anything else is an internal
// error and maps to a 500 at the HTTP boundary.
package calcerr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation  = errors.New("invalid input")
	ErrComputation = errors.New("computation failed")
	ErrInternal    = errors.New("internal error")
)

// Validationf builds a ValidationError with a human-readable reason.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Computationf builds a ComputationError with a human-readable reason.
func Computationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrComputation, fmt.Sprintf(format, args...))
}

// Status maps a calculation error to the HTTP status the boundary should
// answer with. Validation and computation failures are the caller's fault.
func Status(err error) int {
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrComputation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
