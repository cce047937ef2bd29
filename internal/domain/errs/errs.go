// Package errs defines the error taxonomy shared by the engines, use cases
// and the HTTP boundary. Callers branch on error kind with errors.As.
package errs

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports malformed or out-of-range input. It is returned
// before any state mutation takes place.
type ValidationError struct {
	Message string
	Issues  []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) > 0 {
		return fmt.Sprintf("%s: %v", e.Message, e.Issues)
	}
	return e.Message
}

// Validation creates a ValidationError with a plain message.
func Validation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// Validationf creates a ValidationError with a formatted message.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ValidationIssues creates a ValidationError carrying a list of issues, so
// the caller can correct all of them at once.
func ValidationIssues(msg string, issues []string) *ValidationError {
	return &ValidationError{Message: msg, Issues: issues}
}

// NotFoundError reports that a referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NotFound creates a NotFoundError for the given resource and identifier.
func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// InsufficientPaymentError is returned when a foreclosure payment does not
// cover the settlement amount. It carries the exact shortfall so the caller
// can correct and retry.
type InsufficientPaymentError struct {
	Required decimal.Decimal
	Provided decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient amount for foreclosure: required %s, provided %s",
		e.Required, e.Provided)
}

// Shortfall returns how much more is needed.
func (e *InsufficientPaymentError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Provided)
}

// InvariantError reports corrupted state detected defensively, e.g. partial
// payments exceeding a component's due amount. It indicates a bug or a prior
// corrupted write and must not be silently clamped.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Message
}

// Invariantf creates an InvariantError with a formatted message.
func Invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Message: fmt.Sprintf(format, args...)}
}
