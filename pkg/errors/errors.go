package errors

import (
	"fmt"

	"github.com/blayzex/storefront-api/internal/domain"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation is returned when request validation fails
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrConfiguration is returned when a required server credential is missing
type ErrConfiguration struct {
	Message string
}

func (e *ErrConfiguration) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "server misconfiguration"
}

// ErrInvalidSignature is returned when a payment signature fails verification.
// Treated as a potential forgery attempt; no order may be persisted.
type ErrInvalidSignature struct{}

func (e *ErrInvalidSignature) Error() string {
	return "invalid payment signature"
}

// ErrGateway is returned when the payment gateway rejects or fails a request
type ErrGateway struct {
	Message string
}

func (e *ErrGateway) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "payment gateway error"
}

// ErrInvalidStateTransition is returned when an invalid status transition is attempted
type ErrInvalidStateTransition struct {
	From domain.OrderStatus
	To   domain.OrderStatus
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}
