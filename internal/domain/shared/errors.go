// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages. This package has zero external
// dependencies beyond the uuid event identifiers.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
// These are the complete error taxonomy of the lifecycle engine: every
// rejected operation maps onto exactly one of these kinds.
var (
	// ErrNotFound means a referenced entity id does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrForbidden means the caller lacks ownership or role for the mutation.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized means the caller's credentials could not be verified.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidState means the operation is not permitted from the entity's
	// current state (e.g. deciding a non-pending application).
	ErrInvalidState = errors.New("invalid state")

	// ErrCapacity means a slot or application-count cap would be exceeded.
	ErrCapacity = errors.New("capacity exceeded")

	// ErrConflict means a uniqueness rule would be violated (duplicate active
	// application, duplicate accepted offer, duplicate identifier).
	ErrConflict = errors.New("conflict")

	// ErrIneligible means the eligibility policy or the listing's open
	// window/visibility refuses the student's application.
	ErrIneligible = errors.New("not eligible")

	// ErrValidation means the input itself is malformed.
	ErrValidation = errors.New("validation error")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g. "opportunity", "application", "identity"
	Op      string // Operation that failed, e.g. "Approve", "Accept"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable one-line reason
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsForbidden checks if the error is an ownership/role error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnauthorized checks if the error is a credential failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsInvalidState checks if the error is a state-machine violation.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsCapacity checks if the error is a capacity violation.
func IsCapacity(err error) bool {
	return errors.Is(err, ErrCapacity)
}

// IsConflict checks if the error is a uniqueness conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsIneligible checks if the error is an eligibility refusal.
func IsIneligible(err error) bool {
	return errors.Is(err, ErrIneligible)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
