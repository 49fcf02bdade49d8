// Package apperrors defines the error taxonomy shared by storage, services and handlers.
package apperrors

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned for unknown slugs, usernames, posts and follow edges.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a unique constraint rejects a write.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrUnauthenticated is returned when an operation needs an identity and none was given.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is returned when the identity may not perform the operation.
	ErrForbidden = errors.New("permission denied")

	// ErrValidationFailed is wrapped by every ValidationError.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError carries per-field messages for a rejected form submission.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty ValidationError. Use Add to attach messages.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for field. The first message for a field wins.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
	return e
}

// Empty reports whether no field has an error.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Error implements error interface
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + e.Fields[name]
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap implements errors.Unwrap interface
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// AsValidation returns the ValidationError inside err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
