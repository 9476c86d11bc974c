package domain

import (
	"errors"
	"strings"
)

// ErrValidation is wrapped by every ValidationError so callers can test for
// the whole class with errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError collects the human-readable messages produced when an
// Account or Course violates one or more field constraints. The messages are
// safe to return to API clients verbatim.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a ValidationError holding the given messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: append([]string(nil), messages...)}
}

// Add appends a message to the error.
func (e *ValidationError) Add(message string) {
	e.Messages = append(e.Messages, message)
}

// Empty reports whether no messages were collected.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Messages) == 0
}

// ErrOrNil returns e as an error, or nil when it holds no messages.
// It avoids the typed-nil trap when returning *ValidationError as error.
func (e *ValidationError) ErrOrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Empty() {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, "; ")
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ValidationMessages extracts the messages from err if it is (or wraps) a
// ValidationError. The second result is false for any other error.
func ValidationMessages(err error) ([]string, bool) {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Empty() {
		return nil, false
	}
	return verr.Messages, true
}
