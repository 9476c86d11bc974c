package service

import "errors"

// Common service errors. The API layer maps these to HTTP status codes.
var (
	// ErrNotOwned indicates the acting account does not own the course it is
	// trying to change. Ownerless courses are never owned by anyone.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("course is not owned by the acting account")
)

// ServiceError adds operation context to an unexpected service failure.
type ServiceError struct {
	Operation string
	Err       error
}

func (e *ServiceError) Error() string {
	return e.Operation + " failed: " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err with the name of the failing operation.
func NewServiceError(operation string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Err: err}
}
