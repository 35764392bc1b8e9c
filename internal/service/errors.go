package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/bloglist-api/internal/service/auth"
)

// Common service errors. The API layer maps these to HTTP status codes;
// everything else a service returns wraps a domain, store or auth error.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrUnauthorized is returned when an operation requires a user and none
	// was supplied. It is the auth package's sentinel so that a single
	// errors.Is check covers both layers.
	ErrUnauthorized = auth.ErrUnauthorized
)

// ServiceError adds the failing operation to an unexpected error.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newBlogServiceError(operation string, err error) *ServiceError {
	return &ServiceError{Service: "blog", Operation: operation, Err: err}
}

func newUserServiceError(operation string, err error) *ServiceError {
	return &ServiceError{Service: "user", Operation: operation, Err: err}
}
