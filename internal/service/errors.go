package service

import (
	"fmt"
)

// Error handling principles:
// 1. Service methods return domain and store sentinel errors for expected conditions
// 2. Unexpected errors are wrapped in ServiceError with the failing operation
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes

// ServiceError wraps an error with the service and operation that produced it.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newTaskError wraps err for a task service operation.
func newTaskError(op string, err error) error {
	return &ServiceError{Service: "task", Op: op, Err: err}
}

// newUserError wraps err for a user service operation.
func newUserError(op string, err error) error {
	return &ServiceError{Service: "user", Op: op, Err: err}
}
