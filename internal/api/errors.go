package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// Error labels sent in the error field of the response envelope.
const (
	LabelValidation   = "Validation error"
	LabelInvalidID    = "Invalid ID format"
	LabelUnauthorized = "Unauthorized"
	LabelNotFound     = "Not found"
	LabelConflict     = "Conflict"
	LabelUnavailable  = "Service unavailable"
	LabelInternal     = "Internal server error"
	LabelBadRequest   = "Bad request"
	LabelNotAllowed   = "Method not allowed"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Database not configured or unreachable
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	// Validation errors carry messages written for the client.
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	switch {
	case errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable"

	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return "status must be one of: pending, in-progress, completed"

	case errors.Is(err, domain.ErrInvalidEmail):
		return "email must be a valid email address"

	case errors.Is(err, domain.ErrInvalidID):
		return "Please provide a valid ID"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// GetErrorLabel returns the short label placed in the envelope's error field.
// Not found responses carry no label.
func GetErrorLabel(err error) string {
	if errors.Is(err, domain.ErrInvalidID) {
		return LabelInvalidID
	}

	switch MapErrorToStatusCode(err) {
	case http.StatusBadRequest:
		return LabelValidation
	case http.StatusUnauthorized:
		return LabelUnauthorized
	case http.StatusNotFound:
		return ""
	case http.StatusConflict:
		return LabelConflict
	case http.StatusServiceUnavailable:
		return LabelUnavailable
	default:
		return LabelInternal
	}
}

// HandleAPIError writes the error envelope for err. The status, label and
// message are derived from the error type; the raw error only reaches the log.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetErrorLabel(err), GetSafeErrorMessage(err), err)
}

// HandleDecodeError writes a 400 envelope for a request body that could not
// be decoded as JSON.
func HandleDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	label := LabelBadRequest
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		label = LabelValidation
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, label, SanitizeDecodeError(err), err)
}

// SanitizeDecodeError turns a JSON decoding error into a message naming the
// offending field without echoing the request body.
func SanitizeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field != "" {
			return fmt.Sprintf("%s has an invalid type", typeErr.Field)
		}
		return "Request body contains a value of the wrong type"
	}
	return "Request body must be valid JSON"
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fieldErr := validationErrs[0]
		return fmt.Sprintf("%s %s", fieldErr.Field(), getValidationTagMessage(fieldErr.Tag(), fieldErr.Param()))
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	// Fall back to a generic validation error message
	return LabelValidation
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "len":
		return "must be " + param + " characters long"
	case "hexadecimal":
		return "must be hexadecimal"
	default:
		return "is invalid"
	}
}
