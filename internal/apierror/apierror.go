// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "net/http"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Status is transport metadata and never serialized.
type APIError struct {
	Status int               `json:"-"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string { return e.Detail }

func New(msg string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Detail: msg}
}

// BadRequest marks a malformed request (missing query parameter, bad id).
func BadRequest(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Detail: msg}
}

// NotFound marks an unknown record id.
func NotFound(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Detail: msg}
}

// Conflict marks a referential conflict: the record is still referenced and
// deleting it would lose data.
func Conflict(msg string) *APIError {
	return &APIError{Status: http.StatusConflict, Detail: msg}
}

// Validation wraps field-level errors (duplicate keys, out-of-range values).
// No mutation has been performed when one of these is returned.
func Validation(fields map[string]string) *APIError {
	return &APIError{
		Status: http.StatusUnprocessableEntity,
		Detail: "Error de validacion",
		Fields: fields,
	}
}

// Duplicate reports a uniqueness violation on a single field. Both the
// pre-check in the service layer and a unique-constraint violation surfaced
// by the store translate to this same error.
func Duplicate(field, msg string) *APIError {
	return Validation(map[string]string{field: msg})
}

// InvalidRange reports an out-of-range value on a single field.
func InvalidRange(field, msg string) *APIError {
	return Validation(map[string]string{field: msg})
}
