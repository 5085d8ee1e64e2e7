package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError is the structured error body returned by the read-only
// reporting API.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// NewAPIError creates an APIError with the given parameters.
func NewAPIError(statusCode int, errorCode, message string) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message}
}

// Predefined API errors for the reporting surface.
var (
	ErrTableNotFound = NewAPIError(http.StatusNotFound, "TABLE_NOT_FOUND", "No such table")
	ErrNoRun         = NewAPIError(http.StatusServiceUnavailable, "NO_RUN", "No pipeline run has completed yet")
	ErrInternal      = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)
