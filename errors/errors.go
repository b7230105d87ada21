package errors

import (
	stderrors "errors"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeProviderFailure  = "PROVIDER_FAILURE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// APIError is the error shape returned by the resource layer and written to clients.
type APIError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(status int, code, message string) *APIError {
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// Validation reports a single offending field, shaped as {field: [message]}.
func Validation(field, message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    ErrCodeInvalidInput,
		Message: field + ": " + message,
		Details: map[string][]string{field: {message}},
	}
}

// FieldErrors collects per-field validation messages.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Err returns nil when nothing was collected.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(f[field], " "))
	}
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    ErrCodeInvalidInput,
		Message: strings.Join(parts, "; "),
		Details: map[string][]string(f),
	}
}

// Predefined errors
var (
	ErrUnauthenticated  = NewAPIError(http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication credentials were not provided.")
	ErrInvalidToken     = NewAPIError(http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid token.")
	ErrForbidden        = NewAPIError(http.StatusForbidden, ErrCodeForbidden, "You do not have permission to perform this action.")
	ErrNotFound         = NewAPIError(http.StatusNotFound, ErrCodeNotFound, "Not found.")
	ErrInvalidPage      = NewAPIError(http.StatusNotFound, ErrCodeNotFound, "Invalid page.")
	ErrMethodNotAllowed = NewAPIError(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed.")
	ErrInvalidInput     = NewAPIError(http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body")
	ErrInternalError    = NewAPIError(http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
)

// Is reports whether err is, or wraps, the given APIError code.
func Is(err error, code string) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr) && apiErr.Code == code
}

// Respond writes err to the client. Anything that is not an *APIError becomes a 500.
func Respond(c *gin.Context, err error) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, apiErr)
		return
	}
	log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrInternalError)
}

// MethodNotAllowed answers 405 for verbs a route does not accept.
func MethodNotAllowed(c *gin.Context) {
	Respond(c, ErrMethodNotAllowed)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = ErrInvalidInput.Message
	}
	Respond(c, NewAPIError(http.StatusBadRequest, ErrCodeInvalidInput, message))
}
