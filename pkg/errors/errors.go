package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the coarse-grained kind of an error. These are
// the only kinds that cross the API boundary; internal detail stays in
// the wrapped cause.
type ErrorType string

const (
	// Request errors
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"
	ErrorTypeInvalidArgument ErrorType = "INVALID_ARGUMENT"
	ErrorTypeNotFound        ErrorType = "NOT_FOUND"
	ErrorTypeRateLimit       ErrorType = "RATE_LIMIT"

	// Generation errors
	ErrorTypeDeadlineExceeded ErrorType = "DEADLINE_EXCEEDED"
	ErrorTypeGenerationFailed ErrorType = "GENERATION_FAILED"

	// Infrastructure errors
	ErrorTypeStorage  ErrorType = "STORAGE"
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError is the application error carried across component
// boundaries. The Message is safe to surface to clients; Cause is not.
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type, so
// errors.Is works across wrapping.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if errors.As(target, &appErr) {
		return e.Type == appErr.Type
	}
	return false
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewUnauthenticated creates an authentication error
func NewUnauthenticated(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthenticated,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewInvalidArgument creates a request validation error
func NewInvalidArgument(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidArgument,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error
func NewNotFound(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewRateLimit creates a rate limit error
func NewRateLimit(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimit,
		Message:    message,
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// NewDeadlineExceeded marks a generation request whose final attempt
// timed out after exhausting the retry budget.
func NewDeadlineExceeded(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeDeadlineExceeded,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

// NewGenerationFailed marks a generation request whose final attempt
// produced a provider error or invalid output.
func NewGenerationFailed(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeGenerationFailed,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewStorageError creates a document store error. A cache-read failure
// is never downgraded to a cache miss.
func NewStorageError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeStorage,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// GetAppError extracts an AppError from an error chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Type == t
	}
	return false
}

// Wrap wraps an error as an internal AppError unless it already is one.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}
