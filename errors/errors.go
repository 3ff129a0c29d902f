package errors

import (
	"fmt"
	"net/http"

	"github.com/WeatherVane/weather-vane-backend/logger"
)

type ErrorType string

const (
	ValidationError    ErrorType = "VALIDATION_ERROR"
	NotFoundError      ErrorType = "NOT_FOUND"
	UpstreamError      ErrorType = "UPSTREAM_ERROR"
	ConfigurationError ErrorType = "CONFIGURATION_ERROR"
	DatabaseError      ErrorType = "DATABASE_ERROR"
	ServerError        ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	// UpstreamStatus carries the provider's status code for UpstreamError.
	UpstreamStatus int   `json:"-"`
	Raw            error `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code for the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors
func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotFound(message string, detail string) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    message,
		Detail:     detail,
		HTTPStatus: http.StatusNotFound,
	}
}

// Upstream reports a non-success response from an external provider,
// carrying the provider's status code.
func Upstream(provider string, statusCode int) *AppError {
	return &AppError{
		Type:           UpstreamError,
		Message:        fmt.Sprintf("%s API error: %d", provider, statusCode),
		HTTPStatus:     http.StatusBadGateway,
		UpstreamStatus: statusCode,
	}
}

// MissingCredential reports that no active API key exists for a service.
func MissingCredential(serviceName string) *AppError {
	return &AppError{
		Type:       ConfigurationError,
		Message:    fmt.Sprintf("%s API key not found", serviceName),
		Detail:     fmt.Sprintf("no active credential for service %q", serviceName),
		HTTPStatus: http.StatusInternalServerError,
	}
}

func NewDatabaseError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case UpstreamError:
		return http.StatusBadGateway
	case ConfigurationError, DatabaseError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
