// Package errors defines the structured error type used throughout the Graph
// gateway. Every failure is represented as an AppError carrying an
// UPPER_SNAKE code, the HTTP status it maps to, an advisory severity, an
// optional detail map, and a fresh correlation id that is safe to echo to
// clients.
package errors

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/graphgate/graphgate/pkg/constants"
)

// AppError is the structured error record produced by the error factory.
type AppError struct {
	Code       constants.ErrorCode
	HTTPStatus int
	Severity   constants.Severity
	Message    string
	Details    map[string]string
	ID         string
	cause      error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches an underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.cause = cause
	return e
}

// WithDetail adds one key to the detail map.
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates an AppError with a fresh correlation id.
func New(code constants.ErrorCode, status int, severity constants.Severity, message string) *AppError {
	return &AppError{
		Code:       code,
		HTTPStatus: status,
		Severity:   severity,
		Message:    message,
		ID:         uuid.NewString(),
	}
}

// NewInvalidRequest reports a request that failed schema validation. The
// details map carries per-field messages.
func NewInvalidRequest(message string, details map[string]string) *AppError {
	e := New(constants.ErrCodeInvalidRequest, http.StatusBadRequest, constants.SeverityWarning, message)
	e.Details = details
	return e
}

// NewUnauthorized reports a request with no usable principal.
func NewUnauthorized(message string) *AppError {
	return New(constants.ErrCodeUnauthorized, http.StatusUnauthorized, constants.SeverityWarning, message)
}

// NewNoCredential reports that credential resolution found nothing usable.
func NewNoCredential(principal string) *AppError {
	e := New(constants.ErrCodeNoCredential, http.StatusUnauthorized, constants.SeverityWarning,
		"no valid credential available for this request")
	if principal != "" {
		e.WithDetail("principal", principal)
	}
	return e
}

// NewCredentialExpired reports that the credential selected for the call is
// no longer valid upstream.
func NewCredentialExpired(message string) *AppError {
	return New(constants.ErrCodeCredentialExpired, http.StatusUnauthorized, constants.SeverityWarning, message)
}

// NewTokenValidation reports an external token that failed validation. The
// kind must be one of the token validation error codes.
func NewTokenValidation(kind constants.ErrorCode, message string) *AppError {
	return New(kind, http.StatusBadRequest, constants.SeverityWarning, message)
}

// NewGraphFailure reports a non-2xx Graph response. Upstream 4xx keeps its
// status; upstream 5xx maps to 502.
func NewGraphFailure(status int, code, message string) *AppError {
	if status >= 500 {
		status = http.StatusBadGateway
	}
	return New(constants.ErrCodeGraphError, status, constants.SeverityWarning, message).
		WithDetail("graph_code", code)
}

// NewStorageUnavailable reports a secret store backend failure.
func NewStorageUnavailable(cause error) *AppError {
	return New(constants.ErrCodeStorageUnavailable, http.StatusServiceUnavailable, constants.SeverityError,
		"credential storage is unavailable").WithCause(cause)
}

// NewUpstreamUnreachable reports that Graph could not be resolved or reached
// at the network level.
func NewUpstreamUnreachable(cause error) *AppError {
	return New(constants.ErrCodeUpstreamUnreachable, http.StatusServiceUnavailable, constants.SeverityError,
		"Microsoft Graph is unreachable").WithCause(cause)
}

// NewNotFound reports a missing resource.
func NewNotFound(resource string) *AppError {
	return New(constants.ErrCodeNotFound, http.StatusNotFound, constants.SeverityInfo, resource+" not found")
}

// NewInternal is the catch-all for unclassified failures.
func NewInternal(cause error) *AppError {
	return New(constants.ErrCodeInternal, http.StatusInternalServerError, constants.SeverityError,
		"an internal error occurred").WithCause(cause)
}
