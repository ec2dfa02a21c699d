package apierrors

import (
	"fmt"
	"net/http"
)

// Machine-readable error codes returned to API clients
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeReasonRequired  = "DECLINE_REASON_REQUIRED"
	CodeUpstreamFailure = "REFERRAL_SERVICE_FAILURE"
	CodeInternalError   = "INTERNAL_ERROR"
)

// APIError pairs an HTTP status with a sanitized client-facing message.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// NotFound creates a 404 error
func NotFound(message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// BadRequest creates a 400 error
func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

// Unauthorized creates a 401 error
func Unauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

// BadGateway creates a 502 error for upstream referral service failures
func BadGateway(message string) *APIError {
	return &APIError{StatusCode: http.StatusBadGateway, Code: CodeUpstreamFailure, Message: message}
}

// InternalError creates a sanitized 500 error - never exposes internal details
func InternalError() *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
	}
}
