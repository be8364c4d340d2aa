package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message.
// Message is safe to show to clients; Err is not.
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so wrapped copies still compare equal to the sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// User errors
	ErrUserNotFound       = NewDomainError("USER_NOT_FOUND", "User not found")
	ErrEmailExists        = NewDomainError("EMAIL_EXISTS", "Email already exists")
	ErrUsernameExists     = NewDomainError("USERNAME_EXISTS", "Username already exists")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrEmployeeNotFound   = NewDomainError("EMPLOYEE_NOT_FOUND", "Employee not found")

	// Authentication errors
	ErrNoToken      = NewDomainError("NO_TOKEN", "No token provided")
	ErrInvalidToken = NewDomainError("INVALID_TOKEN", "Invalid token")

	// Input errors
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Request body must be a JSON:API document")
	ErrRateLimited  = NewDomainError("RATE_LIMITED", "Rate limit exceeded")

	// System errors
	ErrHashFailed         = NewDomainError("HASH_FAILED", "An unexpected error occurred")
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "An unexpected error occurred")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "Service temporarily unavailable")
)

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	case "INVALID_INPUT", "EMAIL_EXISTS", "USERNAME_EXISTS":
		return http.StatusBadRequest

	case "INVALID_CREDENTIALS", "NO_TOKEN":
		return http.StatusUnauthorized

	case "INVALID_TOKEN":
		return http.StatusForbidden

	case "USER_NOT_FOUND", "EMPLOYEE_NOT_FOUND":
		return http.StatusNotFound

	case "RATE_LIMITED":
		return http.StatusTooManyRequests

	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
