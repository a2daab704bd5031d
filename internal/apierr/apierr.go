package apierr

import (
	"fmt"
	"net/http"
)

// APIError is the error type every handler-visible failure maps to. Message is
// the client-facing "error" string; Detail carries the underlying cause and is
// only serialized in development mode.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"error"`
	Detail  string    `json:"message,omitempty"`
	Status  int       `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validation creates a VALIDATION_ERROR (400)
func Validation(message string) *APIError {
	return &APIError{
		Code:    ErrValidation,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// BadRequest creates a BAD_REQUEST error (400)
func BadRequest(message string) *APIError {
	return &APIError{
		Code:    ErrBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NoToken creates a NO_TOKEN error (401)
func NoToken() *APIError {
	return &APIError{
		Code:    ErrNoToken,
		Message: "Access denied. No token provided.",
		Status:  http.StatusUnauthorized,
	}
}

// InvalidToken creates an INVALID_TOKEN error (401)
func InvalidToken() *APIError {
	return &APIError{
		Code:    ErrInvalidToken,
		Message: "Token is not valid.",
		Status:  http.StatusUnauthorized,
	}
}

// UserNotFound creates a USER_NOT_FOUND error (401)
func UserNotFound() *APIError {
	return &APIError{
		Code:    ErrUserNotFound,
		Message: "Token is not valid. User not found.",
		Status:  http.StatusUnauthorized,
	}
}

// AccountDeactivated creates an ACCOUNT_DEACTIVATED error (401)
func AccountDeactivated() *APIError {
	return &APIError{
		Code:    ErrAccountDeactivated,
		Message: "Account is deactivated.",
		Status:  http.StatusUnauthorized,
	}
}

// InvalidCredentials creates an INVALID_CREDENTIALS error (401)
func InvalidCredentials() *APIError {
	return &APIError{
		Code:    ErrInvalidCredentials,
		Message: "Invalid email or password.",
		Status:  http.StatusUnauthorized,
	}
}

// RateLimited creates a RATE_LIMITED error (429)
func RateLimited() *APIError {
	return &APIError{
		Code:    ErrRateLimited,
		Message: "Too many requests from this IP, please try again later.",
		Status:  http.StatusTooManyRequests,
	}
}

// RouteNotFound creates a NOT_FOUND error for unmatched routes (404)
func RouteNotFound(path string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: "Route not found",
		Detail:  fmt.Sprintf("The route %s does not exist on this server.", path),
		Status:  http.StatusNotFound,
	}
}

// Conflict creates a CONFLICT error (409)
func Conflict(message string) *APIError {
	return &APIError{
		Code:    ErrConflict,
		Message: message,
		Status:  http.StatusConflict,
	}
}

// Internal creates an INTERNAL_ERROR (500). The wrapped error is kept as
// detail and only shown to clients in development mode.
func Internal(message string, err error) *APIError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &APIError{
		Code:    ErrInternalError,
		Message: message,
		Detail:  detail,
		Status:  http.StatusInternalServerError,
	}
}
