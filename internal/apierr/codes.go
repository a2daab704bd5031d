package apierr

import "net/http"

// ErrorCode represents the type of error
type ErrorCode string

const (
	ErrValidation         ErrorCode = "VALIDATION_ERROR"
	ErrBadRequest         ErrorCode = "BAD_REQUEST"
	ErrNoToken            ErrorCode = "NO_TOKEN"
	ErrInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrAccountDeactivated ErrorCode = "ACCOUNT_DEACTIVATED"
	ErrInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrRateLimited        ErrorCode = "RATE_LIMITED"
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrConflict           ErrorCode = "CONFLICT"
	ErrInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrServiceUnavail     ErrorCode = "SERVICE_UNAVAILABLE"
)

// StatusCodeMap maps ErrorCode to HTTP status code
var StatusCodeMap = map[ErrorCode]int{
	ErrValidation:         http.StatusBadRequest,
	ErrBadRequest:         http.StatusBadRequest,
	ErrNoToken:            http.StatusUnauthorized,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrUserNotFound:       http.StatusUnauthorized,
	ErrAccountDeactivated: http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrRateLimited:        http.StatusTooManyRequests,
	ErrNotFound:           http.StatusNotFound,
	ErrConflict:           http.StatusConflict,
	ErrInternalError:      http.StatusInternalServerError,
	ErrServiceUnavail:     http.StatusServiceUnavailable,
}

// StatusCode returns the HTTP status code for this error code
func (e ErrorCode) StatusCode() int {
	if code, ok := StatusCodeMap[e]; ok {
		return code
	}
	return http.StatusInternalServerError
}
