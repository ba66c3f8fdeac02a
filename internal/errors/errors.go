package errors

import (
	"errors"
	"net/http"
)

// Error taxonomy for the credential subsystem. Messages are what callers
// see verbatim; none of them leak which internal sub-case occurred.
var (
	// ErrMissingFields is returned when caller input is incomplete.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidCredentials is returned on login mismatch. The message is
	// identical whether the account is absent or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateIdentity is returned when registering an email that is
	// already taken. Deliberately generic to avoid leaking store detail.
	ErrDuplicateIdentity = errors.New("unable to register with the supplied details")
	// ErrInvalidOrExpiredToken is returned when a reset token is
	// malformed, unmatched or expired. One message for all three cases.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps taxonomy errors to HTTP errors. Anything outside the
// taxonomy collapses into a generic 500 with no internal detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrDuplicateIdentity):
		return NewHTTPError(http.StatusConflict, err.Error(), "REGISTRATION_FAILED")
	case errors.Is(err, ErrInvalidOrExpiredToken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OR_EXPIRED_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
