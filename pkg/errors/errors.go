package errors

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrBadRequest         = errors.New("bad request")
	ErrConflict           = errors.New("conflict")
	ErrInternalServer     = errors.New("internal server error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrListingNotFound    = errors.New("listing not found")
	ErrRoomNotFound       = errors.New("chat room not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUploadFailed       = errors.New("image upload failed")
)

// APIError carries a client-facing message and the HTTP status it maps to.
// Err is the sentinel it wraps, so errors.Is works against the vars above.
type APIError struct {
	Message string `json:"message"`
	Code    int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NewAPIError(message string, code int) *APIError {
	return &APIError{
		Message: message,
		Code:    code,
		Err:     sentinelForCode(code),
	}
}

func BadRequest(message string) error   { return NewAPIError(message, http.StatusBadRequest) }
func Unauthorized(message string) error { return NewAPIError(message, http.StatusUnauthorized) }
func Forbidden(message string) error    { return NewAPIError(message, http.StatusForbidden) }
func NotFound(message string) error     { return NewAPIError(message, http.StatusNotFound) }
func Conflict(message string) error     { return NewAPIError(message, http.StatusConflict) }
func Internal(message string) error     { return NewAPIError(message, http.StatusInternalServerError) }

// Wrap attaches a client-facing message to a sentinel such as ErrUploadFailed.
func Wrap(sentinel error, message string) error {
	return &APIError{
		Message: message,
		Code:    HTTPStatusFromError(sentinel),
		Err:     sentinel,
	}
}

func sentinelForCode(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrInternalServer
	}
}

func HTTPStatusFromError(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return apiErr.Code
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrListingNotFound),
		errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrUserAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text safe to show a client. Anything that is not an
// APIError and maps to 5xx collapses to a generic message.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if HTTPStatusFromError(err) >= http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
