package errors

import (
	"errors"
	"fmt"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")

	ErrServerURLRequired  = errors.New("server url is required")
	ErrInvalidServerURL   = errors.New("server url must be an absolute http(s) url")
	ErrInvalidTimeout     = errors.New("server timeout must be positive")
	ErrInvalidTimezone    = errors.New("unknown display timezone")
	ErrInvalidClampLines  = errors.New("display clamp must be at least 1")
	ErrInvalidDebounce    = errors.New("watch debounce must not be negative")
	ErrConfigAlreadyExist = errors.New("config file already exists, use --force to overwrite")

	ErrUnauthorized      = errors.New("Unauthorized") //nolint:staticcheck // user-facing notification text
	ErrHTTPStatus        = errors.New("unexpected http status")
	ErrMalformedResponse = errors.New("malformed response body")
	ErrRequestFailed     = errors.New("request failed")

	ErrUserIDRequired    = errors.New("user id is required")
	ErrNoUserSelected    = errors.New("no user selected")
	ErrInvalidTransition = errors.New("action not allowed now")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrExportPathNeeded  = errors.New("export path is required")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)

// HTTPError describes a non-2xx response other than 401
type HTTPError struct {
	Status     int
	StatusText string
}

// Error returns the notification text shown to the user
func (e *HTTPError) Error() string {
	return fmt.Sprintf("An error occurred: %d %s", e.Status, e.StatusText)
}

// Unwrap lets callers match any HTTPError with ErrHTTPStatus
func (e *HTTPError) Unwrap() error {
	return ErrHTTPStatus
}

// Notification converts a request failure into the single line shown to the user
func Notification(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrUnauthorized) {
		return ErrUnauthorized.Error()
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Error()
	}

	return fmt.Sprintf("An error occurred: %v", err)
}

// IsUserFacing reports whether err is one of the two expected request outcomes
func IsUserFacing(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrHTTPStatus)
}
