package todoist

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ConfigError indicates that the server is missing configuration it needs to
// reach the Todoist API, typically the API token.
type ConfigError struct {
	// Msg describes what is missing and how to fix it
	Msg string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return e.Msg
}

// HTTPError represents a non-2xx response from the Todoist API.
// The response body is intentionally not retained; callers map the status
// code to a user-facing message.
type HTTPError struct {
	// StatusCode is the HTTP status returned by the API
	StatusCode int

	// Method and Path identify the failed request
	Method string
	Path   string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("todoist: %s /%s returned status %d", e.Method, e.Path, e.StatusCode)
}

// DecodeError indicates that a 2xx response body could not be decoded as JSON.
type DecodeError struct {
	// Path is the request path whose response failed to decode
	Path string

	// Err is the underlying decoding error
	Err error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("todoist: invalid JSON in response from /%s: %v", e.Path, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *DecodeError) Unwrap() error {
	return e.Err
}

var (
	errNotObject = errors.New("expected a JSON object")
	errNotArray  = errors.New("expected a JSON array")
)

// IsTimeout reports whether err was caused by the per-request timeout or a
// network-level timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
