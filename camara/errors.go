package camara

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid camara configuration")
	// ErrClientClosed is returned by calls made after Close
	ErrClientClosed = errors.New("camara client is closed")
)

// maxErrorBody limits how much of a failing response body is kept on an HTTPError.
const maxErrorBody = 4096

// HTTPError is returned for a non-2xx response. 4xx responses are returned
// after the first attempt, 5xx responses once retries are exhausted.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
	Attempts   int
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("camara API error: GET %s: status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Attempts > 1 {
		msg += fmt.Sprintf(" after %d attempts", e.Attempts)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsNotFound checks if the error indicates a not found response
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsClientError reports a 4xx status, caused by a bad id or parameter.
func (e *HTTPError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError reports a 5xx status.
func (e *HTTPError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ConnectionError means the API could not be reached after all attempts.
type ConnectionError struct {
	URL      string
	Attempts int
	Err      error
}

// Error describes the unreachable URL and the attempts made.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("camara: connection to %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TimeoutError means every attempt ran past the configured timeout.
type TimeoutError struct {
	URL      string
	Attempts int
	Err      error
}

// Error describes the URL that timed out and the attempts made.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("camara: request to %s timed out after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

// Unwrap returns the underlying deadline error.
func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// DecodeError means the response body was not the JSON envelope the API documents.
type DecodeError struct {
	URL    string
	Reason string
	Err    error
}

// Error describes the URL and why its body was rejected.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("camara: decoding response from %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("camara: decoding response from %s: %s", e.URL, e.Reason)
}

// Unwrap returns the underlying JSON error, if any.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is, or wraps, a 404 HTTPError.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.IsNotFound()
}

// IsTransient reports whether err is a failure that could succeed on a later call.
func IsTransient(err error) bool {
	var (
		httpErr    *HTTPError
		connErr    *ConnectionError
		timeoutErr *TimeoutError
	)
	switch {
	case errors.As(err, &connErr), errors.As(err, &timeoutErr):
		return true
	case errors.As(err, &httpErr):
		return httpErr.IsServerError()
	default:
		return false
	}
}
