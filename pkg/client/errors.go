package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
	// Detail holds a structured (non-string) "detail" payload, e.g. a
	// validation error list. Empty when the backend sent a plain message.
	Detail json.RawMessage

	fromDetail bool
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Structured reports whether the backend sent a non-string detail.
func (e *HTTPError) Structured() bool {
	return len(e.Detail) > 0
}

// DetailText returns the backend's "detail" message when it was sent as
// a plain string.
func (e *HTTPError) DetailText() (string, bool) {
	if e.fromDetail {
		return e.Message, true
	}
	return "", false
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsUnauthorized is IsStatus(err, 401).
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// AsHTTPError unwraps err to an *HTTPError, or nil.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}
