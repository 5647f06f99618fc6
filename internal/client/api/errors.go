package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	pkgapi "github.com/salafuz/admin-panel/pkg/api"
)

var (
	// ErrNetwork wraps transport failures: connection errors and timeouts
	ErrNetwork = errors.New("network error")

	// ErrSessionExpired is returned when a 401 could not be recovered by refreshing the session
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// HTTPError is returned for every response outside the 2xx range.
// It carries the original status and payload.
type HTTPError struct {
	Fields     map[string]string
	Message    string
	Body       []byte
	StatusCode int
}

func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{StatusCode: status, Body: body}

	var errResp pkgapi.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		e.Fields = errResp.Errors
		e.Message = errResp.Message
		if e.Message == "" {
			e.Message = errResp.Error
		}
	}

	return e
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, string(e.Body))
}

// IsUnauthorized reports whether err is an HTTP 401
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an *HTTPError
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// Message returns the human readable message from the remote error payload, if any
func Message(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return ""
}

// FieldErrors returns the validation field map from the remote error payload, if any
func FieldErrors(err error) map[string]string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Fields
	}
	return nil
}
