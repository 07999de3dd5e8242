package api

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a classified service failure. StatusCode is the HTTP status
// of the response, or 0 when no response was received.
type StatusError struct {
	StatusCode int
	// Message is the server-provided "message" field, if any.
	Message string
	// Err is the underlying cause for transport and decode failures.
	Err error
}

func (e *StatusError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("status %d: %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Message != "":
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("status %d", e.StatusCode)
	}
}

func (e *StatusError) Unwrap() error { return e.Err }

// StatusCode returns the status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsUnauthorized reports a rejected token.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Err == nil && se.StatusCode == http.StatusUnauthorized
}

// IsServerFault reports a 5xx response.
func IsServerFault(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Err == nil && se.StatusCode >= http.StatusInternalServerError
}
