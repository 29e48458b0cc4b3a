package api

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError reports a failed backend exchange: either a non-2xx status or
// a transport failure, in which case StatusCode is 0.
type NetworkError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: HTTP error! status: %d", e.Method, e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the backend answered 404.
func (e *NetworkError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsNetworkError reports whether err is, or wraps, a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.StatusCode
	}
	return 0
}
