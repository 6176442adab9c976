package fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork is matched by every error returned from a Fetcher.
	ErrNetwork = errors.New("network error")

	// ErrEmptyBody is returned when the server answers without a body.
	ErrEmptyBody = errors.New("empty response body")

	// ErrNotFound is returned by Fixture for a URL it has no page for.
	ErrNotFound = errors.New("no page for url")
)

// NetworkError describes a failed fetch of a single URL.
type NetworkError struct {
	// URL is the absolute URL that was requested.
	URL string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}
