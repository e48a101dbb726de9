package gw2

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// API error classes. An *APIError matches these with errors.Is according to its status.
var (
	ErrNotFound   = errors.New("gw2: not found")
	ErrInvalidKey = errors.New("gw2: invalid API key")
	ErrForbidden  = errors.New("gw2: access denied")
	ErrInactive   = errors.New("gw2: API unavailable")
	ErrBadRequest = errors.New("gw2: bad request")
)

// ErrNoKey is returned when the invoking user has not registered a key
var ErrNoKey = errors.New("gw2: no API key registered")

// APIError is a non-success response from the API
type APIError struct {
	Endpoint   string
	StatusCode int
	Text       string
}

func (e *APIError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("gw2: %s returned %d: %s", e.Endpoint, e.StatusCode, e.Text)
	}
	return fmt.Sprintf("gw2: %s returned %d", e.Endpoint, e.StatusCode)
}

// Is classifies the response status into one of the sentinel errors
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrInvalidKey:
		return e.StatusCode == http.StatusUnauthorized ||
			(e.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(e.Text), "invalid key"))
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrInactive:
		return e.StatusCode >= http.StatusInternalServerError
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// MissingScopesError is returned when a key lacks permissions an endpoint requires
type MissingScopesError struct {
	Missing []string
}

func (e *MissingScopesError) Error() string {
	return "gw2: API key is missing permissions: " + strings.Join(e.Missing, ", ")
}
