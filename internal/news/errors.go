package news

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by every fetch when no credential is configured.
var ErrMissingAPIKey = errors.New("news API key not configured")

// HTTPError wraps a non-success HTTP response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// APIError is an error reported inside a 2xx response body.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("news API error %s: %s", e.Code, e.Message)
}
