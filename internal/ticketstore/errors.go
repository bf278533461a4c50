package ticketstore

import (
	"errors"
	"fmt"
)

// APIError reports a non-2xx answer from the ticket store. Callers treat
// every failure of an operation the same way; the fields exist for logs.
type APIError struct {
	Op         string
	Method     string
	Path       string
	StatusCode int
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s returned status %d (request %s)",
		e.Method, e.Path, e.StatusCode, e.RequestID)
}

// StatusCode extracts the HTTP status from err, or 0 when err did not come
// from a store response.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
