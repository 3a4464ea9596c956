package mealdb

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the API answers with no meals for a lookup.
var ErrNotFound = errors.New("recipe not found")

// StatusError captures non-2xx HTTP responses from the recipe API.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Body == "" {
		return fmt.Sprintf("%s request failed: status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed: status %d: %s", e.Operation, e.StatusCode, e.Body)
}
