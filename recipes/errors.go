package recipes

import (
	"errors"

	"recipefinder/mealdb"
)

const (
	msgFetchRecipes    = "Failed to fetch recipes. Please try again later."
	msgFetchDetails    = "Failed to fetch recipe details"
	msgRecipeNotFound  = "Recipe not found"
	msgFetchCategories = "Failed to load categories"
)

// FetchError is a failed upstream operation together with the short message
// a user should see for it.
type FetchError struct {
	Op      string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// UserMessage returns the message to display for err, or "" when err is nil.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.UserMessage()
	}
	return "Something went wrong"
}

// IsNotFound reports whether err means the requested recipe does not exist upstream.
func IsNotFound(err error) bool {
	return errors.Is(err, mealdb.ErrNotFound)
}

// UserMessage returns the message to display for this failure.
func (e *FetchError) UserMessage() string { return e.Message }
