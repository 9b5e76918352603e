package wordfreq

import "errors"

var (
	// ErrValidation is returned for unusable input such as an empty category.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when a category yields no pages or no words.
	ErrNotFound = errors.New("not found")
)
