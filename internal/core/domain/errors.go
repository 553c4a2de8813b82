package domain

import "errors"

var (
	// ErrValidation marks input rejected before any mutation happens.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup for a cat or encounter that is not in
	// the collection.
	ErrNotFound = errors.New("not found")
)
