package book

import "errors"

var (
	// Not Found
	ErrBookNotFound = errors.New("book not found")

	// Validation
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoFieldsToUpdate = errors.New("at least one of title, author or year must be provided")
)
