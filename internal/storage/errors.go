package storage

import "errors"

// Storage errors shared by the staging and analytics backends.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when importing a row whose primary key
	// already exists. Staging tables are append-only between truncations.
	ErrDuplicateKey = errors.New("duplicate key: staging tables are append-only")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
