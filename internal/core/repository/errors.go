package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert or update would violate a
	// store-enforced uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")
)
