package store

import "errors"

var (
	// ErrUnsupportedDriver is returned for a database driver other than sqlite or postgres
	ErrUnsupportedDriver = errors.New("unsupported database driver")
	// ErrNotFound is returned when no analysis record exists for the given id
	ErrNotFound = errors.New("analysis record not found")
)
