package domain

import "errors"

var (
	// ErrInvalidDomain is returned when the input cannot be parsed as a registrable domain
	ErrInvalidDomain = errors.New("invalid domain format")
	// ErrInvalidURL is returned when a URL-shaped input cannot be parsed
	ErrInvalidURL = errors.New("invalid URL format")
)
