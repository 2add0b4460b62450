package dnscheck

import "errors"

var (
	// ErrEmptyDomain is returned when an empty domain is provided for collection
	ErrEmptyDomain = errors.New("domain must not be empty")
)
