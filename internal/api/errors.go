package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrMissingFields is returned when hostname or user_id is absent
	ErrMissingFields = errors.New("Missing required fields")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
	// ErrUserIDRequired is returned when the analyses listing is missing its user_id filter
	ErrUserIDRequired = errors.New("user_id query parameter required")
)
