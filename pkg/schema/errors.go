package schema

import "errors"

var (
	// ErrUnknownSchema indicates a schema ID with no registered rule table.
	// This is a programmer error, not a validation failure.
	ErrUnknownSchema = errors.New("schema.errors.unknown_schema")

	ErrInvalidBody = errors.New("schema.errors.invalid_body")
)
