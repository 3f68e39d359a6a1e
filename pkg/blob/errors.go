package blob

import "errors"

var (
	ErrNotFound     = errors.New("blob not found")
	ErrInvalidKey   = errors.New("invalid blob key") // Prevents path traversal in keys
	ErrAccessDenied = errors.New("access denied")

	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
	ErrFailedToRead       = errors.New("failed to read blob")
	ErrFailedToWrite      = errors.New("failed to write blob")
	ErrFailedToDelete     = errors.New("failed to delete blob")
)
