package preview

import "errors"

// Errors returned by the preview core and its collaborators.
var (
	ErrInvalidRequest    = errors.New("invalid preview request")
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrStreamRead        = errors.New("could not read file stream")
	ErrGenerationFailed  = errors.New("preview generation failed")
	ErrCacheMiss         = errors.New("preview not cached")
	ErrFileNotFound      = errors.New("file not found")
	ErrInvalidPath       = errors.New("invalid path")
	ErrTooLarge          = errors.New("file exceeds the download limit")
)
