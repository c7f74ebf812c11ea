// filepath: internal/services/service_errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/knkgun/gallery/internal/preview"
	"github.com/knkgun/gallery/internal/shared"
)

// Standard errors returned by the service layer.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrTooLarge   = errors.New("file too large")
)

// translateError tags errors of the lower layers with the matching service error.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, preview.ErrFileNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, preview.ErrInvalidPath),
		errors.Is(err, preview.ErrInvalidRequest),
		errors.Is(err, shared.ErrInvalidName):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	case errors.Is(err, preview.ErrTooLarge):
		return fmt.Errorf("%w: %w", ErrTooLarge, err)
	default:
		return err
	}
}
