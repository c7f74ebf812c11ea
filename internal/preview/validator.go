package preview

import (
	"context"
	"image"

	"github.com/knkgun/gallery/internal/logging"
)

// DefaultSquareThumbnailWidth is the width of the square gallery thumbnails. It is the only
// shape the engine is known to get wrong, so it is the only one repaired.
const DefaultSquareThumbnailWidth = 200

// Repairer persists a fixed preview and returns the bitmap to serve.
type Repairer interface {
	Repair(ctx context.Context, key CacheKey, fixed image.Image) image.Image
}

// Validator checks the dimensions of generated previews.
type Validator struct {
	SquareWidth int
	Repairer    Repairer
}

// NewValidator returns a Validator repairing squareWidth-wide thumbnails. A non-positive
// width selects DefaultSquareThumbnailWidth.
func NewValidator(squareWidth int, repairer Repairer) *Validator {
	if squareWidth <= 0 {
		squareWidth = DefaultSquareThumbnailWidth
	}
	return &Validator{SquareWidth: squareWidth, Repairer: repairer}
}

// NeedsRepair reports whether a width x height preview generated for a maxX x maxY request
// has to be fixed.
func (v *Validator) NeedsRepair(width, height, maxX, maxY int) bool {
	if maxX != v.SquareWidth || maxY <= 0 {
		return false
	}
	return width > maxX || width < maxX || height < maxY
}

// Validate returns the bitmap to serve for a generated preview.
func (v *Validator) Validate(ctx context.Context, generated image.Image, maxX, maxY int, key CacheKey) image.Image {
	b := generated.Bounds()
	if !v.NeedsRepair(b.Dx(), b.Dy(), maxX, maxY) {
		return generated
	}

	logging.Log.Debugf("[preview] %s is %dx%d instead of %dx%d, fixing it", key, b.Dx(), b.Dy(), maxX, maxY)
	fixed, err := Fit(generated, maxX, maxY)
	if err != nil {
		logging.Log.Warnf("[preview] could not fix %s: %v", key, err)
		return generated
	}
	if v.Repairer == nil {
		return fixed
	}
	return v.Repairer.Repair(ctx, key, fixed)
}
