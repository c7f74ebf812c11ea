package preview

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// placement is where the scaled source lands on the canvas.
type placement struct {
	X, Y          int
	Width, Height int
}

// calculatePlacement scales srcW x srcH to fit maxX x maxY and centers it on the axis that
// does not fill the box.
func calculatePlacement(srcW, srcH, maxX, maxY int) placement {
	var newWidth, newHeight, offsetX, offsetY float64

	if float64(srcW)/float64(srcH) >= float64(maxX)/float64(maxY) {
		newWidth = float64(maxX)
		newHeight = float64(srcH) * float64(maxX) / float64(srcW)
		offsetY = math.Round(math.Abs(float64(maxY)-newHeight) / 2)
	} else {
		newWidth = float64(srcW) * float64(maxY) / float64(srcH)
		newHeight = float64(maxY)
		offsetX = math.Round(math.Abs(float64(maxX)-newWidth) / 2)
	}

	return placement{
		X:      int(offsetX),
		Y:      int(offsetY),
		Width:  max(int(newWidth), 1),
		Height: max(int(newHeight), 1),
	}
}

// Fit returns a maxX x maxY copy of src. The content keeps its aspect ratio and is centered,
// the remaining space is transparent.
func Fit(src image.Image, maxX, maxY int) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no source bitmap", ErrInvalidDimensions)
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 || maxX <= 0 || maxY <= 0 {
		return nil, fmt.Errorf("%w: cannot fit %dx%d into %dx%d", ErrInvalidDimensions, b.Dx(), b.Dy(), maxX, maxY)
	}

	p := calculatePlacement(b.Dx(), b.Dy(), maxX, maxY)

	canvas := imaging.New(maxX, maxY, color.NRGBA{})
	scaled := imaging.Resize(src, p.Width, p.Height, imaging.Linear)

	return imaging.Paste(canvas, scaled, image.Pt(p.X, p.Y)), nil
}
