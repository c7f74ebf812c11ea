// filepath: internal/media/engine.go
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"

	// Import decoders for common formats
	_ "image/gif"
	_ "image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/metrics"
	"github.com/knkgun/gallery/internal/preview"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// rasterTypes are decoded natively.
var rasterTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
}

// Engine renders previews of gallery files. It implements preview.PreviewEngine.
type Engine struct {
	// Cache holds previously generated previews. Optional.
	Cache      preview.CacheStore
	Converter  *Converter
	SVGEnabled bool
}

// NewEngine creates an Engine. converter may be nil when SVG support is off.
func NewEngine(cache preview.CacheStore, converter *Converter, svgEnabled bool) *Engine {
	return &Engine{Cache: cache, Converter: converter, SVGEnabled: svgEnabled}
}

var _ preview.PreviewEngine = (*Engine)(nil)

// IsMimeSupported reports whether a preview can be generated for mediaType.
func (e *Engine) IsMimeSupported(mediaType string) bool {
	if mediaType == preview.MediaTypeSVG {
		return e.SVGEnabled && e.Converter != nil && e.Converter.Available()
	}
	return rasterTypes[mediaType]
}

// Generate returns a preview of file bounded by opts. A cached preview is returned when there
// is one, otherwise a new one is rendered and stored.
func (e *Engine) Generate(ctx context.Context, file *preview.SourceFile, opts preview.GenerateOptions) (image.Image, error) {
	key := preview.CacheKeyFor(file, opts)

	if cached := e.lookup(ctx, key); cached != nil {
		return cached, nil
	}

	if !e.IsMimeSupported(file.MediaType) {
		return nil, fmt.Errorf("%w: unsupported media type %s", preview.ErrGenerationFailed, file.MediaType)
	}

	src, err := e.decode(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", preview.ErrGenerationFailed, err)
	}

	img := Scale(src, opts)
	e.store(ctx, key, img)
	return img, nil
}

func (e *Engine) lookup(ctx context.Context, key preview.CacheKey) image.Image {
	if e.Cache == nil {
		return nil
	}
	data, err := e.Cache.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, preview.ErrCacheMiss) {
			logging.Log.Warnf("[engine] cache lookup for %s failed: %v", key, err)
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		logging.Log.Warnf("[engine] cached preview %s is unreadable, regenerating: %v", key, err)
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return img
}

func (e *Engine) store(ctx context.Context, key preview.CacheKey, img image.Image) {
	if e.Cache == nil {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		logging.Log.Warnf("[engine] could not encode preview %s: %v", key, err)
		return
	}
	if err := e.Cache.Write(ctx, key, buf.Bytes()); err != nil {
		logging.Log.Warnf("[engine] could not cache preview %s: %v", key, err)
	}
}

func (e *Engine) decode(ctx context.Context, file *preview.SourceFile) (image.Image, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if file.MediaType == preview.MediaTypeSVG {
		return e.Converter.RasterizeSVG(ctx, rc)
	}

	// GIFs decode to their first frame.
	img, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", file.Path, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("cannot create preview for zero-dimension image %s", file.Path)
	}
	return img, nil
}

// Scale bounds src by opts. A zero MaxX or MaxY leaves that axis unbounded. With KeepAspect
// the whole image fits inside the box; without it the box is filled and the overflow cropped,
// provided the source is large enough. Images are never enlarged unless ScalingUp is set.
func Scale(src image.Image, opts preview.GenerateOptions) image.Image {
	b := src.Bounds()
	origWidth, origHeight := b.Dx(), b.Dy()

	maxX, maxY := opts.MaxX, opts.MaxY
	if maxX <= 0 && maxY <= 0 {
		return src
	}
	if maxX <= 0 {
		maxX = max(origWidth*maxY/origHeight, 1)
	}
	if maxY <= 0 {
		maxY = max(origHeight*maxX/origWidth, 1)
	}

	if !opts.KeepAspect && (opts.ScalingUp || (origWidth >= maxX && origHeight >= maxY)) {
		return imaging.Fill(src, maxX, maxY, imaging.Center, imaging.Linear)
	}

	newWidth, newHeight := fitWithin(origWidth, origHeight, maxX, maxY, opts.ScalingUp)
	if newWidth == origWidth && newHeight == origHeight {
		return src
	}

	dst := image.NewNRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, src, b, draw.Over, nil)
	return dst
}

// fitWithin returns the largest size with the aspect ratio of w x h that fits maxX x maxY.
func fitWithin(w, h, maxX, maxY int, scalingUp bool) (int, int) {
	if !scalingUp && w <= maxX && h <= maxY {
		return w, h
	}
	// Compare w/h against maxX/maxY without floating point.
	if w*maxY >= h*maxX {
		return maxX, max(h*maxX/w, 1)
	}
	return max(w*maxY/h, 1), maxY
}
