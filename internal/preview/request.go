package preview

import "fmt"

// Request carries the per-call preview options. It is a value: the With* methods return a
// modified copy and nothing in this package changes a Request it was given.
type Request struct {
	// MaxX and MaxY are the requested box. Zero means no resizing on that axis.
	MaxX int
	MaxY int

	KeepAspect      bool
	AnimatedPreview bool
	ForceDownload   bool
	EncodeAsText    bool
}

// NewRequest builds a preview request for a maxX x maxY box with the default flags.
func NewRequest(maxX, maxY int) (Request, error) {
	req := Request{
		MaxX:            maxX,
		MaxY:            maxY,
		KeepAspect:      true,
		AnimatedPreview: true,
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// DownloadRequest asks for the original file, whatever its type.
func DownloadRequest() Request {
	return Request{
		KeepAspect:      true,
		AnimatedPreview: true,
		ForceDownload:   true,
	}
}

// ThumbnailRequest is used for batches of gallery thumbnails: animations are not kept and
// the payload is sent as text.
func ThumbnailRequest(maxX, maxY int, keepAspect bool) (Request, error) {
	req, err := NewRequest(maxX, maxY)
	if err != nil {
		return Request{}, err
	}
	return req.WithKeepAspect(keepAspect).WithAnimatedPreview(false).WithEncodeAsText(true), nil
}

// Validate rejects negative dimensions.
func (r Request) Validate() error {
	if r.MaxX < 0 || r.MaxY < 0 {
		return fmt.Errorf("%w: dimensions must not be negative, got %dx%d", ErrInvalidRequest, r.MaxX, r.MaxY)
	}
	return nil
}

func (r Request) WithKeepAspect(keep bool) Request {
	r.KeepAspect = keep
	return r
}

func (r Request) WithAnimatedPreview(animated bool) Request {
	r.AnimatedPreview = animated
	return r
}

func (r Request) WithForceDownload(download bool) Request {
	r.ForceDownload = download
	return r
}

func (r Request) WithEncodeAsText(text bool) Request {
	r.EncodeAsText = text
	return r
}

// generateOptions maps the request onto engine options. Previews are never scaled up.
func (r Request) generateOptions() GenerateOptions {
	return GenerateOptions{
		MaxX:       r.MaxX,
		MaxY:       r.MaxY,
		KeepAspect: r.KeepAspect,
		ScalingUp:  false,
	}
}
