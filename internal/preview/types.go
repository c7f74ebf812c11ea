// Package preview decides whether a gallery file is served as a generated preview or as the
// original bytes, and makes sure generated previews have the dimensions the client asked for.
package preview

import (
	"context"
	"fmt"
	"image"
	"io"
)

// Media types the decision rules care about.
const (
	MediaTypePNG = "image/png"
	MediaTypeGIF = "image/gif"
	MediaTypeSVG = "image/svg+xml"
)

// SourceFile is a resolved gallery file. It is read-only for the duration of a request.
type SourceFile struct {
	ID        string
	Owner     string
	Path      string
	MediaType string
	Size      int64

	// Opener returns a fresh stream over the file content.
	Opener func() (io.ReadCloser, error)
}

// Open returns a new reader over the file content. Callers must close it.
func (f *SourceFile) Open() (io.ReadCloser, error) {
	if f.Opener == nil {
		return nil, fmt.Errorf("%w: %s has no content", ErrStreamRead, f.Path)
	}
	return f.Opener()
}

// CacheKey identifies the slot of a cached preview.
type CacheKey struct {
	Owner      string
	FileID     string
	MaxX       int
	MaxY       int
	KeepAspect bool
}

func (k CacheKey) String() string {
	s := fmt.Sprintf("%s/%s/%d-%d", k.Owner, k.FileID, k.MaxX, k.MaxY)
	if k.KeepAspect {
		s += "-a"
	}
	return s
}

// CacheKeyFor returns the cache slot used for a preview of file generated with opts.
// The engine reads from it and the cache repairer writes to it.
func CacheKeyFor(file *SourceFile, opts GenerateOptions) CacheKey {
	return CacheKey{
		Owner:      file.Owner,
		FileID:     file.ID,
		MaxX:       opts.MaxX,
		MaxY:       opts.MaxY,
		KeepAspect: opts.KeepAspect,
	}
}

// GenerateOptions are passed to the PreviewEngine.
type GenerateOptions struct {
	MaxX       int
	MaxY       int
	KeepAspect bool
	ScalingUp  bool
}

// FileResolver turns an owner-relative path into a SourceFile.
type FileResolver interface {
	Resolve(ctx context.Context, owner, path string) (*SourceFile, error)
}

// PreviewEngine renders a first draft preview of a file.
type PreviewEngine interface {
	IsMimeSupported(mediaType string) bool
	Generate(ctx context.Context, file *SourceFile, opts GenerateOptions) (image.Image, error)
}

// CacheStore persists encoded previews.
type CacheStore interface {
	Write(ctx context.Context, key CacheKey, data []byte) error
	Read(ctx context.Context, key CacheKey) ([]byte, error)
}

// MimeIconProvider returns the fallback icon shown when no preview can be generated.
type MimeIconProvider interface {
	IconFor(mediaType string) image.Image
}
