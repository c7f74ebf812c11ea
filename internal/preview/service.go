package preview

import (
	"context"
	"fmt"
	"image"
	"io"
	"strconv"
	"time"

	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/metrics"
)

// Service resolves preview requests. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	Files     FileResolver
	Engine    PreviewEngine
	Icons     MimeIconProvider
	Validator *Validator

	// MaxDownloadSize bounds the files served as they are. Zero means no limit.
	MaxDownloadSize int64
}

// NewService wires a Service whose validator repairs squareWidth-wide thumbnails into store.
func NewService(files FileResolver, engine PreviewEngine, store CacheStore, icons MimeIconProvider, squareWidth int) *Service {
	var repairer Repairer
	if store != nil {
		repairer = NewCacheRepairer(store)
	}
	return &Service{
		Files:     files,
		Engine:    engine,
		Icons:     icons,
		Validator: NewValidator(squareWidth, repairer),
	}
}

// Resolve looks up path for owner and resolves the request against it.
func (s *Service) Resolve(ctx context.Context, owner, path string, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	file, err := s.Files.Resolve(ctx, owner, path)
	if err != nil {
		return nil, err
	}
	return s.ResolveFile(ctx, req, file)
}

// ResolveFile produces the result for a file that is already resolved.
func (s *Service) ResolveFile(ctx context.Context, req Request, file *SourceFile) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	animated := false
	if file.MediaType == MediaTypeGIF {
		var err error
		animated, err = s.scanAnimation(file)
		if err != nil {
			return nil, err
		}
	}

	var (
		res *Result
		err error
	)
	decision := Decide(file, animated, s.Engine.IsMimeSupported(file.MediaType), req)
	switch decision {
	case ServeOriginal:
		res, err = s.original(file)
	default:
		res = s.generate(ctx, req, file)
	}
	if err != nil {
		return nil, err
	}

	res, err = Encode(res, req.EncodeAsText)
	if err != nil {
		return nil, err
	}
	res.Path = file.Path

	logging.Log.Debugf("[preview] path: %s / mimetype: %s / status: %s", res.Path, res.MediaType, res.Status)
	metrics.PreviewsServed.WithLabelValues(outcome(res)).Inc()
	metrics.PreviewDuration.Observe(time.Since(start).Seconds())
	return res, nil
}

func (s *Service) scanAnimation(file *SourceFile) (bool, error) {
	rc, err := file.Open()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStreamRead, err)
	}
	defer rc.Close()

	animated, err := IsAnimated(rc)
	if err != nil {
		return false, err
	}
	metrics.AnimatedScans.WithLabelValues(strconv.FormatBool(animated)).Inc()
	return animated, nil
}

func (s *Service) generate(ctx context.Context, req Request, file *SourceFile) *Result {
	opts := req.generateOptions()
	generated, err := s.Engine.Generate(ctx, file, opts)
	if err != nil {
		logging.Log.Infof("[preview] no preview for %s (%s): %v", file.Path, file.MediaType, err)
		return &Result{
			Kind:      KindPreview,
			Bitmap:    s.icon(file.MediaType),
			MediaType: MediaTypePNG,
			Status:    StatusUnsupportedMediaType,
		}
	}

	bitmap := s.Validator.Validate(ctx, generated, req.MaxX, req.MaxY, CacheKeyFor(file, opts))
	return &Result{
		Kind:      KindPreview,
		Bitmap:    bitmap,
		MediaType: MediaTypePNG,
		Status:    StatusOK,
	}
}

func (s *Service) icon(mediaType string) image.Image {
	if s.Icons != nil {
		if icon := s.Icons.IconFor(mediaType); icon != nil {
			return icon
		}
	}
	return image.NewNRGBA(image.Rect(0, 0, 1, 1))
}

func (s *Service) original(file *SourceFile) (*Result, error) {
	limit := s.MaxDownloadSize
	if limit > 0 && file.Size > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, file.Path, file.Size, limit)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStreamRead, err)
	}
	defer rc.Close()

	// The file may have grown since it was resolved.
	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStreamRead, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, file.Path, limit)
	}
	return &Result{
		Kind:      KindDownload,
		Bytes:     data,
		MediaType: file.MediaType,
		Status:    StatusOK,
	}, nil
}

func outcome(res *Result) string {
	switch {
	case res.Status == StatusUnsupportedMediaType:
		return "icon"
	case res.Kind == KindDownload:
		return "download"
	default:
		return "preview"
	}
}
