// filepath: internal/services/preview_service.go
package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/models"
	"github.com/knkgun/gallery/internal/preview"
)

var _ PreviewService = (*previewService)(nil)

// Resolver is the part of preview.Service used by the preview service.
type Resolver interface {
	Resolve(ctx context.Context, owner, path string, req preview.Request) (*preview.Result, error)
}

type previewService struct {
	Core Resolver
}

// NewPreviewService creates a new PreviewService on top of the preview pipeline.
func NewPreviewService(core Resolver) *previewService {
	return &previewService{Core: core}
}

// GetPreview resolves a single request.
func (s *previewService) GetPreview(ctx context.Context, owner, path string, req preview.Request) (*preview.Result, error) {
	res, err := s.Core.Resolve(ctx, owner, path, req)
	if err != nil {
		return nil, translateError(err)
	}
	return res, nil
}

// GetThumbnails resolves each path with req and reports per-file failures inline.
func (s *previewService) GetThumbnails(ctx context.Context, owner string, paths []string, req preview.Request) []models.PreviewPayload {
	req = req.WithEncodeAsText(true)
	payloads := make([]models.PreviewPayload, 0, len(paths))
	for _, path := range paths {
		res, err := s.GetPreview(ctx, owner, path, req)
		if err != nil {
			payloads = append(payloads, models.PreviewPayload{
				Path:   path,
				Status: StatusCode(err),
				Error:  ErrorMessage(err),
			})
			continue
		}
		payloads = append(payloads, ToPayload(res))
	}
	return payloads
}

// ToPayload converts a text-encoded result into its JSON form.
func ToPayload(res *preview.Result) models.PreviewPayload {
	return models.PreviewPayload{
		Path:      res.Path,
		MediaType: res.MediaType,
		Status:    ResultStatusCode(res.Status),
		Data:      res.Text,
	}
}

// StatusCode maps a service error to an HTTP status code.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// ResultStatusCode maps the status of a preview result to an HTTP status code.
func ResultStatusCode(s preview.Status) int {
	if s == preview.StatusUnsupportedMediaType {
		return http.StatusUnsupportedMediaType
	}
	return http.StatusOK
}

// ErrorMessage returns the text a client may see for err. Internal errors are logged and
// replaced by a generic message, they can carry server paths.
func ErrorMessage(err error) string {
	switch StatusCode(err) {
	case http.StatusNotFound:
		return "File not found."
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusRequestEntityTooLarge:
		return "File exceeds the configured download limit."
	default:
		logging.Log.Errorf("preview failed: %v", err)
		return "Failed to get preview."
	}
}
