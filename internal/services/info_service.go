// filepath: internal/services/info_service.go
package services

import (
	"time"

	"github.com/knkgun/gallery/internal/models"
)

var _ InfoService = (*infoService)(nil)

type infoService struct {
	Version              string
	StartTime            time.Time
	SVGPreviewsAvailable bool
	CacheBackend         string
	SquareThumbnailWidth int
}

// NewInfoService creates a new InfoService.
func NewInfoService(version string, startTime time.Time, svgAvailable bool, cacheBackend string, squareWidth int) *infoService {
	return &infoService{
		Version:              version,
		StartTime:            startTime,
		SVGPreviewsAvailable: svgAvailable,
		CacheBackend:         cacheBackend,
		SquareThumbnailWidth: squareWidth,
	}
}

// GetInfo retrieves the application information.
func (s *infoService) GetInfo() models.Info {
	return models.Info{
		ServiceName:          "Gallery Preview-API",
		Version:              s.Version,
		UptimeSince:          s.StartTime,
		SVGPreviewsAvailable: s.SVGPreviewsAvailable,
		CacheBackend:         s.CacheBackend,
		SquareThumbnailWidth: s.SquareThumbnailWidth,
	}
}
