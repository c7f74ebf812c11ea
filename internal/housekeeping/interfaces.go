// filepath: internal/housekeeping/interfaces.go
package housekeeping

import (
	"context"
	"time"

	"github.com/knkgun/gallery/internal/models"
)

// PreviewStore defines the cache methods required by the housekeeping service.
// This decouples the housekeeping logic from the concrete repository implementation.
type PreviewStore interface {
	DeletePreviewsOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	CountPreviews(ctx context.Context) (*models.CacheStats, error)
}
