// filepath: internal/housekeeping/tasks.go
package housekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/metrics"
	"github.com/knkgun/gallery/internal/models"
)

// RunOnce deletes every cached preview older than maxAge. A zero maxAge disables the purge and
// only reports the current cache size.
func RunOnce(ctx context.Context, store PreviewStore, maxAge time.Duration) (*models.HousekeepingReport, error) {
	start := time.Now()
	report := &models.HousekeepingReport{}

	if maxAge > 0 {
		report.Cutoff = start.Add(-maxAge).UTC()
		deleted, err := store.DeletePreviewsOlderThan(ctx, report.Cutoff)
		if err != nil {
			return nil, fmt.Errorf("failed to purge previews: %w", err)
		}
		report.PreviewsDeleted = deleted
		metrics.CachePurged.Add(float64(deleted))
	}

	stats, err := store.CountPreviews(ctx)
	if err != nil {
		// The purge itself succeeded, so the report is still returned.
		logging.Log.Warnf("Housekeeping could not count remaining previews: %v", err)
	} else {
		report.PreviewsLeft = stats.PreviewCount
	}

	report.Duration = time.Since(start).Round(time.Millisecond).String()
	return report, nil
}
