// filepath: internal/services/interfaces.go
package services

import (
	"context"

	"github.com/knkgun/gallery/internal/models"
	"github.com/knkgun/gallery/internal/preview"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// ctx: context to trace request IDs (if available)
	// action: what happened (e.g., "file.download", "housekeeping.trigger")
	// actor: who did it (owner)
	// resource: what was affected (e.g., "holidays/beach.jpg")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// InfoService defines the interface for the info service.
type InfoService interface {
	GetInfo() models.Info
}

// PreviewService defines the interface for the preview service.
type PreviewService interface {
	// GetPreview resolves one preview or download request for a file of owner.
	GetPreview(ctx context.Context, owner, path string, req preview.Request) (*preview.Result, error)
	// GetThumbnails resolves a batch of thumbnails. A failing file does not fail the batch.
	GetThumbnails(ctx context.Context, owner string, paths []string, req preview.Request) []models.PreviewPayload
}

// HousekeepingService defines the interface for the housekeeping service.
type HousekeepingService interface {
	Start()
	Stop()
	TriggerHousekeeping(ctx context.Context) (*models.HousekeepingReport, error)
}
