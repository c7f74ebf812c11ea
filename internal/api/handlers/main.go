// filepath: internal/api/handlers/main.go
package handlers

import (
	"github.com/knkgun/gallery/internal/config"
	"github.com/knkgun/gallery/internal/services"
)

// Handlers provides a struct to hold shared dependencies for API handlers.
type Handlers struct {
	Info         services.InfoService
	Preview      services.PreviewService
	Housekeeping services.HousekeepingService
	Auditor      services.Auditor

	Cfg *config.Config
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	info services.InfoService,
	preview services.PreviewService,
	housekeeping services.HousekeepingService,
	auditor services.Auditor,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		Info:         info,
		Preview:      preview,
		Housekeeping: housekeeping,
		Auditor:      auditor,
		Cfg:          cfg,
	}
}
