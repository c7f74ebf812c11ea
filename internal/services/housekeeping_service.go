// filepath: internal/services/housekeeping_service.go
package services

import (
	"context"

	"github.com/knkgun/gallery/internal/housekeeping"
	"github.com/knkgun/gallery/internal/models"
)

var _ HousekeepingService = (*housekeepingService)(nil)

// housekeepingService manages the lifecycle of the background purge worker
// and provides a method for manual triggering.
type housekeepingService struct {
	worker *housekeeping.Service
}

// NewHousekeepingService creates a new HousekeepingService.
func NewHousekeepingService(worker *housekeeping.Service) *housekeepingService {
	return &housekeepingService{worker: worker}
}

// Start begins the background housekeeping worker.
func (s *housekeepingService) Start() {
	s.worker.Start()
}

// Stop terminates the background housekeeping worker.
func (s *housekeepingService) Stop() {
	s.worker.Stop()
}

// TriggerHousekeeping runs the purge now. The automatic schedule restarts from this run.
func (s *housekeepingService) TriggerHousekeeping(ctx context.Context) (*models.HousekeepingReport, error) {
	return s.worker.Trigger(ctx)
}
