// filepath: internal/housekeeping/service.go
package housekeeping

import (
	"context"
	"sync"
	"time"

	"github.com/knkgun/gallery/internal/logging"
	"github.com/knkgun/gallery/internal/models"
)

const (
	// MinCheckInterval is the minimum time between checks to prevent busy-looping.
	MinCheckInterval = 1 * time.Minute
	// runTimeout bounds a single purge.
	runTimeout = 5 * time.Minute
)

// Service provides the background worker that purges stale previews from the cache.
type Service struct {
	Store    PreviewStore
	Interval time.Duration
	MaxAge   time.Duration

	mu       sync.Mutex
	lastRun  time.Time
	timer    *time.Timer
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewService creates a new housekeeping service instance.
func NewService(store PreviewStore, interval, maxAge time.Duration) *Service {
	return &Service{
		Store:    store,
		Interval: interval,
		MaxAge:   maxAge,
		stopCh:   make(chan struct{}),
	}
}

// Start kicks off the background housekeeping service. A zero interval leaves it disabled.
func (s *Service) Start() {
	if s.Interval <= 0 {
		logging.Log.Info("Background housekeeping is disabled.")
		return
	}
	logging.Log.Info("Starting background housekeeping service.")
	s.timer = time.NewTimer(0) // Fire immediately on start

	go func() {
		for {
			select {
			case <-s.timer.C:
				s.runChecks()
				nextRun := s.scheduleNextRun()
				s.timer.Reset(nextRun)
				logging.Log.Infof("Next housekeeping check scheduled in %v.", nextRun)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background housekeeping service.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		logging.Log.Info("Stopping background housekeeping service.")
		close(s.stopCh)
	})
}

// Trigger runs the purge immediately and resets the schedule.
func (s *Service) Trigger(ctx context.Context) (*models.HousekeepingReport, error) {
	report, err := RunOnce(ctx, s.Store, s.MaxAge)
	if err != nil {
		return nil, err
	}
	s.markRun(time.Now())
	return report, nil
}

func (s *Service) markRun(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = t
}

// scheduleNextRun calculates the duration until the next housekeeping event.
func (s *Service) scheduleNextRun() time.Duration {
	s.mu.Lock()
	lastRun := s.lastRun
	s.mu.Unlock()

	duration := time.Until(lastRun.Add(s.Interval))
	if duration < MinCheckInterval {
		return MinCheckInterval
	}
	return duration
}

// runChecks runs the purge when the interval has elapsed since the last run.
func (s *Service) runChecks() {
	s.mu.Lock()
	due := s.lastRun.Add(s.Interval).Before(time.Now())
	s.mu.Unlock()
	if !due {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	logging.Log.Debug("Housekeeping service: purging preview cache...")
	report, err := s.Trigger(ctx)
	if err != nil {
		logging.Log.Errorf("Housekeeping run failed: %v", err)
		// Retry on the next interval rather than on every check.
		s.markRun(time.Now())
		return
	}
	logging.Log.Infof("Housekeeping run finished: %d previews deleted, %d left (took %s).",
		report.PreviewsDeleted, report.PreviewsLeft, report.Duration)
}
