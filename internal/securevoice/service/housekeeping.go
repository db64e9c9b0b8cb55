package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/securevoice/securevoice/internal/securevoice/store"
)

// DefaultSweepInterval is used when no interval is configured.
const DefaultSweepInterval = 5 * time.Minute

// Sweeper is an expiring store that can be swept. Every ephemeral.Store
// satisfies it.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// HousekeepingService periodically removes expired ephemeral records
// (registration OTPs, registration sessions, login sessions) and spent
// admin login codes.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Sweepers map[string]Sweeper
	Clock    Clock

	// Internal channels for lifecycle management
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewHousekeepingService creates a housekeeping service. If interval is 0 or
// negative, DefaultSweepInterval is used.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration, sweepers map[string]Sweeper) *HousekeepingService {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		Sweepers: sweepers,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. It is non-blocking; call Stop to shut
// the worker down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the worker and blocks until any in-progress cleanup has
// finished. Calling Stop more than once is safe.
func (s *HousekeepingService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh
		s.Logger.Info("housekeeping service stopped")
	})
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Spent admin codes survive restarts, so sweep once on startup.
	s.cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// cleanup performs one sweep. Each step is independent; a failure in one
// does not stop the others. It returns the number of removed records.
func (s *HousekeepingService) cleanup(ctx context.Context) int {
	now := s.Clock.now()
	var total int

	for name, sw := range s.Sweepers {
		n, err := sw.Sweep(ctx, now)
		if err != nil {
			s.Logger.Error("sweep failed", "store", name, "error", err)
			continue
		}
		s.Logger.Debug("swept expired records", "store", name, "removed", n)
		total += n
	}

	n, err := s.Store.AdminOTPs().DeleteStaleOTPs(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete stale admin otps", "error", err)
	} else {
		total += int(n)
	}

	s.Logger.Info("housekeeping cleanup completed", "removed", total)
	return total
}
