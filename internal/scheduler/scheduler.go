package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"releaseradar/backend/internal/logger"
	"releaseradar/backend/internal/service"
)

// Scheduler periodically triggers a synchronization run for the current
// month. It is a thin wrapper; per-month serialization lives in the sync
// service itself, so a manual trigger racing the timer is safe.
type Scheduler struct {
	sync     *service.SyncService
	interval time.Duration
	running  atomic.Bool
	stopCh   chan struct{}
	stopped  chan struct{}
}

// New creates a Scheduler firing at the given interval.
func New(sync *service.SyncService, interval time.Duration) *Scheduler {
	return &Scheduler{
		sync:     sync,
		interval: interval,
		stopCh:   make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start launches the scheduling loop. The first run fires immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("scheduler already running")
	}
	go s.run(ctx)
	return nil
}

// Stop terminates the loop and waits for it to finish.
func (s *Scheduler) Stop() {
	if s.running.CompareAndSwap(true, false) {
		close(s.stopCh)
		<-s.stopped
	}
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	month := service.MonthStart(time.Now().UTC())

	result, err := s.sync.Synchronize(ctx, month)
	switch {
	case err != nil && result != nil:
		// Catalog committed, snapshot emit failed: degraded analytics only.
		logger.Warn("scheduled sync finished with degraded analytics",
			zap.String("month", month.Format("2006-01")),
			zap.Int("added", result.Added()),
			zap.Error(err),
		)
	case err != nil:
		logger.Error(err, zap.String("month", month.Format("2006-01")))
	default:
		logger.Info("scheduled sync finished",
			zap.String("month", month.Format("2006-01")),
			zap.Int("added", result.Added()),
			zap.Int("rows", result.Rows),
		)
	}
}
