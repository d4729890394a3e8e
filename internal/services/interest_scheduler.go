package services

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// InterestScheduler periodically runs the savings interest sweep. In
// production the interval is a month; tests shrink it.
type InterestScheduler struct {
	ledger   LedgerServiceInterface
	metrics  MetricsRecorderInterface
	logger   *slog.Logger
	interval time.Duration

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewInterestScheduler creates a scheduler that sweeps at the given interval
func NewInterestScheduler(ledger LedgerServiceInterface, metrics MetricsRecorderInterface, logger *slog.Logger, interval time.Duration) *InterestScheduler {
	return &InterestScheduler{
		ledger:   ledger,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		stopped:  make(chan struct{}),
	}
}

// Start runs the sweep loop until the context is cancelled or Stop is called
func (s *InterestScheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("interest scheduler started", slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("interest scheduler stopped")
			return
		case <-s.stopped:
			s.logger.Info("interest scheduler stopped")
			return
		case <-ticker.C:
			s.runSweep()
		}
	}
}

// Stop terminates the sweep loop
func (s *InterestScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopped) })
}

func (s *InterestScheduler) runSweep() {
	credited, err := s.ledger.AccrueInterestForAllSavings()
	if err != nil {
		s.logger.Error("interest sweep failed", slog.String("error", err.Error()))
		return
	}
	s.metrics.RecordGauge("ledger.sweep.credited", float64(credited), nil)
}
