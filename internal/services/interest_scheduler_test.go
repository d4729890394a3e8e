package services

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/Ferhadbb/BankSite/internal/models"
)

// stubLedgerService counts sweep invocations for the scheduler tests.
type stubLedgerService struct {
	sweeps atomic.Int64
}

var _ LedgerServiceInterface = (*stubLedgerService)(nil)

func (l *stubLedgerService) Deposit(uuid.UUID, decimal.Decimal, string, *uuid.UUID) (*models.Transaction, error) {
	return nil, nil
}

func (l *stubLedgerService) Withdraw(uuid.UUID, decimal.Decimal, string, *uuid.UUID) (*models.Transaction, error) {
	return nil, nil
}

func (l *stubLedgerService) Transfer(uuid.UUID, string, decimal.Decimal, string, *uuid.UUID) (*models.Transaction, *models.Transaction, error) {
	return nil, nil, nil
}

func (l *stubLedgerService) AccrueInterest(uuid.UUID) (*models.Transaction, error) {
	return nil, nil
}

func (l *stubLedgerService) AccrueInterestForAllSavings() (int, error) {
	l.sweeps.Add(1)
	return 2, nil
}

// InterestSchedulerSuite defines the test suite for InterestScheduler
type InterestSchedulerSuite struct {
	suite.Suite
	ledger  *stubLedgerService
	metrics *recordingMetrics
}

// SetupTest runs before each test in the suite
func (s *InterestSchedulerSuite) SetupTest() {
	s.ledger = &stubLedgerService{}
	s.metrics = newRecordingMetrics()
}

// TestInterestSchedulerSuite runs the test suite
func TestInterestSchedulerSuite(t *testing.T) {
	suite.Run(t, new(InterestSchedulerSuite))
}

func (s *InterestSchedulerSuite) TestSweepsOnInterval() {
	scheduler := NewInterestScheduler(s.ledger, s.metrics, slog.Default(), 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		scheduler.Start(context.Background())
		close(done)
	}()

	s.Eventually(func() bool {
		return s.ledger.sweeps.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	scheduler.Stop()
	<-done
}

func (s *InterestSchedulerSuite) TestStopsOnContextCancel() {
	scheduler := NewInterestScheduler(s.ledger, s.metrics, slog.Default(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("scheduler did not stop on context cancellation")
	}
}

// Stop is safe to call more than once.
func (s *InterestSchedulerSuite) TestStopIsIdempotent() {
	scheduler := NewInterestScheduler(s.ledger, s.metrics, slog.Default(), time.Hour)

	done := make(chan struct{})
	go func() {
		scheduler.Start(context.Background())
		close(done)
	}()

	scheduler.Stop()
	scheduler.Stop()
	<-done
}
