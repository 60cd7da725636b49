package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	appdeposit "github.com/laundrypos/backend/internal/application/deposit"
	"github.com/laundrypos/backend/internal/infrastructure/config"
)

// Sweeper expires lapsed deposit balances. Implemented by the deposit
// expiry service.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (*appdeposit.SweepResult, error)
}

// ExpiryScheduler runs the deposit expiry sweep on a cron schedule,
// typically once per night after close of business.
type ExpiryScheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	cfg     config.ExpiryConfig
	logger  *zap.Logger
	entryID cron.EntryID
}

// NewExpiryScheduler creates a scheduler; call Start to begin running
func NewExpiryScheduler(sweeper Sweeper, cfg config.ExpiryConfig, logger *zap.Logger) *ExpiryScheduler {
	return &ExpiryScheduler{
		cron:    cron.New(),
		sweeper: sweeper,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start registers the sweep job and starts the cron loop
func (s *ExpiryScheduler) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("Deposit expiry scheduler disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runSweep)
	if err != nil {
		return err
	}
	s.entryID = entryID

	s.cron.Start()
	s.logger.Info("Deposit expiry scheduler started",
		zap.String("schedule", s.cfg.CronSchedule),
		zap.Duration("timeout", s.cfg.SweepTimeout),
	)
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish
func (s *ExpiryScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Deposit expiry scheduler stopped")
}

// RunNow triggers one sweep outside the schedule, e.g. from an admin endpoint
func (s *ExpiryScheduler) RunNow() {
	s.runSweep()
}

func (s *ExpiryScheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SweepTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.sweeper.Sweep(ctx, start)
	if err != nil {
		s.logger.Error("Deposit expiry sweep failed", zap.Error(err))
		return
	}

	s.logger.Info("Deposit expiry sweep finished",
		zap.Int("swept", result.Swept),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.Int64("total_expired", result.TotalExpired),
		zap.Duration("elapsed", time.Since(start)),
	)
}
