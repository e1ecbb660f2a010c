package scheduler

import (
	"time"

	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CheckoutSweeper removes checkout sessions that were abandoned without
// being finished or closed.
type CheckoutSweeper struct {
	cron         *cron.Cron
	checkoutRepo repository.CheckoutRepository
	maxIdle      time.Duration
}

func NewCheckoutSweeper(checkoutRepo repository.CheckoutRepository, maxIdle time.Duration) *CheckoutSweeper {
	return &CheckoutSweeper{
		cron:         cron.New(),
		checkoutRepo: checkoutRepo,
		maxIdle:      maxIdle,
	}
}

// Start schedules the sweep every ten minutes.
func (s *CheckoutSweeper) Start() error {
	_, err := s.cron.AddFunc("@every 10m", func() {
		cutoff := time.Now().Add(-s.maxIdle)
		removed := s.checkoutRepo.DeleteStale(cutoff)
		if removed > 0 {
			logger.Info("Swept stale checkout sessions", map[string]interface{}{
				"removed":  removed,
				"max_idle": s.maxIdle.String(),
			})
		}
	})
	if err != nil {
		logger.Error("Failed to schedule checkout sweeper", err, nil)
		return err
	}

	s.cron.Start()
	logger.Info("Checkout sweeper started", map[string]interface{}{
		"max_idle": s.maxIdle.String(),
	})
	return nil
}

// Stop halts the scheduler.
func (s *CheckoutSweeper) Stop() {
	s.cron.Stop()
	logger.Info("Checkout sweeper stopped", nil)
}
