// Package jobs runs the background maintenance: the daily premium
// expiry sweep and the hourly seasonal-event countdown.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"

	"mining_webapp/internal/logger"
	"mining_webapp/internal/service"
)

type Scheduler struct {
	cron    *cron.Cron
	premium *service.PremiumService
	mining  *service.MiningService
}

func NewScheduler(premium *service.PremiumService, mining *service.MiningService) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		premium: premium,
		mining:  mining,
	}
}

// Start schedules the jobs and launches the cron loop.
func (s *Scheduler) Start(ctx context.Context) {
	// premium sweep at midnight
	s.cron.AddFunc("0 0 * * *", func() {
		downgraded, err := s.premium.SweepExpired(ctx)
		if err != nil {
			logger.Error("premium sweep failed", "error", err)
			return
		}
		logger.Info("premium sweep complete", "downgraded", downgraded)
	})

	// seasonal countdowns tick every hour
	s.cron.AddFunc("0 * * * *", func() {
		if err := s.mining.TickSeasonalCountdown(ctx); err != nil {
			logger.Error("seasonal countdown tick failed", "error", err)
		}
	})

	s.cron.Start()
	logger.Info("job scheduler started")
}

// Stop halts the cron loop and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("job scheduler stopped")
}
