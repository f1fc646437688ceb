package main

import (
	"github.com/rs/zerolog/log"

	"consulting-backend/internal/infrastructure/queue"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(cfg *Config) (*asynqScheduler, error) {
	scheduler := queue.NewScheduler(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	if err := scheduler.RegisterCareerJobs(cfg.ExpirySchedule); err != nil {
		return nil, err
	}
	if err := scheduler.Start(); err != nil {
		return nil, err
	}
	log.Info().Msg("scheduler started")

	return &asynqScheduler{Scheduler: scheduler}, nil
}

func (s *asynqScheduler) Shutdown() {
	log.Info().Msg("scheduler shutting down")
	s.Scheduler.Shutdown()
	log.Info().Msg("scheduler stopped")
}
