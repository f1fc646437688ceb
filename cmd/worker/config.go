package main

import (
	"github.com/rs/zerolog/log"

	"consulting-backend/internal/config"
)

// Config is the worker's view of the shared configuration.
type Config struct {
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	Concurrency    int
	ExpirySchedule string
	HealthAddr     string
}

func loadConfig(shared *config.Config) *Config {
	cfg := &Config{
		RedisAddr:      shared.Redis.Host,
		RedisPassword:  shared.Redis.Password,
		RedisDB:        shared.Redis.DB,
		Concurrency:    shared.Worker.Concurrency,
		ExpirySchedule: shared.Worker.ExpirySchedule,
		HealthAddr:     shared.Worker.HealthAddr,
	}

	log.Info().
		Str("redis", cfg.RedisAddr).
		Int("concurrency", cfg.Concurrency).
		Str("expiry_schedule", cfg.ExpirySchedule).
		Msg("worker config loaded")

	return cfg
}
