package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"consulting-backend/pkg/container"
	"consulting-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize container")
	}
	defer c.Cleanup()

	cfg := loadConfig(c.Config)

	health, err := startServices(c, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup checks failed")
	}

	srv, err := setupAsynqServer(cfg, initializeHandlers(c))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start worker")
	}

	scheduler, err := setupScheduler(cfg)
	if err != nil {
		srv.Shutdown()
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}

	waitForShutdown(srv, scheduler, health)
}

type stopper interface {
	Shutdown(ctx context.Context) error
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler, health stopper) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("gracefully stopping")
	scheduler.Shutdown()
	srv.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = health.Shutdown(ctx)

	log.Info().Msg("stopped")
}
