package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"consulting-backend/pkg/container"
)

// HealthChecker performs startup checks and backs the probe endpoints.
type HealthChecker struct {
	container *container.Container
}

// startServices checks the backends once and starts the probe server.
func startServices(c *container.Container, cfg *Config) (*http.Server, error) {
	log.Info().Msg("consulting worker starting")

	checker := &HealthChecker{container: c}
	if err := checker.checkAll(); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthCheckHandler)
	mux.HandleFunc("/ready", checker.readyCheckHandler)

	srv := &http.Server{Addr: cfg.HealthAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HealthAddr).Msg("health check server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("health check server failed")
		}
	}()

	return srv, nil
}

func (h *HealthChecker) checkAll() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	checks, ok := h.container.Ready(ctx)
	for name, status := range checks {
		log.Info().Str("check", name).Str("status", status).Msg("startup check")
	}
	if !ok {
		return fmt.Errorf("startup checks failed: %v", checks)
	}
	if h.container.Redis == nil {
		return errors.New("redis is required by the worker")
	}
	return nil
}

func healthCheckHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"UP","service":"consulting-worker"}`))
}

// readyCheckHandler handles the readiness probe
func (h *HealthChecker) readyCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks, ok := h.container.Ready(ctx)
	code, status := http.StatusOK, "READY"
	if !ok {
		code, status = http.StatusServiceUnavailable, "NOT_READY"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{"status": status, "checks": checks})
}
