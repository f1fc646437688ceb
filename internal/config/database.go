package config

import (
	"fmt"
	"strconv"
	"time"

	"consulting-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig reads pool and retry tuning for the Postgres store.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	url := getEnv("DATABASE_URL", "")
	if url == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	ints := map[string]int{
		"DB_MAX_CONNECTIONS": 10,
		"DB_MIN_CONNECTIONS": 2,
		"DB_MAX_RETRIES":     5,
	}
	for key, def := range ints {
		v, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		ints[key] = v
	}

	durations := map[string]string{
		"DB_MAX_CONN_LIFETIME":   "30m",
		"DB_MAX_CONN_IDLE_TIME":  "5m",
		"DB_HEALTH_CHECK_PERIOD": "1m",
		"DB_RETRY_DELAY":         "1s",
		"DB_CONNECT_TIMEOUT":     "10s",
	}
	parsed := make(map[string]time.Duration, len(durations))
	for key, def := range durations {
		d, err := time.ParseDuration(getEnv(key, def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		parsed[key] = d
	}

	return &database.DBConfig{
		URL:               url,
		MaxConns:          int32(ints["DB_MAX_CONNECTIONS"]),
		MinConns:          int32(ints["DB_MIN_CONNECTIONS"]),
		MaxConnLifetime:   parsed["DB_MAX_CONN_LIFETIME"],
		MaxConnIdleTime:   parsed["DB_MAX_CONN_IDLE_TIME"],
		HealthCheckPeriod: parsed["DB_HEALTH_CHECK_PERIOD"],
		MaxRetries:        ints["DB_MAX_RETRIES"],
		RetryDelay:        parsed["DB_RETRY_DELAY"],
		ConnectTimeout:    parsed["DB_CONNECT_TIMEOUT"],
	}, nil
}
