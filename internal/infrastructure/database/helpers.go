package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	pgx "github.com/jackc/pgx/v5"
)

// Ping verifies the pool can still reach the server. Used by the readiness probe.
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close is safe to call more than once.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Println("[DATABASE] Closing database connection pool...")
	db.Pool.Close()
	db.Pool = nil
	log.Println("[DATABASE] Connection pool closed")
	return nil
}

// PoolStats is a point-in-time view of the pool.
type PoolStats struct {
	AcquiredConns        int32         `json:"acquiredConns"`
	IdleConns            int32         `json:"idleConns"`
	TotalConns           int32         `json:"totalConns"`
	MaxConns             int32         `json:"maxConns"`
	AcquireCount         int64         `json:"acquireCount"`
	CanceledAcquireCount int64         `json:"canceledAcquireCount"`
	AvgAcquire           time.Duration `json:"avgAcquireNs"`
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquiredConns:        raw.AcquiredConns(),
		IdleConns:            raw.IdleConns(),
		TotalConns:           raw.TotalConns(),
		MaxConns:             raw.MaxConns(),
		AcquireCount:         raw.AcquireCount(),
		CanceledAcquireCount: raw.CanceledAcquireCount(),
		AvgAcquire:           avgDuration(raw.AcquireDuration(), raw.AcquireCount()),
	}, nil
}

func avgDuration(total time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return total / time.Duration(count)
}

// ExecuteInTransaction runs fn in a transaction, committing on success and
// rolling back on any error.
func (db *PostgresDB) ExecuteInTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Printf("[DATABASE] Transaction rollback error: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// MonitorPoolHealth logs pool saturation until ctx is done. observe, if
// set, receives every sample (used to export pool gauges).
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration, observe func(*PoolStats)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats, err := db.Stats()
			if err != nil {
				log.Printf("[MONITOR] Failed to get stats: %v", err)
				continue
			}
			if observe != nil {
				observe(stats)
			}
			if stats.MaxConns > 0 {
				if pct := float64(stats.AcquiredConns) / float64(stats.MaxConns) * 100; pct > 80 {
					log.Printf("[MONITOR] HIGH POOL UTILIZATION: %.1f%% (%d/%d)", pct, stats.AcquiredConns, stats.MaxConns)
				}
			}
			if stats.AvgAcquire > 100*time.Millisecond {
				log.Printf("[MONITOR] HIGH ACQUIRE LATENCY: %v", stats.AvgAcquire)
			}
		case <-ctx.Done():
			log.Println("[MONITOR] Stopping pool health monitoring")
			return
		}
	}
}
