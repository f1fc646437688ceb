package cache

import (
	"context"
	"time"
)

// Cache is the contract for the non-critical cache layer. Implementations:
// Redis (infrastructure/cache) and an in-process Memory fallback.
type Cache interface {
	// Get unmarshals the cached value into dest. found is false on a miss
	// and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob such as "dashboard:*".
	DeletePattern(ctx context.Context, pattern string) error

	// Increment bumps an integer counter, creating it at 1.
	Increment(ctx context.Context, key string) (int64, error)

	Expire(ctx context.Context, key string, ttl time.Duration) error

	// TTL returns the remaining lifetime, or 0 when the key is absent.
	TTL(ctx context.Context, key string) (time.Duration, error)

	Ping(ctx context.Context) error
}
