package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSetExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "dashboard:snapshot", map[string]int{"leads": 3}, 30*time.Second))

	var got map[string]int
	found, err := m.Get(ctx, "dashboard:snapshot", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, got["leads"])

	now = now.Add(31 * time.Second)
	found, err = m.Get(ctx, "dashboard:snapshot", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_IncrementExpireTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	n, err := m.Increment(ctx, "login_failed:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, _ = m.Increment(ctx, "login_failed:1.2.3.4")
	assert.Equal(t, int64(2), n)

	ttl, _ := m.TTL(ctx, "login_failed:1.2.3.4")
	assert.Zero(t, ttl)

	require.NoError(t, m.Expire(ctx, "login_failed:1.2.3.4", time.Minute))
	ttl, _ = m.TTL(ctx, "login_failed:1.2.3.4")
	assert.InDelta(t, time.Minute.Seconds(), ttl.Seconds(), 1)
}

func TestMemory_DeletePattern(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.Set(ctx, "dashboard:a", 1, 0)
	_ = m.Set(ctx, "dashboard:b", 2, 0)
	_ = m.Set(ctx, "other", 3, 0)

	require.NoError(t, m.DeletePattern(ctx, "dashboard:*"))

	var v int
	found, _ := m.Get(ctx, "dashboard:a", &v)
	assert.False(t, found)
	found, _ = m.Get(ctx, "other", &v)
	assert.True(t, found)
}
