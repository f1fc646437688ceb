package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consulting-backend/internal/domains/dashboard/model"
	"consulting-backend/internal/domains/dashboard/service"
	"consulting-backend/pkg/cache"
)

func fixed(name string, n int, calls *atomic.Int32) service.Query {
	return service.Query{Name: name, Count: func(context.Context) (int, error) {
		calls.Add(1)
		return n, nil
	}}
}

func TestSnapshot_MergesNamedQueries(t *testing.T) {
	var calls atomic.Int32
	svc := service.NewService(nil,
		fixed(model.QueryLeads, 3, &calls),
		fixed(model.QuerySubscribers, 10, &calls),
		fixed(model.QueryActiveSubscribers, 7, &calls),
		fixed(model.QueryPendingApplications, 2, &calls),
	)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Leads)
	assert.Equal(t, 10, snap.Subscribers)
	assert.Equal(t, 7, snap.ActiveSubscribers)
	assert.Equal(t, 2, snap.PendingApplications)
	assert.Zero(t, snap.Jobs)
	assert.False(t, snap.GeneratedAt.IsZero())
	assert.Equal(t, int32(4), calls.Load())
}

func TestSnapshot_FailsWhenAnyQueryFails(t *testing.T) {
	var calls atomic.Int32
	svc := service.NewService(nil,
		fixed(model.QueryLeads, 3, &calls),
		service.Query{Name: model.QueryJobs, Count: func(context.Context) (int, error) {
			return 0, errors.New("db down")
		}},
	)

	_, err := svc.Snapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), model.QueryJobs)
}

func TestSnapshot_IsCached(t *testing.T) {
	var calls atomic.Int32
	svc := service.NewService(cache.NewMemory(), fixed(model.QueryLeads, 1, &calls))
	ctx := context.Background()

	first, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	second, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first.Leads, second.Leads)

	svc.Invalidate(ctx)
	_, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}
