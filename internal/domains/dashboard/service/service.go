package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"consulting-backend/internal/domains/dashboard/model"
	"consulting-backend/internal/domains/record"
	"consulting-backend/pkg/cache"
)

const (
	cacheKey = "dashboard:snapshot"
	cacheTTL = 30 * time.Second
)

// CountFunc answers one named dashboard query.
type CountFunc func(ctx context.Context) (int, error)

type Query struct {
	Name  string
	Count CountFunc
}

// CountOf adapts a record service into a dashboard query.
func CountOf[T any, PT record.Ptr[T]](name string, svc *record.Service[T, PT], filters ...record.Filter) Query {
	return Query{
		Name: name,
		Count: func(ctx context.Context) (int, error) {
			return svc.Count(ctx, filters...)
		},
	}
}

type Service struct {
	queries []Query
	cache   cache.Cache
	now     func() time.Time
}

// NewService takes the fixed query set. c may be nil to disable caching.
func NewService(c cache.Cache, queries ...Query) *Service {
	return &Service{queries: queries, cache: c, now: time.Now}
}

// Snapshot runs every query in parallel and merges the results. Any failing
// query fails the snapshot. A cached snapshot younger than 30s is reused.
func (s *Service) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	if s.cache != nil {
		var cached model.Snapshot
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("dashboard cache read failed")
		}
		if found {
			return &cached, nil
		}
	}

	results := make([]int, len(s.queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, q := range s.queries {
		g.Go(func() error {
			n, err := q.Count(gctx)
			if err != nil {
				return fmt.Errorf("dashboard query %s: %w", q.Name, err)
			}
			results[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(s.queries))
	for i, q := range s.queries {
		counts[q.Name] = results[i]
	}
	snap := model.NewSnapshot(counts, s.now().UTC())

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, snap, cacheTTL); err != nil {
			log.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}
	return &snap, nil
}

// Invalidate drops the cached snapshot.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "dashboard:*"); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
}
