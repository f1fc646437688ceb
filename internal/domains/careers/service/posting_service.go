package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"consulting-backend/internal/domains/careers/model"
	"consulting-backend/internal/domains/record"
)

type PostingRecords = record.Service[model.Posting, *model.Posting]

type PostingService struct {
	records *PostingRecords
}

func NewPostingService(repo record.Repository[model.Posting]) *PostingService {
	return &PostingService{records: record.NewService[model.Posting, *model.Posting]("jobs", repo)}
}

func (s *PostingService) Records() *PostingRecords { return s.records }

// RecordView bumps the view counter atomically and returns the new count.
func (s *PostingService) RecordView(ctx context.Context, id string) (int, error) {
	views, err := s.records.Increment(ctx, id, "views")
	if errors.Is(err, record.ErrNotFound) {
		return 0, model.NewJobNotFoundError()
	}
	return views, err
}

// OpenPosting returns the posting if it still accepts applications.
func (s *PostingService) OpenPosting(ctx context.Context, id string, now time.Time) (*model.Posting, error) {
	p, err := s.records.Get(ctx, id)
	if errors.Is(err, record.ErrNotFound) {
		return nil, model.NewJobNotFoundError()
	}
	if err != nil {
		return nil, err
	}
	if !p.IsActive || p.Expired(now) {
		return nil, model.NewJobClosedError(p.Title)
	}
	return p, nil
}

// CloseExpired deactivates active postings whose deadline has passed and
// returns how many were closed.
func (s *PostingService) CloseExpired(ctx context.Context) (int, error) {
	now := s.records.Now()
	active, err := s.records.List(ctx, record.ListOptions{Filters: []record.Filter{model.ActiveFilter}})
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, p := range active {
		if !p.Expired(now) {
			continue
		}
		p.IsActive = false
		if err := s.records.Save(ctx, p); err != nil {
			return closed, err
		}
		closed++
		log.Info().Str("job_id", p.ID).Str("title", p.Title).Msg("job posting closed after deadline")
	}
	return closed, nil
}
