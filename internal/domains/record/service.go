package record

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Ptr constrains PT to *T implementing Entity, so generic code can call
// Entity methods on records it allocates itself.
type Ptr[T any] interface {
	*T
	Entity
}

// Service applies the per-record lifecycle (normalize, validate, hooks,
// id assignment) on top of a Repository.
type Service[T any, PT Ptr[T]] struct {
	name string
	repo Repository[T]
	now  func() time.Time
}

func NewService[T any, PT Ptr[T]](name string, repo Repository[T]) *Service[T, PT] {
	return &Service[T, PT]{
		name: name,
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock swaps the time source.
func (s *Service[T, PT]) WithClock(now func() time.Time) *Service[T, PT] {
	s.now = now
	return s
}

func (s *Service[T, PT]) Name() string { return s.name }

func (s *Service[T, PT]) Now() time.Time { return s.now() }

func (s *Service[T, PT]) Repository() Repository[T] { return s.repo }

func (s *Service[T, PT]) List(ctx context.Context, opts ListOptions) ([]*T, error) {
	return s.repo.List(ctx, opts)
}

func (s *Service[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service[T, PT]) FindOne(ctx context.Context, filters ...Filter) (*T, error) {
	return s.repo.FindOne(ctx, filters...)
}

func (s *Service[T, PT]) Count(ctx context.Context, filters ...Filter) (int, error) {
	return s.repo.Count(ctx, filters...)
}

// Create prepares and inserts rec. A blank id is replaced with a UUID after
// BeforeCreate had the chance to assign its own.
func (s *Service[T, PT]) Create(ctx context.Context, rec *T) error {
	p := PT(rec)
	if err := prepare(p); err != nil {
		return err
	}
	if h, ok := any(p).(CreateHook); ok {
		h.BeforeCreate(s.now())
	}
	if p.GetID() == "" {
		p.SetID(uuid.NewString())
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return err
	}

	log.Info().Str("resource", s.name).Str("id", p.GetID()).Msg("record created")
	return nil
}

// Update loads the record, lets apply mutate it, then persists the result.
// The id cannot be changed by apply.
func (s *Service[T, PT]) Update(ctx context.Context, id string, apply func(*T) error) (*T, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(rec); err != nil {
		return nil, Invalid(err)
	}
	PT(rec).SetID(id)
	if err := s.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Save persists an already loaded record.
func (s *Service[T, PT]) Save(ctx context.Context, rec *T) error {
	p := PT(rec)
	if err := prepare(p); err != nil {
		return err
	}
	if h, ok := any(p).(UpdateHook); ok {
		h.BeforeUpdate(s.now())
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return err
	}

	log.Info().Str("resource", s.name).Str("id", p.GetID()).Msg("record updated")
	return nil
}

func (s *Service[T, PT]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("resource", s.name).Str("id", id).Msg("record deleted")
	return nil
}

func (s *Service[T, PT]) Increment(ctx context.Context, id, column string) (int, error) {
	return s.repo.Increment(ctx, id, column)
}

func prepare(rec any) error {
	if n, ok := rec.(Normalizer); ok {
		n.Normalize()
	}
	if v, ok := rec.(Validator); ok {
		return Invalid(v.Validate())
	}
	return nil
}
