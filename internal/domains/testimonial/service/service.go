package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/domains/testimonial/model"
	"consulting-backend/internal/infrastructure/storage"
)

type Records = record.Service[model.Testimonial, *model.Testimonial]

type Service struct {
	records *Records
	storage storage.Storage
	images  *storage.ImageProcessor
}

func NewService(repo record.Repository[model.Testimonial], store storage.Storage, images *storage.ImageProcessor) *Service {
	return &Service{
		records: record.NewService[model.Testimonial, *model.Testimonial]("testimonials", repo),
		storage: store,
		images:  images,
	}
}

func (s *Service) Records() *Records { return s.records }

// SetImage validates the picture, stores a square thumbnail and points the
// testimonial at it.
func (s *Service) SetImage(ctx context.Context, id string, data []byte) (*model.Testimonial, error) {
	if _, err := s.records.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.images.ValidateImage(data); err != nil {
		return nil, record.Invalid(err)
	}

	thumb, err := s.images.Thumbnail(data)
	if err != nil {
		return nil, record.Invalid(err)
	}

	key := storage.NewKey("testimonials", "thumb.jpg", s.records.Now())
	url, err := s.storage.Upload(ctx, key, thumb, "image/jpeg")
	if err != nil {
		return nil, err
	}

	t, err := s.records.Update(ctx, id, func(t *model.Testimonial) error {
		t.Image = &url
		return nil
	})
	if err != nil {
		if delErr := s.storage.Delete(context.Background(), key); delErr != nil {
			log.Warn().Err(delErr).Str("key", key).Msg("failed to remove orphaned thumbnail")
		}
		return nil, err
	}
	return t, nil
}
