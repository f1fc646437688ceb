package service

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"consulting-backend/internal/domains/careers/model"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/infrastructure/email"
	"consulting-backend/internal/infrastructure/metrics"
	"consulting-backend/internal/infrastructure/storage"
)

type ApplicationRecords = record.Service[model.Application, *model.Application]

type ApplicationService struct {
	records  *ApplicationRecords
	postings *PostingService
	storage  storage.Storage
	outbox   email.Outbox
	maxBytes int64
	notifyTo string
}

type ApplicationConfig struct {
	MaxFileBytes int64
	NotifyTo     string
}

func NewApplicationService(
	repo record.Repository[model.Application],
	postings *PostingService,
	store storage.Storage,
	outbox email.Outbox,
	cfg ApplicationConfig,
) *ApplicationService {
	return &ApplicationService{
		records:  record.NewService[model.Application, *model.Application]("applications", repo),
		postings: postings,
		storage:  store,
		outbox:   outbox,
		maxBytes: cfg.MaxFileBytes,
		notifyTo: cfg.NotifyTo,
	}
}

func (s *ApplicationService) Records() *ApplicationRecords { return s.records }

// Apply validates the form and attachments, stores the files, records the
// application and bumps the posting's application counter.
func (s *ApplicationService) Apply(ctx context.Context, req model.ApplyRequest, files []model.File) (*model.Application, error) {
	// Step 1: validate text fields and attachments before touching storage
	if err := req.Validate(); err != nil {
		return nil, record.Invalid(err)
	}
	if err := s.checkFiles(files); err != nil {
		return nil, record.Invalid(err)
	}

	app := req.ToApplication()

	// Step 2: an application for a specific posting must target an open one
	if app.JobID != nil {
		posting, err := s.postings.OpenPosting(ctx, *app.JobID, s.records.Now())
		if err != nil {
			return nil, err
		}
		if app.Position == "" {
			app.Position = posting.Title
		}
		if app.Department == "" {
			app.Department = posting.Department
		}
	}

	// Step 3: store files, cleaning up if anything later fails
	uploaded, err := s.upload(ctx, files, app)
	if err != nil {
		return nil, err
	}

	if err := s.records.Create(ctx, app); err != nil {
		s.cleanup(uploaded)
		return nil, err
	}

	// Step 4: counters and notifications never fail the request
	if app.JobID != nil {
		if _, err := s.postings.Records().Increment(ctx, *app.JobID, "applications"); err != nil {
			log.Error().Err(err).Str("job_id", *app.JobID).Msg("failed to increment application counter")
		}
	}
	metrics.RecordApplication()
	s.notify(app)

	return app, nil
}

func (s *ApplicationService) checkFiles(files []model.File) error {
	errs := validation.Errors{}
	hasResume := false
	for _, f := range files {
		if f.Field == model.FileResume {
			hasResume = true
		}
		if err := storage.CheckUpload(f.Filename, f.Size, s.maxBytes, storage.DocumentExtensions); err != nil {
			errs[f.Field] = err
		}
	}
	if !hasResume {
		errs[model.FileResume] = errors.New("resume is required")
	}
	return errs.Filter()
}

func (s *ApplicationService) upload(ctx context.Context, files []model.File, app *model.Application) ([]string, error) {
	var keys []string
	for _, f := range files {
		key := storage.NewKey("applications", f.Filename, s.records.Now())
		url, err := s.storage.Upload(ctx, key, f.Data, storage.ContentType(f.Filename))
		if err != nil {
			s.cleanup(keys)
			return nil, err
		}
		keys = append(keys, key)

		switch f.Field {
		case model.FileResume:
			app.ResumePath = url
		case model.FileEducation:
			app.EducationPath = &url
		case model.FileCertification:
			app.CertificationPath = &url
		case model.FilePortfolio:
			app.PortfolioPath = &url
		}
	}
	return keys, nil
}

func (s *ApplicationService) cleanup(keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(context.Background(), key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to remove orphaned upload")
		}
	}
}

func (s *ApplicationService) notify(app *model.Application) {
	if s.outbox == nil {
		return
	}
	s.outbox.Deliver(email.ApplicationConfirmationMessage(email.ApplicationConfirmation{
		FullName: app.FullName,
		Email:    app.Email,
		Position: app.Position,
	}))
	if s.notifyTo != "" {
		s.outbox.Deliver(email.ApplicationNotificationMessage(s.notifyTo, email.ApplicationNotification{
			FullName:   app.FullName,
			Email:      app.Email,
			Phone:      app.Phone,
			Position:   app.Position,
			Department: app.Department,
			ResumeURL:  app.ResumePath,
		}))
	}
}

// UpdateStatus moves an application along
// pending -> reviewing -> accepted|rejected (rejected also from pending).
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, req model.UpdateStatusRequest) (*model.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, record.Invalid(err)
	}

	app, err := s.records.Get(ctx, id)
	if errors.Is(err, record.ErrNotFound) {
		return nil, model.NewApplicationNotFoundError()
	}
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(app.Status, req.Status) {
		return nil, model.NewInvalidTransitionError(app.Status, req.Status)
	}

	from := app.Status
	app.Status = req.Status
	if err := s.records.Save(ctx, app); err != nil {
		return nil, err
	}

	log.Info().Str("application_id", id).Str("from", from).Str("to", req.Status).Msg("application status changed")
	return app, nil
}
