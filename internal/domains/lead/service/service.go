package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"consulting-backend/internal/domains/lead/model"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/infrastructure/email"
	"consulting-backend/internal/infrastructure/metrics"
)

type Records = record.Service[model.Lead, *model.Lead]

type Service struct {
	records  *Records
	outbox   email.Outbox
	notifyTo string
}

// NewService wires the lead store. notifyTo is the firm inbox; empty
// disables the notification email.
func NewService(repo record.Repository[model.Lead], outbox email.Outbox, notifyTo string) *Service {
	return &Service{
		records:  record.NewService[model.Lead, *model.Lead]("leads", repo),
		outbox:   outbox,
		notifyTo: notifyTo,
	}
}

func (s *Service) Records() *Records { return s.records }

// Submit stores a contact lead and notifies the firm in the background.
func (s *Service) Submit(ctx context.Context, req model.SubmitLeadRequest) (*model.Lead, error) {
	lead := req.ToLead()
	if err := s.records.Create(ctx, lead); err != nil {
		return nil, err
	}

	metrics.RecordContactSubmission()
	log.Info().Str("lead_id", lead.ID).Str("email", lead.Email).Msg("contact lead received")

	if s.notifyTo != "" && s.outbox != nil {
		s.outbox.Deliver(email.LeadNotificationMessage(s.notifyTo, email.LeadNotification{
			Name:    lead.Name,
			Email:   lead.Email,
			Subject: lead.Subject,
			Message: lead.Message,
		}))
	}
	return lead, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.records.Count(ctx)
}
