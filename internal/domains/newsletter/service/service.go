package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"consulting-backend/internal/domains/newsletter/model"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/infrastructure/email"
	"consulting-backend/internal/infrastructure/metrics"
	"consulting-backend/internal/shared"
)

// maxIDAttempts bounds retries on subscriber id collisions.
const maxIDAttempts = 3

type Records = record.Service[model.Subscriber, *model.Subscriber]

type Service struct {
	records *Records
	sender  email.Sender
	outbox  email.Outbox
	queue   Enqueuer
}

// NewService wires the subscriber store. sender is used for broadcasts,
// outbox for welcome mails; queue may be nil when Redis is not configured.
func NewService(repo record.Repository[model.Subscriber], sender email.Sender, outbox email.Outbox, queue Enqueuer) *Service {
	return &Service{
		records: record.NewService[model.Subscriber, *model.Subscriber]("subscribers", repo),
		sender:  sender,
		outbox:  outbox,
		queue:   queue,
	}
}

func (s *Service) Records() *Records { return s.records }

// Subscribe creates a subscriber, or reactivates an unsubscribed one in
// place. An already active email is rejected.
func (s *Service) Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.Subscriber, bool, error) {
	candidate := &model.Subscriber{Email: req.Email, Name: req.Name, IsActive: true}
	candidate.Normalize()
	if err := candidate.Validate(); err != nil {
		return nil, false, record.Invalid(err)
	}

	existing, err := s.records.FindOne(ctx, record.EqFold("email", candidate.Email))
	switch {
	case err == nil && existing.IsActive:
		return nil, false, model.NewAlreadySubscribedError(candidate.Email)

	case err == nil:
		existing.IsActive = true
		if candidate.Name != nil {
			existing.Name = candidate.Name
		}
		if err := s.records.Save(ctx, existing); err != nil {
			return nil, false, err
		}
		metrics.RecordSubscription("reactivated")
		s.welcome(existing)
		return existing, true, nil

	case !errors.Is(err, record.ErrNotFound):
		return nil, false, err
	}

	if err := s.create(ctx, candidate); err != nil {
		return nil, false, err
	}
	metrics.RecordSubscription("subscribed")
	s.welcome(candidate)
	return candidate, false, nil
}

// create inserts sub. Ids are millisecond timestamps, so a conflict without
// a matching email is an id collision and is retried with a later id.
func (s *Service) create(ctx context.Context, sub *model.Subscriber) error {
	for attempt := 1; ; attempt++ {
		err := s.records.Create(ctx, sub)
		if err == nil || !errors.Is(err, record.ErrConflict) {
			return err
		}
		if _, findErr := s.records.FindOne(ctx, record.EqFold("email", sub.Email)); !errors.Is(findErr, record.ErrNotFound) {
			// lost a race with a concurrent subscribe for the same email
			return model.NewAlreadySubscribedError(sub.Email)
		}
		if attempt == maxIDAttempts {
			return err
		}
		sub.ID = model.NewID(s.records.Now().Add(time.Duration(attempt) * time.Millisecond))
	}
}

func (s *Service) welcome(sub *model.Subscriber) {
	if s.outbox == nil {
		return
	}
	w := email.Welcome{Email: sub.Email}
	if sub.Name != nil {
		w.Name = *sub.Name
	}
	s.outbox.Deliver(email.WelcomeMessage(w))
}

// Unsubscribe deactivates the subscriber. Unsubscribing twice is not an error.
func (s *Service) Unsubscribe(ctx context.Context, req model.UnsubscribeRequest) (*model.Subscriber, error) {
	if err := req.Validate(); err != nil {
		return nil, record.Invalid(err)
	}

	sub, err := s.records.FindOne(ctx, record.EqFold("email", req.Email))
	if errors.Is(err, record.ErrNotFound) {
		return nil, model.NewSubscriberNotFoundError()
	}
	if err != nil {
		return nil, err
	}
	if !sub.IsActive {
		return sub, nil
	}

	sub.IsActive = false
	if err := s.records.Save(ctx, sub); err != nil {
		return nil, err
	}
	metrics.RecordSubscription("unsubscribed")
	return sub, nil
}

// ListSubscribers lists every subscriber, or only those matching active.
func (s *Service) ListSubscribers(ctx context.Context, active *bool) ([]*model.Subscriber, error) {
	var opts record.ListOptions
	if active != nil {
		opts.Filters = []record.Filter{record.Eq("is_active", *active)}
	}
	return s.records.List(ctx, opts)
}

// Send mails every active subscriber one at a time. A failed send is
// counted and the loop moves on.
func (s *Service) Send(ctx context.Context, req model.SendRequest) (*model.Tally, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, record.Invalid(err)
	}

	subs, err := s.ListSubscribers(ctx, ptr(true))
	if err != nil {
		return nil, err
	}

	tally := &model.Tally{Total: len(subs)}
	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			// the remaining recipients count as failed
			tally.Failed += tally.Total - tally.Sent - tally.Failed
			break
		}

		msg := email.NewsletterMessage(sub.Email, req.Subject, req.Content, req.HTMLContent)
		if err := s.sender.Send(ctx, msg); err != nil {
			tally.Failed++
			metrics.RecordNewsletterEmail(false)
			log.Warn().Err(err).Str("subscriber_id", sub.ID).Msg("newsletter send failed")
			continue
		}
		tally.Sent++
		metrics.RecordNewsletterEmail(true)
	}

	log.Info().
		Str("subject", req.Subject).
		Int("total", tally.Total).
		Int("sent", tally.Sent).
		Int("failed", tally.Failed).
		Msg("newsletter sent")
	return tally, nil
}

// SendAsync validates and hands the broadcast to the worker.
func (s *Service) SendAsync(ctx context.Context, req model.SendRequest, requestedBy string) (string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return "", record.Invalid(err)
	}
	if s.queue == nil {
		return "", model.NewQueueUnavailableError()
	}

	return s.queue.EnqueueNewsletter(ctx, shared.NewsletterPayload{
		Subject:     req.Subject,
		Content:     req.Content,
		HTMLContent: req.HTMLContent,
		RequestedBy: requestedBy,
	})
}

func ptr[T any](v T) *T { return &v }
