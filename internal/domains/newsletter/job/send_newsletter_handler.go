package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"consulting-backend/internal/domains/newsletter/model"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared"
)

// Sender is the slice of the newsletter service the worker needs.
type Sender interface {
	Send(ctx context.Context, req model.SendRequest) (*model.Tally, error)
}

// SendNewsletterHandler processes shared.TypeSendNewsletter tasks.
type SendNewsletterHandler struct {
	svc Sender
}

func NewSendNewsletterHandler(svc Sender) *SendNewsletterHandler {
	return &SendNewsletterHandler{svc: svc}
}

func (h *SendNewsletterHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var p shared.NewsletterPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal SendNewsletter payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().Str("subject", p.Subject).Str("requested_by", p.RequestedBy).Msg("Processing newsletter broadcast")

	tally, err := h.svc.Send(ctx, model.SendRequest{
		Subject:     p.Subject,
		Content:     p.Content,
		HTMLContent: p.HTMLContent,
	})
	if err != nil {
		if record.IsValidation(err) {
			return fmt.Errorf("invalid newsletter: %v: %w", err, asynq.SkipRetry)
		}
		return fmt.Errorf("send newsletter: %w", err)
	}

	// a partial failure is not retried: resending would duplicate mail for
	// everyone who already received it
	log.Info().
		Int("total", tally.Total).
		Int("sent", tally.Sent).
		Int("failed", tally.Failed).
		Msg("Newsletter broadcast finished")
	return nil
}
