package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"consulting-backend/internal/infrastructure/email"
)

// SendEmailHandler processes shared.TypeSendEmail tasks.
type SendEmailHandler struct {
	sender email.Sender
}

func NewSendEmailHandler(sender email.Sender) *SendEmailHandler {
	return &SendEmailHandler{sender: sender}
}

func (h *SendEmailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var msg email.Message
	if err := json.Unmarshal(task.Payload(), &msg); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal SendEmail payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("Processing email")

	if err := h.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
