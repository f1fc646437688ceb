package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"consulting-backend/internal/domains/chat/model"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/infrastructure/metrics"
)

type Service struct {
	completer Completer
}

// NewService builds the chat responder. completer may be nil, in which case
// only the keyword responder is used.
func NewService(completer Completer) *Service {
	return &Service{completer: completer}
}

// Reply answers one chat turn. The completion API is tried first when
// configured; any failure falls back to the keyword responder.
func (s *Service) Reply(ctx context.Context, req model.ChatRequest) (*model.ChatReply, error) {
	if err := req.Validate(); err != nil {
		return nil, record.Invalid(err)
	}

	if s.completer != nil {
		answer, err := s.completer.Complete(ctx, req.History, req.Message)
		if err == nil {
			metrics.RecordChatReply(model.SourceOpenAI)
			return &model.ChatReply{Reply: answer, Source: model.SourceOpenAI}, nil
		}
		log.Warn().Err(err).Msg("chat completion failed, using keyword responder")
	}

	reply, topic := Respond(req.Message)
	metrics.RecordChatReply(model.SourceKeyword)
	return &model.ChatReply{Reply: reply, Topic: topic, Source: model.SourceKeyword}, nil
}
