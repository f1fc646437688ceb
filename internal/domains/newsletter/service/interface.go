package service

import (
	"context"

	"consulting-backend/internal/domains/newsletter/model"
	"consulting-backend/internal/shared"
)

// ServiceInterface is what the HTTP handler and the worker depend on.
type ServiceInterface interface {
	Subscribe(ctx context.Context, req model.SubscribeRequest) (sub *model.Subscriber, reactivated bool, err error)
	Unsubscribe(ctx context.Context, req model.UnsubscribeRequest) (*model.Subscriber, error)
	ListSubscribers(ctx context.Context, active *bool) ([]*model.Subscriber, error)
	Send(ctx context.Context, req model.SendRequest) (*model.Tally, error)
	SendAsync(ctx context.Context, req model.SendRequest, requestedBy string) (taskID string, err error)
	Records() *Records
}

// Enqueuer schedules a broadcast on the worker.
type Enqueuer interface {
	EnqueueNewsletter(ctx context.Context, p shared.NewsletterPayload) (string, error)
}
