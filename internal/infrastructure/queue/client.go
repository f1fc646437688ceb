package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"consulting-backend/internal/infrastructure/email"
	"consulting-backend/internal/shared"
)

// Client enqueues background work for cmd/worker.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db})}
}

// Enqueue JSON-encodes payload into a task of the given type.
func (c *Client) Enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", taskType, err)
	}

	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, data), opts...)
	if err != nil {
		return nil, fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	log.Debug().Str("task", taskType).Str("task_id", info.ID).Str("queue", info.Queue).Msg("task enqueued")
	return info, nil
}

// EnqueueEmail implements email.Enqueuer.
func (c *Client) EnqueueEmail(ctx context.Context, msg email.Message) error {
	_, err := c.Enqueue(ctx, shared.TypeSendEmail, msg,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	return err
}

// EnqueueNewsletter schedules a full newsletter broadcast and returns the task id.
func (c *Client) EnqueueNewsletter(ctx context.Context, p shared.NewsletterPayload) (string, error) {
	// one broadcast per subject at a time
	info, err := c.Enqueue(ctx, shared.TypeSendNewsletter, p,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(0),
		asynq.Timeout(30*time.Minute),
		asynq.Unique(10*time.Minute),
	)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
