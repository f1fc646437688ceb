package email

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Outbox delivers notifications off the request path. Failures are logged,
// never returned: a notification must not fail the request that caused it.
type Outbox interface {
	Deliver(msg Message)
}

// Enqueuer hands a message to the background worker.
type Enqueuer interface {
	EnqueueEmail(ctx context.Context, msg Message) error
}

type goroutineOutbox struct {
	sender  Sender
	timeout time.Duration
}

// NewGoroutineOutbox sends each message from its own goroutine.
func NewGoroutineOutbox(sender Sender, timeout time.Duration) Outbox {
	return &goroutineOutbox{sender: sender, timeout: timeout}
}

func (o *goroutineOutbox) Deliver(msg Message) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
		defer cancel()

		if err := o.sender.Send(ctx, msg); err != nil {
			log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("background email failed")
		}
	}()
}

type queueOutbox struct {
	queue    Enqueuer
	fallback Outbox
}

// NewQueueOutbox enqueues messages for the worker and falls back to a
// direct send when the queue is unreachable.
func NewQueueOutbox(queue Enqueuer, fallback Outbox) Outbox {
	return &queueOutbox{queue: queue, fallback: fallback}
}

func (o *queueOutbox) Deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := o.queue.EnqueueEmail(ctx, msg); err != nil {
		log.Warn().Err(err).Str("to", msg.To).Msg("enqueue email failed, sending directly")
		o.fallback.Deliver(msg)
	}
}
