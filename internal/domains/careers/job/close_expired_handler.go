package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Closer is the slice of the posting service the sweep needs.
type Closer interface {
	CloseExpired(ctx context.Context) (int, error)
}

// CloseExpiredJobsHandler processes shared.TypeCloseExpiredJobs tasks.
type CloseExpiredJobsHandler struct {
	svc Closer
}

func NewCloseExpiredJobsHandler(svc Closer) *CloseExpiredJobsHandler {
	return &CloseExpiredJobsHandler{svc: svc}
}

func (h *CloseExpiredJobsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	closed, err := h.svc.CloseExpired(ctx)
	if err != nil {
		return fmt.Errorf("close expired jobs: %w", err)
	}

	log.Info().Int("closed", closed).Msg("Expired job postings closed")
	return nil
}
