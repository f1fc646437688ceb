package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"consulting-backend/internal/shared"
	"consulting-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, password string, db int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

// RegisterCareerJobs schedules the job-posting expiry sweep.
func (s *Scheduler) RegisterCareerJobs(expirySpec string) error {
	payload, err := json.Marshal(shared.CloseExpiredJobsPayload{})
	if err != nil {
		return err
	}

	entryID, err := s.scheduler.Register(
		expirySpec,
		asynq.NewTask(shared.TypeCloseExpiredJobs, payload),
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CloseExpiredJobs job", err)
		return err
	}

	logger.Info("Registered CloseExpiredJobs job", map[string]interface{}{
		"entry_id": entryID,
		"schedule": expirySpec,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
