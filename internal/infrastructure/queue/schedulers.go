package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"shopdesk-backend/internal/config"
	"shopdesk-backend/internal/shared"
	"shopdesk-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	if err := s.registerAutoReorderSweepJob(); err != nil {
		return err
	}
	if err := s.registerWarmSnapshotJob(); err != nil {
		return err
	}
	return nil
}

// The sweep runs every few hours; the payload carries no window so each run
// derives its idempotency bucket from the clock. A retried task lands in the
// same bucket and replays as a no-op.
func (s *Scheduler) registerAutoReorderSweepJob() error {
	payload, err := json.Marshal(shared.SweepPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeAutoReorderSweep, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.SweepCron,
		task,
		asynq.Queue(shared.QueueReorder),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register AutoReorderSweep job", err)
		return err
	}

	logger.Info("Registered AutoReorderSweep", map[string]interface{}{"cron": s.jobConfig.SweepCron})
	return nil
}

// Keeps snapshots warm for tenants with active rules so the sweep and
// interactive reads mostly hit a fresh cache.
func (s *Scheduler) registerWarmSnapshotJob() error {
	payload, err := json.Marshal(shared.WarmSnapshotPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeWarmSnapshot, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.WarmSnapshotCron,
		task,
		asynq.Queue(shared.QueueInventory),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register WarmSnapshot job", err)
		return err
	}

	logger.Info("Registered WarmSnapshot", map[string]interface{}{"cron": s.jobConfig.WarmSnapshotCron})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
