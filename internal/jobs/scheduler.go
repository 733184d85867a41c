package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/phoenix-adventures/trip-service/internal/config"
	"github.com/phoenix-adventures/trip-service/internal/repository"
)

// Scheduler runs recurring maintenance jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler builds a scheduler with second-granularity cron specs in UTC.
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLogger{logger})),
		),
		logger: logger,
	}
}

// RegisterPurgeInactiveUsers schedules the inactive-account purge job.
func (s *Scheduler) RegisterPurgeInactiveUsers(cfg config.SchedulerConfig, users repository.UserRepository) error {
	job := &purgeInactiveJob{
		users:         users,
		retentionDays: cfg.InactiveRetentionDays,
		logger:        s.logger,
	}
	_, err := s.cron.AddJob(cfg.PurgeInactiveSpec, job)
	return err
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

type purgeInactiveJob struct {
	users         repository.UserRepository
	retentionDays int
	logger        *zap.Logger
}

// Run deletes accounts that were deactivated and never logged back in during
// the retention window.
func (j *purgeInactiveJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)
	purged, err := j.users.PurgeInactive(ctx, cutoff)
	if err != nil {
		j.logger.Error("inactive user purge failed", zap.Error(err))
		return
	}
	if purged > 0 {
		j.logger.Info("purged inactive users",
			zap.Int64("count", purged),
			zap.Time("cutoff", cutoff),
		)
	}
}

// cronLogger adapts zap to the cron logging interface.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
