package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Purger deletes audit runs past their retention window.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type RetentionJobs struct {
	purger   Purger
	interval time.Duration
}

func NewRetentionJobs(purger Purger, interval time.Duration) *RetentionJobs {
	return &RetentionJobs{
		purger:   purger,
		interval: interval,
	}
}

func (j *RetentionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("purge_expired_audit_runs", j.interval, 5*time.Minute, j.PurgeExpiredAuditRuns)
}

func (j *RetentionJobs) PurgeExpiredAuditRuns(ctx context.Context) error {
	deleted, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("purge expired audit runs: %w", err)
	}
	if deleted > 0 {
		slog.Info("Cron: purged expired audit runs", "deleted", deleted)
	}
	return nil
}
