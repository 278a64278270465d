// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultPurgeSpec runs the history purge every day at 03:00.
const DefaultPurgeSpec = "0 0 3 * * *"

// Purger deletes judgment history older than the retention period.
type Purger interface {
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron      *cron.Cron
	purger    Purger
	retention time.Duration
	ctx       context.Context
}

// NewScheduler creates a new Scheduler. Jobs run with ctx.
func NewScheduler(ctx context.Context, p Purger, retention time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		purger:    p,
		retention: retention,
		ctx:       ctx,
	}
}

// Register adds the purge job with a six-field cron spec.
func (s *Scheduler) Register(spec string) error {
	if spec == "" {
		spec = DefaultPurgeSpec
	}
	if s.retention <= 0 {
		return fmt.Errorf("register purge task: retention must be positive, got %s", s.retention)
	}
	if _, err := s.cron.AddFunc(spec, s.PurgeNow); err != nil {
		return fmt.Errorf("register purge task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}

// PurgeNow runs the purge job immediately.
func (s *Scheduler) PurgeNow() {
	n, err := s.purger.Purge(s.ctx, s.retention)
	if err != nil {
		slog.Error("history purge failed", "error", err)
		return
	}
	slog.Info("history purged", "deleted", n, "retention", s.retention)
}
