package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs recurring batch jobs on a cron expression, for setups
// where fresh exports land on a fixed cadence rather than being watched.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: slog.Default().With("component", "pipeline.scheduler"),
	}
}

// Run schedules the job on the given standard cron expression and blocks
// until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, spec string, job func()) error {
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}

	s.cron.Start()
	s.logger.Info("schedule active", "cron", spec)

	<-ctx.Done()

	stopCtx := s.cron.Stop()
	// Let an in-flight run finish before returning.
	<-stopCtx.Done()
	s.logger.Info("schedule stopped")
	return ctx.Err()
}
