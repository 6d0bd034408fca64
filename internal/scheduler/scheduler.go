package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"club_harvester/internal/domain"
)

const runTimeout = time.Hour

// Runner performs one harvest run.
type Runner interface {
	Run(ctx context.Context) *domain.RunStats
}

type Scheduler struct {
	runner   Runner
	spec     string
	location *time.Location
	logger   *slog.Logger
}

func NewScheduler(runner Runner, spec string, location *time.Location, logger *slog.Logger) *Scheduler {
	if location == nil {
		location = time.Local
	}
	return &Scheduler{
		runner:   runner,
		spec:     spec,
		location: location,
		logger:   logger,
	}
}

// Start runs the harvest once immediately and then on every cron tick until
// ctx is cancelled. Overlapping ticks are skipped.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New(
		cron.WithLocation(s.location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(s.spec, func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.spec, err)
	}

	s.logger.Info("scheduler started", "schedule", s.spec, "timezone", s.location.String())

	s.runOnce(ctx)

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	stats := s.runner.Run(runCtx)
	if stats != nil && stats.Outcome != domain.OutcomeSuccess {
		s.logger.Error("harvest run failed", "outcome", stats.Outcome, "reason", stats.Reason)
	}
}
