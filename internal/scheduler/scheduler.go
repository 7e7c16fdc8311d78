// Package scheduler triggers tracker runs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ndewijer/Portfolio-Tracker/internal/logging"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

// DefaultRunTimeout bounds a single scheduled run.
const DefaultRunTimeout = 10 * time.Minute

// Runner is the job the scheduler triggers. TrackerService satisfies it.
type Runner interface {
	Run(ctx context.Context) (model.RunSummary, error)
}

// Scheduler runs a Runner on a standard five-field cron schedule.
// A tick that fires while the previous run is still going is skipped.
type Scheduler struct {
	cron    *cron.Cron
	expr    string
	timeout time.Duration
	runner  Runner
}

// New creates a Scheduler for the given cron expression, e.g. "30 16 * * 1-5".
// Descriptors such as "@daily" are accepted too.
//
// Returns an error if expr does not parse.
func New(expr string, runner Runner) (*Scheduler, error) {
	s := &Scheduler{
		expr:    expr,
		timeout: DefaultRunTimeout,
		runner:  runner,
	}

	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := s.cron.AddFunc(expr, s.tick); err != nil {
		return nil, fmt.Errorf("invalid tracker schedule %q: %w", expr, err)
	}
	return s, nil
}

// Start begins firing runs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	logging.Info().Str("schedule", s.expr).Time("next_run", s.Next()).Msg("tracker schedule started")
}

// Stop stops the schedule and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the next time a run fires, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	summary, err := s.runner.Run(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("scheduled tracker run failed")
		return
	}
	logging.Info().
		Str("run_id", summary.RunID).
		Int("degraded", len(summary.DegradedHoldings)).
		Msg("scheduled tracker run completed")
}
