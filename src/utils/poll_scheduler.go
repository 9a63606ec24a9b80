package utils

import (
	"context"
	"time"

	"wellness-observer/src/logger"
)

// -----------------------------------------------------------------------------
// PollScheduler drives the fulfillment sweep on a fixed interval. One sweep
// runs at startup so queued requests never wait a full interval after a
// restart.
// -----------------------------------------------------------------------------

type PollScheduler struct {
	Interval time.Duration
	Logger   *logger.Logger
	sweep    func(ctx context.Context) error
}

// -----------------------------------------------------------------------------

func NewPollScheduler(intervalSeconds int, sweep func(ctx context.Context) error) *PollScheduler {
	if intervalSeconds <= 0 {
		intervalSeconds = 60
	}
	return &PollScheduler{
		Interval: time.Duration(intervalSeconds) * time.Second,
		Logger:   logger.NewLogger("PollScheduler"),
		sweep:    sweep,
	}
}

// -----------------------------------------------------------------------------

// Run blocks until ctx is cancelled, invoking the sweep once immediately and
// then on every tick. Sweep errors are logged, never fatal.
func (ps *PollScheduler) Run(ctx context.Context) {
	ps.Logger.Info("Polling every %v", ps.Interval)

	ps.runOnce(ctx)

	ticker := time.NewTicker(ps.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ps.Logger.Info("Scheduler stopped: %v", ctx.Err())
			return
		case <-ticker.C:
			ps.runOnce(ctx)
		}
	}
}

// -----------------------------------------------------------------------------

func (ps *PollScheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := ps.sweep(ctx); err != nil && ctx.Err() == nil {
		ps.Logger.Error("Sweep failed: %v", err)
	}
}
