// Package scheduler drives polling passes on a fixed interval with a single
// worker: ticks that arrive while a pass is still running are skipped.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Pass is one full iteration over the tracked roster.
type Pass interface {
	RunPass(ctx context.Context)
}

type passFunc func(ctx context.Context)

func (f passFunc) RunPass(ctx context.Context) { f(ctx) }

// PassFunc adapts a plain function to the Pass interface.
func PassFunc(f func(ctx context.Context)) Pass { return passFunc(f) }

type Scheduler struct {
	pass     Pass
	interval time.Duration
	logger   zerolog.Logger

	cancel  context.CancelFunc
	done    chan struct{}
	running sync.Mutex
}

func New(pass Pass, interval time.Duration, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		pass:     pass,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the timer loop and runs one pass immediately. It returns
// right away; passes run on a background goroutine.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(ctx)
	s.logger.Info().Dur("interval", s.interval).Msg("scheduler started")
}

// Stop cancels the loop. A pass already in flight observes the cancelled
// context and winds down; partial passes are safe to abandon because a match
// only counts as notified once its insert succeeded.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()

	select {
	case <-s.done:
		s.logger.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("scheduler stop timed out, abandoning in-flight pass")
		return ctx.Err()
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce serializes passes. If the previous pass is still running when the
// next tick fires, the tick is dropped instead of queued.
func (s *Scheduler) runOnce(ctx context.Context) {
	if !s.running.TryLock() {
		s.logger.Warn().Msg("previous pass still running, skipping tick")
		return
	}
	defer s.running.Unlock()

	s.pass.RunPass(ctx)
}
