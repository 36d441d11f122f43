// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline provides the cross-cutting call machinery shared by
// all source clients: a per-operation rate limiter, a bounded
// exponential-backoff retry policy, and an Execute helper that
// sequences them around a network call.
package pipeline

import (
	"context"
	"time"
)

// Limiter enforces a minimum interval between successive invocations
// of one wrapped operation. Each client operation owns its own Limiter;
// two limiters never interfere.
//
// The last-called timestamp is mutated without locking. Source clients
// run single-threaded by design, so a Limiter shared by concurrent
// callers needs external synchronization.
type Limiter struct {
	interval time.Duration
	last     time.Time

	// now and sleep are injectable for tests.
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewLimiter returns a Limiter allowing at most callsPerSecond
// invocations per second. A non-positive rate disables limiting.
func NewLimiter(callsPerSecond float64) *Limiter {
	var interval time.Duration
	if callsPerSecond > 0 {
		interval = time.Duration(float64(time.Second) / callsPerSecond)
	}
	return &Limiter{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Wait blocks until at least the configured interval has elapsed since
// the previous completed call. It returns early with ctx.Err() if the
// context is cancelled during the wait.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.interval <= 0 || l.last.IsZero() {
		return nil
	}
	remaining := l.interval - l.now().Sub(l.last)
	if remaining <= 0 {
		return nil
	}
	return l.sleep(ctx, remaining)
}

// Mark records the completion time of the current call.
func (l *Limiter) Mark() {
	l.last = l.now()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
