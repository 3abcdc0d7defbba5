package enrich

import (
	"context"
	"time"
)

// RateLimiter paces sequential calls against rate-limited services. Wait
// blocks until the next call may proceed or the context is done.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// FixedDelayLimiter waits a fixed duration between calls.
type FixedDelayLimiter struct {
	Delay time.Duration
}

// NewFixedDelayLimiter creates a limiter with the given inter-call delay.
func NewFixedDelayLimiter(delay time.Duration) *FixedDelayLimiter {
	return &FixedDelayLimiter{Delay: delay}
}

// Wait sleeps for the configured delay, honoring context cancellation.
func (l *FixedDelayLimiter) Wait(ctx context.Context) error {
	if l.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(l.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NopLimiter never waits. Tests use it to keep enrichment loops fast.
type NopLimiter struct{}

// Wait returns immediately.
func (NopLimiter) Wait(ctx context.Context) error {
	return nil
}
