// Package backoff provides the pacing delays used between fetch attempts:
// an exponential curve with a bounded random jitter. The delay runs before
// every attempt, including the first, so bursts of identical requests spread
// out even when nothing has failed yet.
package backoff

import (
	"context"
	"math/rand/v2"
	"time"
)

// Jitter bounds added to every delay.
const (
	jitterMin = 100 * time.Millisecond
	jitterMax = 300 * time.Millisecond
)

// Policy computes per-attempt delays from a base duration.
// It is safe for concurrent use.
type Policy struct {
	Base time.Duration
}

// Delay returns the pacing delay before the given attempt (0-based):
// Base * 2^attempt plus a random jitter in [100ms, 300ms).
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := p.Base * (1 << uint(attempt))
	return d + jitterMin + rand.N(jitterMax-jitterMin)
}

// Sleep blocks for the attempt's delay, scaled by factor, or until the
// context is cancelled. Factor 2 is used after a rate-limit response.
func (p Policy) Sleep(ctx context.Context, attempt int, factor int) error {
	if factor < 1 {
		factor = 1
	}
	d := p.Delay(attempt) * time.Duration(factor)

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
