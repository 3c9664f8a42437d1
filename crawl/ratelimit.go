package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/sitetext"
	"golang.org/x/time/rate"
)

var _ sitetext.Limiter = (*DelayLimiter)(nil)

// DelayLimiter enforces a fixed politeness delay between requests using a
// token bucket with a burst of 1. The bucket starts empty, so the first
// request waits a full delay too.
type DelayLimiter struct {
	limiter *rate.Limiter
}

// NewDelayLimiter creates a DelayLimiter that allows one request per delay.
// A delay of zero or less disables waiting.
func NewDelayLimiter(delay time.Duration) *DelayLimiter {
	if delay <= 0 {
		return &DelayLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	limiter := rate.NewLimiter(rate.Every(delay), 1)
	limiter.Allow()
	return &DelayLimiter{limiter: limiter}
}

// Wait blocks until the delay since the previous request has elapsed.
// Returns an error if the context is canceled before the wait completes.
func (d *DelayLimiter) Wait(ctx context.Context) error {
	return d.limiter.Wait(ctx)
}
