package mock

import (
	"context"

	"github.com/fwojciec/sitetext"
)

var _ sitetext.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of sitetext.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
