package mock

import (
	"context"

	"github.com/fwojciec/sitetext"
)

var _ sitetext.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitetext.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*sitetext.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*sitetext.Response, error) {
	return f.FetchFn(ctx, url)
}

var _ sitetext.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker is a mock implementation of sitetext.RobotsChecker.
type RobotsChecker struct {
	AllowedFn func(ctx context.Context, url string) bool
}

func (r *RobotsChecker) Allowed(ctx context.Context, url string) bool {
	return r.AllowedFn(ctx, url)
}
