package mock

import (
	"context"

	"github.com/fwojciec/sitetext"
)

var _ sitetext.ProgressStore = (*ProgressStore)(nil)

// ProgressStore is a mock implementation of sitetext.ProgressStore.
type ProgressStore struct {
	FlushFn func(ctx context.Context, snapshot *sitetext.Snapshot) error
}

func (s *ProgressStore) Flush(ctx context.Context, snapshot *sitetext.Snapshot) error {
	return s.FlushFn(ctx, snapshot)
}
