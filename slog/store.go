package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitetext"
)

// Ensure LoggingStore implements sitetext.ProgressStore.
var _ sitetext.ProgressStore = (*LoggingStore)(nil)

// LoggingStore wraps a ProgressStore with logging.
type LoggingStore struct {
	next   sitetext.ProgressStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next sitetext.ProgressStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Flush delegates to the wrapped store and logs the snapshot size.
// Failures are logged at error level.
func (s *LoggingStore) Flush(ctx context.Context, snapshot *sitetext.Snapshot) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		attrs := []any{"duration", time.Since(begin)}
		if snapshot != nil {
			attrs = append(attrs,
				"pages", len(snapshot.Pages),
				"discovered", len(snapshot.Discovered),
				"visited", len(snapshot.Visited),
			)
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		s.logger.Log(ctx, level, "flush", attrs...)
	}(time.Now())
	return s.next.Flush(ctx, snapshot)
}
