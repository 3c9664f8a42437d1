// Package slog provides logging decorators for the sitetext interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitetext"
)

// Ensure LoggingFetcher implements sitetext.Fetcher.
var _ sitetext.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   sitetext.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next sitetext.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *sitetext.Response, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
		}
		if resp != nil {
			attrs = append(attrs, "status", resp.StatusCode, "bytes", len(resp.HTML))
		}
		if err != nil {
			attrs = append(attrs, "code", sitetext.ErrorCode(err), "err", err)
		}
		f.logger.Debug("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
