package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/sitetext"
)

// Ensure LoggingExtractor implements sitetext.Extractor.
var _ sitetext.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   sitetext.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next sitetext.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the result size.
func (e *LoggingExtractor) Extract(html string, pageURL string) (result *sitetext.ExtractResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", pageURL,
			"duration", time.Since(begin),
		}
		if result != nil {
			attrs = append(attrs,
				"title", result.Title,
				"bytes", len(result.Text),
				"links", len(result.Links),
			)
			if result.Text == "" {
				attrs = append(attrs, "empty", true)
			}
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
