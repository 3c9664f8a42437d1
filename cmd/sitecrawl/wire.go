package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/sitetext"
	"github.com/fwojciec/sitetext/crawl"
	"github.com/fwojciec/sitetext/fs"
	"github.com/fwojciec/sitetext/goquery"
	"github.com/fwojciec/sitetext/htmltomarkdown"
	sitetexthttp "github.com/fwojciec/sitetext/http"
	"github.com/fwojciec/sitetext/prometheus"
	"github.com/fwojciec/sitetext/readability"
	"github.com/fwojciec/sitetext/robotstxt"
	sitetextslog "github.com/fwojciec/sitetext/slog"
	"github.com/fwojciec/sitetext/trafilatura"
	"github.com/fwojciec/sitetext/yaml"
)

func (f FetchFlags) userAgent() string {
	if f.UserAgent != "" {
		return f.UserAgent
	}
	return sitetexthttp.DefaultUserAgent
}

// newCrawler wires the fetch-side services every mode shares. delay is in
// seconds.
func (f FetchFlags) newCrawler(layout fs.Layout, delay float64, logger *slog.Logger) *crawl.Crawler {
	fetcher := sitetexthttp.NewFetcher(
		sitetexthttp.WithTimeout(f.Timeout),
		sitetexthttp.WithUserAgent(f.userAgent()),
	)

	c := &crawl.Crawler{
		Fetcher: sitetextslog.NewLoggingFetcher(fetcher, logger),
		Store:   sitetextslog.NewLoggingStore(fs.NewStore(f.Output, layout), logger),
		Limiter: crawl.NewDelayLimiter(time.Duration(delay * float64(time.Second))),
		Logger:  logger,
	}
	if f.Robots {
		c.Robots = robotstxt.NewAgent(f.userAgent(), robotstxt.WithLogger(logger))
	}
	return c
}

// newExtractor returns the configured extraction engine and, for markdown
// output, the converter. domain is used to absolutize markdown links and
// may be empty.
func (f ExtractFlags) newExtractor(scope *sitetext.Scope, domain string, logger *slog.Logger) (sitetext.Extractor, sitetext.Converter, error) {
	var extractor sitetext.Extractor
	switch f.Extractor {
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	case "readability":
		extractor = readability.NewExtractor()
	default:
		filters := sitetext.DefaultFilters()
		if f.Filters != "" {
			loaded, err := yaml.LoadFilters(f.Filters)
			if err != nil {
				return nil, nil, fmt.Errorf("load filters: %w", err)
			}
			filters = loaded
		}
		extractor = goquery.NewExtractor(goquery.WithFilters(filters), goquery.WithScope(scope))
	}

	var converter sitetext.Converter
	if f.Format == "markdown" {
		var opts []htmltomarkdown.Option
		if domain != "" {
			opts = append(opts, htmltomarkdown.WithDomain(domain))
		}
		converter = htmltomarkdown.NewConverter(opts...)
	}

	return sitetextslog.NewLoggingExtractor(extractor, logger), converter, nil
}

// progress reports failures to stderr and feeds the metrics, if any.
func progress(deps *Dependencies, metrics *prometheus.Metrics) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		if metrics != nil {
			metrics.Observe(event)
		}
		switch event.Type {
		case crawl.ProgressFailed, crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", crawl.ShortURL(event.URL, 100), sitetext.ErrorMessage(event.Error))
		case crawl.ProgressFlushed:
			if event.Error != nil {
				fmt.Fprintf(deps.Stderr, "  save failed: %v\n", event.Error)
			}
		}
	}
}

// newMetrics returns nil when no metrics file was requested.
func (f FetchFlags) newMetrics(mode crawl.Mode) *prometheus.Metrics {
	if f.Metrics == "" {
		return nil
	}
	return prometheus.NewMetrics(mode.String())
}

func (f FetchFlags) writeMetrics(deps *Dependencies, metrics *prometheus.Metrics) {
	if metrics == nil {
		return
	}
	if err := metrics.WriteTextfile(f.Metrics); err != nil {
		deps.Logger.Error("metrics write failed", "path", f.Metrics, "err", err)
	}
}

// finish prints the run summary. An interrupted run still saved its
// progress, so the summary is printed before the error is returned.
func (f FetchFlags) finish(deps *Dependencies, result *crawl.Result, err error, summary string) error {
	fmt.Fprintf(deps.Stdout, "%s (%d failed, %d skipped) in %s\n", summary, result.Failed, result.Skipped, absDir(f.Output))
	if result.FlushErrors > 0 {
		fmt.Fprintf(deps.Stderr, "warning: %d progress snapshots could not be saved\n", result.FlushErrors)
	}
	if err != nil {
		fmt.Fprintln(deps.Stderr, "interrupted; progress saved")
	}
	return err
}

func absDir(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
