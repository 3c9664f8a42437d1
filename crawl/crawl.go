// Package crawl provides site crawling orchestration.
// It coordinates the breadth-first frontier, polite fetching, content
// extraction and progress snapshots of a single crawl run.
package crawl

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/fwojciec/sitetext"
)

// Mode selects what a crawl run produces.
type Mode int

const (
	// ModeText follows links and extracts the text of every page.
	ModeText Mode = iota
	// ModeURLs follows links and records which URLs could be fetched.
	ModeURLs
	// ModeList extracts the text of a fixed URL list without following links.
	ModeList
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeURLs:
		return "urls"
	case ModeList:
		return "list"
	}
	return "unknown"
}

// DefaultMaxDepth is the default traversal depth ceiling.
const DefaultMaxDepth = 5

// Crawler orchestrates a single-worker crawl of one site section.
type Crawler struct {
	Fetcher   sitetext.Fetcher
	Extractor sitetext.Extractor
	Store     sitetext.ProgressStore
	Limiter   sitetext.Limiter

	// Links is required by CrawlURLs. CrawlText uses it only for pages
	// whose extraction reports no links.
	Links sitetext.LinkDiscoverer

	// Converter, when set, renders the main-content HTML as Markdown
	// instead of using the extractor's plain text.
	Converter sitetext.Converter

	// Robots, when set, is consulted before every fetch.
	Robots sitetext.RobotsChecker

	Logger *slog.Logger

	MaxDepth int
	Queries  sitetext.QueryPolicy

	// FlushEvery is the number of processed tasks between snapshots.
	// Defaults to 1 in ModeText and 10 otherwise.
	FlushEvery int
}

// Result holds the outcome of a crawl run.
type Result struct {
	Processed   int
	Saved       int
	Failed      int
	Skipped     int
	FlushErrors int
	Bytes       int

	// Discovered is the number of URLs that answered with HTTP 200.
	Discovered int
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type      ProgressType
	URL       string
	Depth     int
	Completed int
	Queued    int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressCompleted ProgressType = iota
	ProgressFailed
	ProgressSkipped
	ProgressFlushed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// run holds the mutable state of one crawl run. It is owned by the
// traversal loop.
type run struct {
	mode       Mode
	frontier   *Frontier
	pages      []sitetext.Page
	discovered []string
	result     Result
	progress   ProgressFunc
}

func (r *run) emit(event ProgressEvent) {
	if r.progress == nil {
		return
	}
	event.Completed = r.result.Processed
	event.Queued = r.frontier.Len()
	r.progress(event)
}

// CrawlText crawls breadth-first from seed and extracts the text of every
// in-scope page.
func (c *Crawler) CrawlText(ctx context.Context, seed string, progress ProgressFunc) (*Result, error) {
	return c.crawl(ctx, ModeText, seed, progress)
}

// CrawlURLs crawls breadth-first from seed and records every in-scope URL
// that answered with HTTP 200. No text is extracted.
func (c *Crawler) CrawlURLs(ctx context.Context, seed string, progress ProgressFunc) (*Result, error) {
	return c.crawl(ctx, ModeURLs, seed, progress)
}

// ExtractList extracts the text of each URL in urls, in order, without
// following links. Duplicate URLs are processed once.
func (c *Crawler) ExtractList(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if err := c.validate(ModeList); err != nil {
		return nil, err
	}
	frontier := NewFrontier(nil, 0, c.Queries)
	for _, u := range urls {
		if !frontier.Enqueue(u, 0) {
			c.logger().Warn("skipping invalid URL", "url", u)
		}
	}
	return c.run(ctx, &run{mode: ModeList, frontier: frontier, progress: progress})
}

func (c *Crawler) crawl(ctx context.Context, mode Mode, seed string, progress ProgressFunc) (*Result, error) {
	if err := c.validate(mode); err != nil {
		return nil, err
	}
	scope, err := sitetext.NewScope(seed)
	if err != nil {
		return nil, err
	}
	frontier := NewFrontier(scope, c.MaxDepth, c.Queries)
	if !frontier.Enqueue(seed, 0) {
		return nil, sitetext.Errorf(sitetext.EINVALID, "seed URL %q not admitted", seed)
	}
	c.logger().Info("crawl started",
		"mode", mode.String(),
		"seed", seed,
		"domain", scope.Domain,
		"base_path", scope.BasePath,
		"max_depth", c.MaxDepth,
	)
	return c.run(ctx, &run{mode: mode, frontier: frontier, progress: progress})
}

func (c *Crawler) validate(mode Mode) error {
	if c.Fetcher == nil {
		return sitetext.Errorf(sitetext.EINVALID, "crawler fetcher required")
	}
	if c.Store == nil {
		return sitetext.Errorf(sitetext.EINVALID, "crawler progress store required")
	}
	if mode == ModeURLs && c.Links == nil {
		return sitetext.Errorf(sitetext.EINVALID, "crawler link discoverer required")
	}
	if mode != ModeURLs && c.Extractor == nil {
		return sitetext.Errorf(sitetext.EINVALID, "crawler extractor required")
	}
	if c.MaxDepth < 0 {
		return sitetext.Errorf(sitetext.EINVALID, "max depth must not be negative")
	}
	if c.Queries != "" {
		if err := c.Queries.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Crawler) run(ctx context.Context, r *run) (*Result, error) {
	flushEvery := c.FlushEvery
	if flushEvery <= 0 {
		flushEvery = 10
		if r.mode == ModeText {
			flushEvery = 1
		}
	}

	var runErr error
	for {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		task, ok := r.frontier.Next()
		if !ok {
			break
		}
		if err := c.process(ctx, r, task); err != nil {
			runErr = err
			break
		}
		r.result.Processed++
		if r.result.Processed%flushEvery == 0 {
			c.flush(ctx, r)
		}
	}

	// The final snapshot is written even when the run was interrupted.
	c.flush(context.WithoutCancel(ctx), r)

	r.emit(ProgressEvent{Type: ProgressFinished})
	c.logger().Info("crawl finished",
		"mode", r.mode.String(),
		"processed", r.result.Processed,
		"saved", r.result.Saved,
		"failed", r.result.Failed,
		"skipped", r.result.Skipped,
		"visited", len(r.frontier.Visited()),
	)

	r.result.Discovered = len(r.discovered)
	result := r.result
	return &result, runErr
}

// process handles one task. Per-URL failures are recorded, not returned;
// the returned error only signals that the run was canceled.
func (c *Crawler) process(ctx context.Context, r *run, task sitetext.Task) error {
	log := c.logger().With("url", task.URL, "depth", task.Depth)

	if c.Robots != nil && !c.Robots.Allowed(ctx, task.URL) {
		r.result.Skipped++
		err := sitetext.Errorf(sitetext.EROBOTS, "disallowed by robots.txt: %s", task.URL)
		log.Warn("skipping URL", "err", err)
		r.emit(ProgressEvent{Type: ProgressSkipped, URL: task.URL, Depth: task.Depth, Error: err})
		return nil
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	log.Info("processing")
	resp, err := c.Fetcher.Fetch(ctx, task.URL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var ctErr *sitetext.ContentTypeError
		if errors.As(err, &ctErr) {
			// A non-HTML page still answered with 200.
			if r.mode == ModeURLs {
				r.discovered = append(r.discovered, task.URL)
			}
			r.result.Skipped++
			log.Warn("skipping non-HTML content", "content_type", ctErr.ContentType)
			r.emit(ProgressEvent{Type: ProgressSkipped, URL: task.URL, Depth: task.Depth, Error: err})
			return nil
		}
		r.result.Failed++
		log.Warn("fetch failed", "code", sitetext.ErrorCode(err), "err", err)
		r.emit(ProgressEvent{Type: ProgressFailed, URL: task.URL, Depth: task.Depth, Error: err})
		return nil
	}

	if r.mode == ModeURLs {
		c.follow(r, task, c.discover(task.URL, resp.HTML, log), log)
		r.discovered = append(r.discovered, task.URL)
		r.emit(ProgressEvent{Type: ProgressCompleted, URL: task.URL, Depth: task.Depth})
		return nil
	}

	page, links, err := c.extract(task.URL, resp.HTML)
	if r.mode == ModeText {
		// Extractors that parse the page report its links; others leave
		// Links nil and the page is parsed again for them.
		if links == nil {
			links = c.discover(task.URL, resp.HTML, log)
		}
		c.follow(r, task, links, log)
	}
	if err != nil {
		r.result.Failed++
		log.Warn("extraction failed", "err", err)
		r.emit(ProgressEvent{Type: ProgressFailed, URL: task.URL, Depth: task.Depth, Error: err})
		return nil
	}
	r.pages = append(r.pages, *page)
	r.discovered = append(r.discovered, task.URL)
	r.result.Saved++
	r.result.Bytes += len(page.Text)
	log.Debug("extracted", "title", page.Title, "bytes", len(page.Text), "hash", page.Hash)
	r.emit(ProgressEvent{Type: ProgressCompleted, URL: task.URL, Depth: task.Depth})
	return nil
}

// discover returns the links of a page through the link discoverer.
func (c *Crawler) discover(pageURL, html string, log *slog.Logger) []string {
	if c.Links == nil {
		return nil
	}
	links, err := c.Links.DiscoverLinks(html, pageURL)
	if err != nil {
		log.Warn("link discovery failed", "err", err)
		return nil
	}
	return links
}

// follow pushes the page's in-scope links one level deeper.
func (c *Crawler) follow(r *run, task sitetext.Task, links []string, log *slog.Logger) {
	admitted := 0
	for _, link := range links {
		if r.frontier.Enqueue(link, task.Depth+1) {
			admitted++
		}
	}
	log.Debug("links discovered", "found", len(links), "enqueued", admitted)
}

// extract returns the page and, when the extractor reported them, its links.
func (c *Crawler) extract(pageURL, html string) (*sitetext.Page, []string, error) {
	extracted, err := c.Extractor.Extract(html, pageURL)
	if err != nil {
		return nil, nil, err
	}

	text := extracted.Text
	if c.Converter != nil && extracted.ContentHTML != "" {
		markdown, err := c.Converter.Convert(extracted.ContentHTML)
		if err == nil {
			text = markdown
			if extracted.Title != "" && !strings.HasPrefix(markdown, "# ") {
				text = "# " + extracted.Title + "\n\n" + markdown
			}
		} else {
			c.logger().Debug("markdown conversion failed, keeping text", "url", pageURL, "err", err)
		}
	}

	return &sitetext.Page{
		URL:   pageURL,
		Title: extracted.Title,
		Text:  text,
		Hash:  PageHash(text),
	}, extracted.Links, nil
}

func (c *Crawler) flush(ctx context.Context, r *run) {
	snapshot := c.snapshot(r)
	err := c.Store.Flush(ctx, snapshot)
	if err != nil {
		r.result.FlushErrors++
		c.logger().Error("progress flush failed", "err", err)
	} else {
		c.logger().Debug("progress saved", "pages", len(snapshot.Pages), "visited", len(snapshot.Visited))
	}
	r.emit(ProgressEvent{Type: ProgressFlushed, Error: err})
}

func (c *Crawler) snapshot(r *run) *sitetext.Snapshot {
	pages := make([]sitetext.Page, len(r.pages))
	copy(pages, r.pages)
	discovered := make([]string, len(r.discovered))
	copy(discovered, r.discovered)

	var visited []string
	if r.mode == ModeList {
		// A URL list run reports the URLs it extracted, not every attempt.
		visited = make([]string, len(discovered))
		copy(visited, discovered)
		sort.Strings(visited)
	} else {
		visited = r.frontier.Visited()
	}

	return &sitetext.Snapshot{
		Pages:      pages,
		Discovered: discovered,
		Visited:    visited,
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
