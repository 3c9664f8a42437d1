// Package robotstxt provides a robots.txt admission check backed by
// github.com/temoto/robotstxt.
package robotstxt

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/sitetext"
	"github.com/temoto/robotstxt"
)

// DefaultCacheTTL is how long fetched rules are reused.
const DefaultCacheTTL = 30 * time.Minute

// Ensure Agent implements sitetext.RobotsChecker at compile time.
var _ sitetext.RobotsChecker = (*Agent)(nil)

// Agent evaluates robots.txt rules with a per-host cache. When rules cannot
// be fetched the URL is allowed.
type Agent struct {
	client    *http.Client
	userAgent string
	ttl       time.Duration
	logger    *slog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	fetched time.Time
	rules   *robotstxt.RobotsData
}

// Option configures an Agent.
type Option func(*Agent)

// WithClient sets the HTTP client used to fetch robots.txt.
func WithClient(c *http.Client) Option {
	return func(a *Agent) {
		a.client = c
	}
}

// WithCacheTTL sets how long rules are cached per host.
func WithCacheTTL(ttl time.Duration) Option {
	return func(a *Agent) {
		a.ttl = ttl
	}
}

// WithLogger sets the logger for fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// NewAgent creates an Agent that matches rule groups against userAgent.
func NewAgent(userAgent string, opts ...Option) *Agent {
	a := &Agent{
		client:    &http.Client{Timeout: 10 * time.Second},
		userAgent: userAgent,
		ttl:       DefaultCacheTTL,
		logger:    slog.New(slog.DiscardHandler),
		cache:     make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allowed reports whether rawURL may be fetched. Relative or unparseable
// URLs are never allowed.
func (a *Agent) Allowed(ctx context.Context, rawURL string) bool {
	target, err := url.Parse(rawURL)
	if err != nil || !target.IsAbs() {
		return false
	}

	rules, err := a.rules(ctx, target)
	if err != nil {
		a.logger.Warn("robots.txt unavailable, allowing", "host", target.Host, "err", err)
		return true
	}

	path := target.EscapedPath()
	if path == "" {
		path = "/"
	}
	return rules.TestAgent(path, a.userAgent)
}

func (a *Agent) rules(ctx context.Context, target *url.URL) (*robotstxt.RobotsData, error) {
	host := strings.ToLower(target.Host)

	a.mu.Lock()
	entry, ok := a.cache[host]
	a.mu.Unlock()
	if ok && time.Since(entry.fetched) < a.ttl {
		return entry.rules, nil
	}

	robotsURL := target.Scheme + "://" + target.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build robots request: %w", err)
	}
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer resp.Body.Close()

	// 4xx allows everything and 5xx disallows everything.
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	a.mu.Lock()
	a.cache[host] = cacheEntry{fetched: time.Now(), rules: data}
	a.mu.Unlock()

	return data, nil
}
