// Package http provides an HTTP-based implementation of sitetext.Fetcher
// that presents itself as a desktop browser.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/sitetext"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 10 << 20

// DefaultUserAgent is a desktop Chrome user agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Fetcher implements sitetext.Fetcher at compile time.
var _ sitetext.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages with browser-like request headers.
// It does not execute JavaScript and never retries.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxBodyBytes int64
	userAgent    string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodyBytes sets how many bytes of a body are read. Longer bodies
// are truncated.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodyBytes = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithClient sets the underlying HTTP client. The client's timeout is
// replaced by the configured one.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxBodyBytes: DefaultMaxBodyBytes,
		userAgent:    DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	client := *f.client
	client.Timeout = f.timeout
	f.client = &client

	return f
}

// Fetch retrieves the page at url. Non-200 responses, non-HTML content and
// transport failures are reported as *sitetext.HTTPError,
// *sitetext.ContentTypeError and *sitetext.NetworkError respectively.
// The body is decoded to UTF-8 using the declared or sniffed charset.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*sitetext.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &sitetext.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &sitetext.HTTPError{URL: url, StatusCode: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, &sitetext.ContentTypeError{URL: url, ContentType: contentType}
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodyBytes), contentType)
	if err != nil {
		return nil, &sitetext.NetworkError{URL: url, Err: err}
	}
	html, err := io.ReadAll(body)
	if err != nil {
		return nil, &sitetext.NetworkError{URL: url, Err: err}
	}

	return &sitetext.Response{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		HTML:        string(html),
	}, nil
}
