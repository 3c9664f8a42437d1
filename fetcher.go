package sitetext

import (
	"context"
	"fmt"
)

// Response is a successfully fetched HTML page.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	HTML        string
}

// Fetcher retrieves a single URL.
// Implementations do not retry; every failure is terminal for the URL.
type Fetcher interface {
	// Fetch retrieves the page at url. The returned error is one of
	// *HTTPError, *ContentTypeError or *NetworkError for fetch outcomes,
	// or an *Error for invalid input.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)
}

// HTTPError reports a response with a non-200 status code.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// ContentTypeError reports a successful response that is not HTML.
type ContentTypeError struct {
	URL         string
	ContentType string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("non-HTML content at %s: %q", e.URL, e.ContentType)
}

// NetworkError reports a connection failure or timeout.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RobotsChecker decides whether a URL may be fetched under robots.txt rules.
type RobotsChecker interface {
	Allowed(ctx context.Context, url string) bool
}
