package main

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/sitetext"
	"github.com/fwojciec/sitetext/crawl"
	"github.com/fwojciec/sitetext/fs"
	"github.com/fwojciec/sitetext/goquery"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	scope, err := sitetext.NewScope(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}

	crawler := c.newCrawler(fs.TextLayout, c.Delay, deps.Logger)
	crawler.Links = goquery.NewLinkDiscoverer(scope)
	crawler.MaxDepth = c.Depth
	crawler.Queries = sitetext.QueryPolicy(c.Queries)
	crawler.FlushEvery = 1

	extractor, converter, err := c.newExtractor(scope, origin(c.URL), deps.Logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}
	crawler.Extractor = extractor
	crawler.Converter = converter

	metrics := c.newMetrics(crawl.ModeText)
	result, err := crawler.CrawlText(deps.Ctx, c.URL, progress(deps, metrics))
	c.writeMetrics(deps, metrics)
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}

	summary := fmt.Sprintf("Saved %d pages (%s)", result.Saved, crawl.FormatBytes(result.Bytes))
	return c.finish(deps, result, err, summary)
}

// Run executes the urls command.
func (c *URLsCmd) Run(deps *Dependencies) error {
	scope, err := sitetext.NewScope(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}

	crawler := c.newCrawler(fs.URLLayout, c.Delay, deps.Logger)
	crawler.Links = goquery.NewLinkDiscoverer(scope)
	crawler.MaxDepth = c.Depth
	crawler.Queries = sitetext.QueryPolicy(c.Queries)
	crawler.FlushEvery = 10

	metrics := c.newMetrics(crawl.ModeURLs)
	result, err := crawler.CrawlURLs(deps.Ctx, c.URL, progress(deps, metrics))
	c.writeMetrics(deps, metrics)
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}

	summary := fmt.Sprintf("Found %d URLs", result.Discovered)
	return c.finish(deps, result, err, summary)
}

// origin returns the scheme and host of rawURL, e.g. "https://example.com".
func origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
