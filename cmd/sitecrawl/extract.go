package main

import (
	"fmt"

	"github.com/fwojciec/sitetext"
	"github.com/fwojciec/sitetext/crawl"
	"github.com/fwojciec/sitetext/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	urls, err := fs.ReadURLs(c.URLsFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		if sitetext.ErrorCode(err) == sitetext.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: run 'sitecrawl urls' first or pass --urls-file")
		}
		return err
	}
	if len(urls) == 0 {
		err := sitetext.Errorf(sitetext.EINVALID, "no URLs in %s", c.URLsFile)
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Extracting %d URLs\n", len(urls))

	crawler := c.newCrawler(fs.ExtractLayout, c.Delay, deps.Logger)
	crawler.FlushEvery = 10

	// The list may span hosts, so links are neither scoped nor absolutized.
	extractor, converter, err := c.newExtractor(nil, "", deps.Logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}
	crawler.Extractor = extractor
	crawler.Converter = converter

	metrics := c.newMetrics(crawl.ModeList)
	result, err := crawler.ExtractList(deps.Ctx, urls, progress(deps, metrics))
	c.writeMetrics(deps, metrics)
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitetext.ErrorMessage(err))
		return err
	}

	summary := fmt.Sprintf("Saved %d pages (%s)", result.Saved, crawl.FormatBytes(result.Bytes))
	return c.finish(deps, result, err, summary)
}
