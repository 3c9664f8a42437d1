// Package readability provides a sitetext.Extractor backed by go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/sitetext"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements sitetext.Extractor at compile time.
var _ sitetext.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the readable article of the page. Relative links in the
// content HTML are resolved against pageURL when it is absolute.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*sitetext.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &sitetext.ExtractResult{}, nil
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(article.Title)
	text := compactLines(article.TextContent)
	if title != "" {
		text = strings.TrimSpace("# " + title + "\n\n" + text)
	}

	return &sitetext.ExtractResult{
		Title:       title,
		Text:        text,
		ContentHTML: article.Content,
	}, nil
}

// compactLines trims every line and drops blank ones.
func compactLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
