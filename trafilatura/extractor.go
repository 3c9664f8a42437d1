// Package trafilatura provides a sitetext.Extractor backed by go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/sitetext"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitetext.Extractor at compile time.
var _ sitetext.Extractor = (*Extractor)(nil)

// Extractor finds the main content with go-trafilatura, falling back to
// its readability and dom-distiller passes.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of the page as plain text and HTML.
// The text starts with a "# title" line when a title was found. Pages
// trafilatura finds no content in yield an empty result.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*sitetext.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return &sitetext.ExtractResult{}, nil
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		// trafilatura reports pages without enough content as errors.
		return &sitetext.ExtractResult{}, nil
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, sitetext.Errorf(sitetext.EINTERNAL, "failed to render content: %v", err)
		}
	}

	title := strings.TrimSpace(result.Metadata.Title)
	return &sitetext.ExtractResult{
		Title:       title,
		Text:        withTitle(title, strings.TrimSpace(result.ContentText)),
		ContentHTML: contentHTML,
	}, nil
}

func withTitle(title, text string) string {
	switch {
	case title == "":
		return text
	case text == "":
		return "# " + title
	}
	return "# " + title + "\n\n" + text
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
