package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitetext"
)

// Ensure LinkDiscoverer implements sitetext.LinkDiscoverer at compile time.
var _ sitetext.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer collects the outbound links of a page.
type LinkDiscoverer struct {
	scope *sitetext.Scope
}

// NewLinkDiscoverer creates a LinkDiscoverer that keeps only links inside
// scope. A nil scope keeps every http and https link.
func NewLinkDiscoverer(scope *sitetext.Scope) *LinkDiscoverer {
	return &LinkDiscoverer{scope: scope}
}

// DiscoverLinks parses html and returns the absolute URLs of its anchors,
// resolved against pageURL. Empty, javascript: and fragment-only targets
// are dropped. Links keep their fragment and query; canonicalization is
// left to the frontier.
func (d *LinkDiscoverer) DiscoverLinks(html string, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "failed to parse HTML: %v", err)
	}

	return discoverLinks(doc.Selection, base, d.scope), nil
}

// discoverLinks walks the anchors under root in document order.
func discoverLinks(root *goquery.Selection, base *url.URL, scope *sitetext.Scope) []string {
	seen := make(map[string]bool)
	var links []string

	root.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if isSkippedHref(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if scope != nil && !scope.Contains(resolved) {
			return
		}

		link := resolved.String()
		if seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})

	return links
}

// isSkippedHref reports whether href never points at another page.
func isSkippedHref(href string) bool {
	return href == "" ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(strings.ToLower(href), "javascript:")
}
