package sitetext

// ExtractResult holds the content recovered from an HTML page.
type ExtractResult struct {
	// Title is the page title (first h1, else the document title without
	// its site-name suffix).
	Title string

	// Text is the cleaned, linearized page text. It is empty when the page
	// had no extractable content.
	Text string

	// ContentHTML is the localized main-content region as HTML, with
	// boilerplate removed.
	ContentHTML string

	// Links are the absolute outbound links found on the page. Nil means
	// the extractor did not look for links; an empty slice means it found
	// none.
	Links []string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL.
	// Missing structure degrades to less or empty text; an error is
	// returned only when the input cannot be processed at all.
	Extract(html string, pageURL string) (*ExtractResult, error)
}

// LinkDiscoverer finds outbound links on a page.
type LinkDiscoverer interface {
	// DiscoverLinks returns absolute URLs of the anchors in html, resolved
	// against pageURL, in document order without duplicates.
	DiscoverLinks(html string, pageURL string) ([]string, error)
}
