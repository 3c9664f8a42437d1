package mock

import "github.com/fwojciec/sitetext"

var _ sitetext.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitetext.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*sitetext.ExtractResult, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*sitetext.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}

var _ sitetext.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer is a mock implementation of sitetext.LinkDiscoverer.
type LinkDiscoverer struct {
	DiscoverLinksFn func(html string, pageURL string) ([]string, error)
}

func (d *LinkDiscoverer) DiscoverLinks(html string, pageURL string) ([]string, error) {
	return d.DiscoverLinksFn(html, pageURL)
}

var _ sitetext.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitetext.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
