package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitetext"
)

// Ensure Extractor implements sitetext.Extractor at compile time.
var _ sitetext.Extractor = (*Extractor)(nil)

// Extractor strips boilerplate from HTML pages with a fixed sequence of
// heuristics driven by a sitetext.Filters bundle.
type Extractor struct {
	filters sitetext.Filters
	scope   *sitetext.Scope

	navPhrases         []string
	headingStopWords   []string
	paragraphStopWords []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFilters replaces the default filter bundle.
func WithFilters(filters sitetext.Filters) Option {
	return func(e *Extractor) {
		e.filters = filters
	}
}

// WithScope restricts the reported links to scope.
func WithScope(scope *sitetext.Scope) Option {
	return func(e *Extractor) {
		e.scope = scope
	}
}

// NewExtractor creates an Extractor using sitetext.DefaultFilters unless
// WithFilters is given.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{filters: sitetext.DefaultFilters()}
	for _, opt := range opts {
		opt(e)
	}
	e.navPhrases = lowerAll(e.filters.NavPhrases)
	e.headingStopWords = lowerAll(e.filters.HeadingStopWords)
	e.paragraphStopWords = lowerAll(e.filters.ParagraphStopWords)
	return e
}

// Extract returns the title, cleaned text, main-content HTML and outbound
// links of the page. Pages without recognizable content yield empty text,
// not an error.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*sitetext.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINVALID, "failed to parse HTML: %v", err)
	}

	// Links come from the untouched document; menus are removed below.
	// A page without links reports an empty, non-nil slice.
	var links []string
	if base, err := url.Parse(pageURL); err == nil && base.IsAbs() {
		links = append([]string{}, discoverLinks(doc.Selection, base, e.scope)...)
	}

	f := e.filters
	root := removeSelectors(doc.Selection, f.Noise)
	root = removeSelectors(root, f.Generic)
	root = removeSelectors(root, f.Site)

	region := localize(root, f.Content, e.navPhrases)
	title := pageTitle(doc.Selection, region)

	region = removeTextParents(region, func(text string) bool {
		return containsAny(text, f.BoilerplatePhrases)
	})

	headings := collectHeadings(region, e.headingStopWords, f.BoilerplatePhrases)
	paragraphs := collectParagraphs(region, e.paragraphStopWords, f.BoilerplatePhrases)

	contentHTML, err := goquery.OuterHtml(region)
	if err != nil {
		return nil, sitetext.Errorf(sitetext.EINTERNAL, "failed to render content: %v", err)
	}

	return &sitetext.ExtractResult{
		Title:       title,
		Text:        assemble(title, headings, paragraphs),
		ContentHTML: contentHTML,
		Links:       links,
	}, nil
}
