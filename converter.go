package sitetext

// Converter renders the main-content HTML of a page as Markdown, for
// crawls that keep document structure instead of flattened text.
type Converter interface {
	// Convert returns the Markdown form of html. Blank input is an
	// EINVALID error.
	Convert(html string) (string, error)
}
