package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
)

// LowContentNote is appended to pages that look like navigation or
// category listings: subheadings but fewer than three paragraphs.
const LowContentNote = "This page appears to be a navigation/category page with the following options:"

var (
	titleSuffixPattern = regexp.MustCompile(`\s*[-|]\s*.+$`)
	blankLinesPattern  = regexp.MustCompile(`\n\s*\n`)
	spacesPattern      = regexp.MustCompile(` +`)
)

// pageTitle returns the first h1 of the region, else the document title
// with its trailing " - Site" or " | Site" removed.
func pageTitle(doc, region *goquery.Selection) string {
	if h1 := region.Find("h1").First(); h1.Length() > 0 {
		return strings.TrimSpace(h1.Text())
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	return titleSuffixPattern.ReplaceAllString(title, "")
}

// collectHeadings returns the h2-h6 texts of region that are not
// navigation labels or boilerplate.
func collectHeadings(region *goquery.Selection, stopWords, phrases []string) []string {
	var headings []string
	region.Find("h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if utf8.RuneCountInString(text) <= 1 {
			return
		}
		if containsAny(strings.ToLower(text), stopWords) || containsAny(text, phrases) {
			return
		}
		headings = append(headings, text)
	})
	return headings
}

// collectParagraphs returns the distinct p, li and section texts of region
// that look like prose: longer than five characters, more than three words
// unless bulleted, and free of stop words and boilerplate.
func collectParagraphs(region *goquery.Selection, stopWords, phrases []string) []string {
	seen := make(map[string]bool)
	var paragraphs []string
	region.Find("p, li, section").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if utf8.RuneCountInString(text) <= 5 {
			return
		}
		if containsAny(strings.ToLower(text), stopWords) || containsAny(text, phrases) {
			return
		}
		if seen[text] {
			return
		}
		seen[text] = true
		paragraphs = append(paragraphs, text)
	})

	filtered := paragraphs[:0]
	for _, p := range paragraphs {
		if len(strings.Fields(p)) > 3 || strings.HasPrefix(p, "•") || strings.HasPrefix(p, "-") {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// assemble joins the page parts into the final text.
func assemble(title string, headings, paragraphs []string) string {
	if len(paragraphs) < 3 && len(headings) > 0 {
		paragraphs = append(paragraphs, LowContentNote)
	}

	var parts []string
	if title != "" {
		parts = append(parts, "# "+title, "")
	}
	if len(headings) > 0 {
		parts = append(parts, headings...)
		parts = append(parts, "")
	}
	parts = append(parts, paragraphs...)

	return normalize(strings.Join(parts, "\n"))
}

// normalize collapses blank lines and spaces, folds lone newlines into
// spaces and drops empty and repeated lines. Repeats are detected
// case-insensitively; the first occurrence is kept.
func normalize(text string) string {
	text = blankLinesPattern.ReplaceAllString(text, "\n\n")
	text = spacesPattern.ReplaceAllString(text, " ")
	text = foldNewlines(text)

	seen := make(map[uint64]bool)
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		key := xxhash.Sum64String(strings.ToLower(line))
		if seen[key] {
			continue
		}
		seen[key] = true
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// foldNewlines replaces every newline that has no newline on either side
// with a space.
func foldNewlines(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			prev := i > 0 && text[i-1] == '\n'
			next := i+1 < len(text) && text[i+1] == '\n'
			if !prev && !next {
				c = ' '
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
