package goquery

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Each stage below takes the working selection, mutates the underlying
// document in place and returns the selection later stages work on.

var contentAttrPattern = regexp.MustCompile(`(?i)(main|content|article|post)`)

// removeSelectors deletes every element under root matching any of the
// selectors. Invalid selectors match nothing.
func removeSelectors(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		root.Find(selector).Remove()
	}
	return root
}

// localize narrows root to the main-content region. It tries the content
// selectors in order, then the first element whose id or class looks like
// content, then the densest block left after stripping navigation. When
// nothing qualifies the whole of root is the region.
func localize(root *goquery.Selection, contentSelectors, navPhrases []string) *goquery.Selection {
	for _, selector := range contentSelectors {
		if region := root.Find(selector).First(); region.Length() > 0 {
			return region
		}
	}
	if region := findByAttrPattern(root, "id"); region != nil {
		return region
	}
	if region := findByAttrPattern(root, "class"); region != nil {
		return region
	}

	removeTextParents(root, func(text string) bool {
		return containsAny(strings.ToLower(text), navPhrases)
	})
	removeShortElements(root)
	if region := densest(root); region != nil {
		return region
	}
	return root
}

// findByAttrPattern returns the first element in document order whose attr
// matches contentAttrPattern.
func findByAttrPattern(root *goquery.Selection, attr string) *goquery.Selection {
	region := root.Find("[" + attr + "]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return contentAttrPattern.MatchString(sel.AttrOr(attr, ""))
	}).First()
	if region.Length() == 0 {
		return nil
	}
	return region
}

// removeShortElements deletes links, spans and buttons of three words or
// fewer; in navigation-heavy pages these are menu entries.
func removeShortElements(root *goquery.Selection) {
	root.Find("a, span, button").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" && len(strings.Fields(text)) <= 3 {
			sel.Remove()
		}
	})
}

// densest returns the div, section, article or main with the most text
// among those holding paragraphs, list items or subheadings. The first one
// in document order wins a tie.
func densest(root *goquery.Selection) *goquery.Selection {
	var (
		best     *goquery.Selection
		bestSize = -1
	)
	root.Find("div, section, article, main").Each(func(_ int, sel *goquery.Selection) {
		if sel.Find("p, h2, h3, li").Length() == 0 {
			return
		}
		if size := utf8.RuneCountInString(sel.Text()); size > bestSize {
			best, bestSize = sel, size
		}
	})
	return best
}

// removeTextParents deletes the parent element of every text node under
// root for which match returns true. When the parent is a root node itself
// its children are dropped instead.
func removeTextParents(root *goquery.Selection, match func(string) bool) *goquery.Selection {
	roots := make(map[*html.Node]bool, len(root.Nodes))
	for _, n := range root.Nodes {
		roots[n] = true
	}

	var parents []*html.Node
	seen := make(map[*html.Node]bool)
	for _, n := range root.Nodes {
		walkText(n, func(text *html.Node) {
			p := text.Parent
			if p == nil || seen[p] || !match(text.Data) {
				return
			}
			seen[p] = true
			parents = append(parents, p)
		})
	}

	for _, p := range parents {
		if roots[p] {
			for c := p.FirstChild; c != nil; c = p.FirstChild {
				p.RemoveChild(c)
			}
			continue
		}
		if p.Type == html.DocumentNode || p.Parent == nil {
			continue
		}
		p.Parent.RemoveChild(p)
	}
	return root
}

// walkText calls fn for every text node under n, in document order.
func walkText(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.TextNode {
		fn(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, fn)
	}
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if needle != "" && strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
