package sitetext

// Filters is the bundle of selectors and phrase lists that drive
// boilerplate removal. Every list is data, so the heuristics can be tuned
// per site without code changes.
type Filters struct {
	// Noise selects elements that never carry content (scripts, styles,
	// hidden elements).
	Noise []string

	// Generic selects boilerplate regions common to most sites.
	Generic []string

	// Site selects boilerplate regions specific to the crawled site.
	Site []string

	// Content selects the main-content container, in priority order.
	Content []string

	// NavPhrases mark navigation text. Used only when no content
	// container was found; matching is case-insensitive.
	NavPhrases []string

	// BoilerplatePhrases mark text repeated on every page. Matching is
	// case-sensitive.
	BoilerplatePhrases []string

	// HeadingStopWords reject headings that contain them, case-insensitively.
	HeadingStopWords []string

	// ParagraphStopWords reject paragraphs that contain them, case-insensitively.
	ParagraphStopWords []string
}

// Merge returns a copy of f where every non-empty list of o replaces the
// corresponding list of f.
func (f Filters) Merge(o Filters) Filters {
	pick := func(base, override []string) []string {
		if len(override) > 0 {
			return append([]string(nil), override...)
		}
		return append([]string(nil), base...)
	}
	return Filters{
		Noise:              pick(f.Noise, o.Noise),
		Generic:            pick(f.Generic, o.Generic),
		Site:               pick(f.Site, o.Site),
		Content:            pick(f.Content, o.Content),
		NavPhrases:         pick(f.NavPhrases, o.NavPhrases),
		BoilerplatePhrases: pick(f.BoilerplatePhrases, o.BoilerplatePhrases),
		HeadingStopWords:   pick(f.HeadingStopWords, o.HeadingStopWords),
		ParagraphStopWords: pick(f.ParagraphStopWords, o.ParagraphStopWords),
	}
}

// DefaultFilters returns the built-in filter bundle, tuned for support and
// help-center sites.
func DefaultFilters() Filters {
	return Filters{
		Noise: []string{
			"script", "style", "meta", "link", "noscript", "iframe",
			`[style*="display:none"]`, `[style*="display: none"]`,
		},
		Generic: []string{
			"header", "footer", "nav", "#header", "#footer", "#nav",
			".header", ".footer", ".nav", ".navigation", ".menu",
			".sidebar", ".breadcrumb", ".banner", ".cookie-banner",
			".social-links", ".copyright", ".announcement",
			`[role="navigation"]`, `[role="banner"]`, `[role="contentinfo"]`,
			".navbar", ".site-header", ".site-footer", ".top-bar",
			".search-form", ".download-app", ".mobile-nav",
			".main-navigation", "#main-navigation", "#primaryNav",
			".social-media", ".advertisement", ".ad-container",
			"aside", ".popular-links", ".quick-links",
			"#sideNavigation", ".primary-nav",
			`[id*="header"]`, `[id*="footer"]`, `[id*="menu"]`,
			`[id*="navigation"]`, `[id*="nav"]`, `[class*="header"]`,
			`[class*="footer"]`, `[class*="menu"]`, `[class*="navigation"]`,
			`[class*="nav-"]`, `[class*="-nav"]`,
		},
		Site: []string{
			".open-account-area", ".download-app-area", ".sip-calc-area",
			".search-area", ".top-nav", ".main-nav", ".primary-nav",
			".footer-top", ".footer-bottom", ".copyright-area",
			".login-area", ".quick-links", ".popular-stocks",
			".mobile-menu", ".mobile-nav", ".pricing-section",
			"nav", `[id*="menu"]`, `[class*="menu"]`,
			".open-account-btn", ".login-btn", ".download-section",
			".user-links", ".open-demat",
			".popular-links", ".attention-investors",
			".open-free-demat-account", ".oda-footer",
			"form", ".social-links",
			".we-are-here-to-help-you", ".quick-links-10",
			".connect-with-us", ".partnership-request", ".media-queries",
			".en", ".hi",
		},
		Content: []string{
			".support-container", ".faq-container", ".support-content",
			"#support-content", ".article-content", ".content-area",
			"main", "article", `[role="main"]`, ".faq-content",
		},
		NavPhrases: []string{
			"login", "sign up", "open account", "download", "download app",
			"register", "create account", "quick links", "we are here to help you",
			"connect with us", "partnership request", "media queries",
		},
		BoilerplatePhrases: []string{
			"We are here to help you", "Quick Links", "Track Application Status",
			"Want to connect with us?", "Connect with us", "Partnership Request",
			"Media Queries", "Our experts will be happy to assist you",
			"Still have any queries?", "Connect with our support team",
			"For any partnership requests please reach us at", "EMAIL US",
			"partners@angelbroking.com", "Learn More", "Create Ticket",
			"022-40003600", "CONTACT US",
		},
		HeadingStopWords: []string{
			"menu", "navigation", "login", "download", "open demat",
		},
		ParagraphStopWords: []string{
			"login", "signup", "sign up", "download", "cookie", "privacy",
			"open demat", "download app",
		},
	}
}
