package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/sitetext"
	"github.com/fwojciec/sitetext/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("implements sitetext.Extractor interface", func(t *testing.T) {
		t.Parallel()
		var _ sitetext.Extractor = goquery.NewExtractor()
	})

	t.Run("extracts every paragraph of a rich page exactly once", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Margin Trading | Example Support</title></head>
<body>
<header><a href="/support/login">Login</a></header>
<nav><a href="/support/accounts">Accounts</a></nav>
<main>
	<h1>Margin Trading Facility</h1>
	<h2>How it works</h2>
	<p>Margin trading lets you buy stocks with borrowed funds.</p>
	<p>Interest is charged daily on the funded amount.</p>
	<p>Positions can be held for up to 365 days.</p>
</main>
<footer>Copyright 2024 Example</footer>
</body>
</html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support/mtf")

		require.NoError(t, err)
		assert.Equal(t, "Margin Trading Facility", result.Title)
		assert.Equal(t, "# Margin Trading Facility\n"+
			"How it works\n"+
			"Margin trading lets you buy stocks with borrowed funds. "+
			"Interest is charged daily on the funded amount. "+
			"Positions can be held for up to 365 days.", result.Text)
		for _, p := range []string{
			"Margin trading lets you buy stocks with borrowed funds.",
			"Interest is charged daily on the funded amount.",
			"Positions can be held for up to 365 days.",
		} {
			assert.Equal(t, 1, strings.Count(result.Text, p), p)
		}
		assert.NotContains(t, result.Text, "Login")
		assert.NotContains(t, result.Text, "Copyright")
	})

	t.Run("keeps only the visible paragraph of a noisy page", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<main>
	<script>var tracking = "script text that must never be extracted";</script>
	<div style="display: none"><p>Hidden paragraph that nobody should ever read.</p></div>
	<div class="open-account-area"><p>Open your account in five easy minutes today.</p></div>
	<p>Visible paragraph with more than five words.</p>
</main>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support/noisy")

		require.NoError(t, err)
		assert.Equal(t, "Visible paragraph with more than five words.", result.Text)
	})

	t.Run("removes non-content elements before collecting text", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>p { color: red; }</style></head><body>
<main>
	<h1>Funds Transfer</h1>
	<p>Funds reach your trading account within minutes. <script>track("inline script words here");</script></p>
	<p>Transfers made after market hours settle the next morning.<style>.x { display: block; }</style></p>
	<p>Each transfer is confirmed by email and text message.</p>
	<noscript><p>Enable scripts to see the interactive transfer guide.</p></noscript>
	<iframe src="https://example.com/embed">Your browser does not support inline frames at all.</iframe>
	<div style="display:none"><p>Compact hidden block that must stay invisible.</p></div>
	<section style="color: blue; display: none;"><p>Spaced hidden section that must stay invisible.</p></section>
</main>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support/transfer")

		require.NoError(t, err)
		assert.Equal(t, "# Funds Transfer\n"+
			"Funds reach your trading account within minutes. "+
			"Transfers made after market hours settle the next morning. "+
			"Each transfer is confirmed by email and text message.", result.Text)
		for _, noise := range []string{"track(", "display: block", "color: red", "Enable scripts", "inline frames", "Compact hidden", "Spaced hidden"} {
			assert.NotContains(t, result.Text, noise)
			assert.NotContains(t, result.ContentHTML, noise)
		}
	})

	t.Run("removes site-specific boilerplate regions", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<main>
	<h1>Pledge Shares</h1>
	<p>Pledged shares count towards your available trading margin.</p>
	<p>Pledge requests are processed by the depository within a day.</p>
	<p>Unpledged shares return to your holdings once approved.</p>
	<div class="open-account-area"><p>Start investing with zero brokerage on delivery trades.</p></div>
	<form action="/support/search"><p>Search hundreds of support articles right here.</p></form>
	<div class="popular-stocks"><p>Trending shares picked for you every single morning.</p></div>
</main>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support/pledge")

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Pledged shares count towards your available trading margin.")
		assert.Contains(t, result.Text, "Unpledged shares return to your holdings once approved.")
		assert.NotContains(t, result.Text, "zero brokerage")
		assert.NotContains(t, result.Text, "Search hundreds")
		assert.NotContains(t, result.Text, "Trending shares")
		assert.NotContains(t, result.ContentHTML, "open-account-area")
		assert.NotContains(t, result.ContentHTML, "<form")
	})

	t.Run("reports an empty link list for a page without links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><p>Nothing here links anywhere else at all.</p></main></body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support/alone")

		require.NoError(t, err)
		assert.NotNil(t, result.Links)
		assert.Empty(t, result.Links)
	})

	t.Run("yields empty text for a navigation-only page", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav><a href="/login">Login</a><a href="/signup">Sign Up</a><a href="/app">Download App</a></nav>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support")

		require.NoError(t, err)
		assert.Empty(t, result.Text)
		assert.Empty(t, result.Title)
	})

	t.Run("keeps a repeated paragraph once", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
	<p>Policy X applies to all employees.</p>
	<div><p>Policy X applies to all employees.</p></div>
</main></body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support/policy")

		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(result.Text, "Policy X applies to all employees."))
	})

	t.Run("annotates pages with headings but little prose", func(t *testing.T) {
		t.Parallel()

		html := `<html>
<head><title>Help Center | Example</title></head>
<body>
<div>
	<h2>Account Opening</h2>
	<h2>Trading FAQs</h2>
</div>
</body>
</html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support")

		require.NoError(t, err)
		assert.Equal(t, "Help Center", result.Title)
		assert.Contains(t, result.Text, "Account Opening")
		assert.Contains(t, result.Text, "Trading FAQs")
		assert.Contains(t, result.Text, goquery.LowContentNote)
		assert.True(t, strings.HasPrefix(result.Text, "# Help Center\n"))
	})

	t.Run("drops paragraphs containing boilerplate phrases", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
	<p>Still have any queries? Reach our desk anytime.</p>
	<p>Brokerage is charged per executed order on delivery trades.</p>
</main></body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support/brokerage")

		require.NoError(t, err)
		assert.Equal(t, "Brokerage is charged per executed order on delivery trades.", result.Text)
	})

	t.Run("filters short items and stop words but keeps bullets", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
	<h2>Main Menu</h2>
	<h3>X</h3>
	<ul>
		<li>• Aadhaar card</li>
		<li>- PAN card</li>
		<li>Contact us today</li>
		<li>Read our cookie policy before you continue.</li>
		<li>Keep your bank statement ready for verification.</li>
	</ul>
</main></body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support/kyc")

		require.NoError(t, err)
		assert.Contains(t, result.Text, "• Aadhaar card")
		assert.Contains(t, result.Text, "- PAN card")
		assert.Contains(t, result.Text, "Keep your bank statement ready for verification.")
		assert.NotContains(t, result.Text, "Contact us today")
		assert.NotContains(t, result.Text, "cookie")
		assert.NotContains(t, result.Text, "Main Menu")
		assert.NotContains(t, result.Text, goquery.LowContentNote)
	})

	t.Run("collapses whitespace and repeated lines case-insensitively", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
<h1>Trading Hours</h1>
<section>Markets  open at 9:15 AM on weekdays.

MARKETS OPEN AT 9:15 AM ON WEEKDAYS.</section>
</main></body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support/hours")

		require.NoError(t, err)
		assert.Equal(t, "# Trading Hours\nMarkets open at 9:15 AM on weekdays.", result.Text)
	})

	t.Run("prefers content selectors in order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<main><p>Main area text that is long enough.</p></main>
<div class="support-container"><p>Support container text wins here.</p></div>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support")

		require.NoError(t, err)
		assert.Equal(t, "Support container text wins here.", result.Text)
	})

	t.Run("falls back to content-like id attributes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div id="page-content"><p>Settlement happens on a T+1 basis for equity.</p></div>
<div><p>Unrelated words that live outside the region.</p></div>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support")

		require.NoError(t, err)
		assert.Equal(t, "Settlement happens on a T+1 basis for equity.", result.Text)
	})

	t.Run("strips navigation text and picks the densest block without a container", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div><p>Register for the webinar series on options.</p></div>
<div>
	<p>Options give the right but not the obligation to buy.</p>
	<p>Premiums are paid upfront by the buyer.</p>
</div>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support/options")

		require.NoError(t, err)
		assert.Equal(t, "Options give the right but not the obligation to buy. "+
			"Premiums are paid upfront by the buyer.", result.Text)
	})

	t.Run("uses custom filters", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="custom"><p>Custom region paragraph is selected.</p></div>
<main><p>Main is not used with custom filters.</p></main>
</body></html>`

		e := goquery.NewExtractor(goquery.WithFilters(sitetext.Filters{
			Content: []string{".custom"},
		}))
		result, err := e.Extract(html, "https://example.com/support")

		require.NoError(t, err)
		assert.Equal(t, "Custom region paragraph is selected.", result.Text)
	})

	t.Run("returns the main content region as HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav><a href="/support/a">A</a></nav>
<main><p>Orders are matched by price and time priority.</p></main>
</body></html>`

		result, err := goquery.NewExtractor().Extract(html, "https://example.com/support")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(result.ContentHTML, "<main>"))
		assert.Contains(t, result.ContentHTML, "Orders are matched by price and time priority.")
		assert.NotContains(t, result.ContentHTML, "<nav")
	})

	t.Run("discovers links before boilerplate removal", func(t *testing.T) {
		t.Parallel()

		scope, err := sitetext.NewScope("https://example.com/support")
		require.NoError(t, err)

		html := `<html><body>
<nav>
	<a href="/support/accounts">Accounts</a>
	<a href="/blog/news">News</a>
</nav>
<main><p>See <a href="funds">fund transfers</a> for details on payouts.</p></main>
</body></html>`

		result, err := goquery.NewExtractor(goquery.WithScope(scope)).Extract(html, "https://example.com/support/")

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/support/accounts",
			"https://example.com/support/funds",
		}, result.Links)
	})
}
