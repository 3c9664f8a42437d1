package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// PageHash returns the 16-digit hex xxhash64 of a page's text.
func PageHash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

// ShortURL fits rawURL into width bytes for progress lines. Long URLs keep
// their tail, where the distinguishing path segments are, behind "...".
func ShortURL(rawURL string, width int) string {
	switch {
	case width <= 0:
		return ""
	case len(rawURL) <= width:
		return rawURL
	case width <= 3:
		return rawURL[len(rawURL)-width:]
	}
	return "..." + rawURL[len(rawURL)-width+3:]
}

// FormatBytes renders n with the largest fitting unit up to GB.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMG"[exp])
}
