package sitetext

import (
	"net/url"
	"strings"
)

// Scope is the (domain, path prefix) pair that bounds a crawl.
// It is derived once from the seed URL.
type Scope struct {
	// Domain is the network location (host and optional port) of the seed.
	Domain string

	// BasePath is the path of the seed. Every in-scope URL path starts with it.
	BasePath string
}

// NewScope derives the crawl scope from a seed URL.
// The seed must be an absolute http or https URL.
func NewScope(seed string) (*Scope, error) {
	u, err := url.Parse(strings.TrimSpace(seed))
	if err != nil {
		return nil, Errorf(EINVALID, "invalid seed URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "seed URL must be http or https: %q", seed)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "seed URL has no host: %q", seed)
	}
	return &Scope{
		Domain:   u.Host,
		BasePath: u.Path,
	}, nil
}

// Contains reports whether u is in scope: same network location and a path
// starting with the base path.
func (s *Scope) Contains(u *url.URL) bool {
	if u == nil {
		return false
	}
	return u.Host == s.Domain && strings.HasPrefix(u.Path, s.BasePath)
}

// ContainsString is like Contains but parses rawURL first.
// Unparseable URLs are out of scope.
func (s *Scope) ContainsString(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return s.Contains(u)
}

// QueryPolicy decides whether URLs that differ only by query string are
// the same page. Fragments never distinguish pages.
type QueryPolicy string

// Query policies.
const (
	// QueryKeep treats the query string as part of page identity.
	QueryKeep QueryPolicy = "keep"

	// QueryCollapse keeps the query as part of identity, but rejects a URL
	// carrying a query or fragment once its query-free variant was visited.
	QueryCollapse QueryPolicy = "collapse"

	// QueryStrip drops the query string; variants map to one page.
	QueryStrip QueryPolicy = "strip"
)

// Validate returns an error if the policy is unknown.
func (p QueryPolicy) Validate() error {
	switch p {
	case QueryKeep, QueryCollapse, QueryStrip:
		return nil
	}
	return Errorf(EINVALID, "unknown query policy %q", string(p))
}

// Canonical returns the identity of u under the policy.
// The fragment is always removed; u is not modified.
func (p QueryPolicy) Canonical(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	if p == QueryStrip {
		c.RawQuery = ""
		c.ForceQuery = false
	}
	return c.String()
}

// BareURL returns scheme://host/path of u with query and fragment removed.
func BareURL(u *url.URL) string {
	c := url.URL{
		Scheme:  u.Scheme,
		User:    u.User,
		Host:    u.Host,
		Path:    u.Path,
		RawPath: u.RawPath,
	}
	return c.String()
}
