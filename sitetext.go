// Package sitetext crawls a site section breadth-first, strips boilerplate
// from every page it reaches and persists one plain-text document per URL
// for downstream indexing.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, fs/).
package sitetext
