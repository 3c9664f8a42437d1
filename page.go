package sitetext

import "context"

// Page is the extracted text of one crawled URL.
type Page struct {
	URL   string
	Title string
	Text  string
	Hash  string
}

// Snapshot is the persisted projection of a crawl's state.
type Snapshot struct {
	// Pages holds extracted pages in processing order.
	Pages []Page

	// Discovered holds successfully fetched URLs in processing order.
	Discovered []string

	// Visited holds every processed URL, including failures, sorted.
	Visited []string
}

// ProgressStore persists crawl snapshots.
// Flush fully rewrites its artifacts; calling it twice with the same
// snapshot leaves byte-identical artifacts.
type ProgressStore interface {
	Flush(ctx context.Context, snapshot *Snapshot) error
}
