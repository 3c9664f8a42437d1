package sitetext

import "context"

// Task is a URL waiting to be processed at a crawl depth.
type Task struct {
	URL   string
	Depth int
}

// URLFrontier manages the breadth-first crawl queue and the visited set.
type URLFrontier interface {
	// Enqueue admits a task if the URL is in scope, not yet visited and
	// depth does not exceed the maximum. An unvisited URL may be enqueued
	// more than once.
	Enqueue(url string, depth int) bool

	// Next pops tasks in FIFO order until it finds one that is unvisited and
	// within the depth bound, marks it visited and returns it.
	// Returns false when the frontier is exhausted.
	Next() (Task, bool)

	// Len returns the number of queued tasks, including stale duplicates.
	Len() int

	// Visited returns the visited URLs in sorted order.
	Visited() []string
}

// Limiter paces requests.
type Limiter interface {
	// Wait blocks until the next request may be sent.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}
