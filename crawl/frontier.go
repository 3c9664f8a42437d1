package crawl

import (
	"net/url"
	"sort"
	"sync"

	"github.com/fwojciec/sitetext"
)

// Compile-time interface verification.
var _ sitetext.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory breadth-first URL frontier with an exact visited set.
// It is safe for concurrent use by multiple goroutines; Next checks and marks
// a URL visited as one step.
type Frontier struct {
	mu       sync.Mutex
	scope    *sitetext.Scope
	maxDepth int
	queries  sitetext.QueryPolicy
	queue    []sitetext.Task
	head     int
	visited  map[string]struct{}
}

// NewFrontier creates a Frontier admitting URLs within scope up to maxDepth.
// A nil scope admits every absolute http(s) URL.
func NewFrontier(scope *sitetext.Scope, maxDepth int, queries sitetext.QueryPolicy) *Frontier {
	if queries == "" {
		queries = sitetext.QueryCollapse
	}
	return &Frontier{
		scope:    scope,
		maxDepth: maxDepth,
		queries:  queries,
		visited:  make(map[string]struct{}),
	}
}

// Enqueue adds a task for rawURL at depth.
// Returns false if the URL is malformed, out of scope, deeper than the
// maximum depth or already visited. URL fragments are stripped; an unvisited
// URL may be queued more than once.
func (f *Frontier) Enqueue(rawURL string, depth int) bool {
	if depth < 0 || depth > f.maxDepth {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false
	}
	if f.scope != nil && !f.scope.Contains(u) {
		return false
	}
	key := f.queries.Canonical(u)

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[key]; ok {
		return false
	}
	// The query-free page was already processed; its variants are duplicates.
	if f.queries == sitetext.QueryCollapse && (u.RawQuery != "" || u.Fragment != "") {
		if _, ok := f.visited[sitetext.BareURL(u)]; ok {
			return false
		}
	}
	f.queue = append(f.queue, sitetext.Task{URL: key, Depth: depth})
	return true
}

// Dequeue pops the oldest task.
// The bool result is false if the frontier is empty.
func (f *Frontier) Dequeue() (sitetext.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dequeue()
}

// MarkVisited records url as visited.
// Returns false if it was already visited.
func (f *Frontier) MarkVisited(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.markVisited(url)
}

// Next pops tasks until it finds one that is unvisited and within the depth
// bound, marks it visited and returns it.
// The bool result is false once the frontier is exhausted.
func (f *Frontier) Next() (sitetext.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		task, ok := f.dequeue()
		if !ok {
			return sitetext.Task{}, false
		}
		if task.Depth > f.maxDepth {
			continue
		}
		if f.markVisited(task.URL) {
			return task, true
		}
	}
}

// Len returns the number of queued tasks.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue) - f.head
}

// IsVisited returns true if url has been handed out for processing.
func (f *Frontier) IsVisited(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.visited[url]
	return ok
}

// Visited returns all visited URLs in sorted order.
func (f *Frontier) Visited() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	urls := make([]string, 0, len(f.visited))
	for u := range f.visited {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

func (f *Frontier) dequeue() (sitetext.Task, bool) {
	if f.head >= len(f.queue) {
		return sitetext.Task{}, false
	}
	task := f.queue[f.head]
	f.queue[f.head] = sitetext.Task{}
	f.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 64 && f.head*2 >= len(f.queue) {
		n := copy(f.queue, f.queue[f.head:])
		f.queue = f.queue[:n]
		f.head = 0
	}
	return task, true
}

func (f *Frontier) markVisited(url string) bool {
	if _, ok := f.visited[url]; ok {
		return false
	}
	f.visited[url] = struct{}{}
	return true
}
