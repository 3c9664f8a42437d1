package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/sitetext"
	"github.com/fwojciec/sitetext/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScope(t *testing.T, seed string) *sitetext.Scope {
	t.Helper()
	scope, err := sitetext.NewScope(seed)
	require.NoError(t, err)
	return scope
}

func TestFrontier_Next_returns_tasks_in_FIFO_order(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(newScope(t, "https://example.com/support"), 5, sitetext.QueryCollapse)

	f.Enqueue("https://example.com/support", 0)
	f.Enqueue("https://example.com/support/a", 1)
	f.Enqueue("https://example.com/support/b", 1)
	f.Enqueue("https://example.com/support/a/1", 2)

	var got []string
	for {
		task, ok := f.Next()
		if !ok {
			break
		}
		got = append(got, task.URL)
	}

	assert.Equal(t, []string{
		"https://example.com/support",
		"https://example.com/support/a",
		"https://example.com/support/b",
		"https://example.com/support/a/1",
	}, got)
}

func TestFrontier_Enqueue_rejects_out_of_scope_URLs(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(newScope(t, "https://example.com/support"), 5, sitetext.QueryCollapse)

	assert.False(t, f.Enqueue("https://other.com/support/a", 1), "different host")
	assert.False(t, f.Enqueue("https://example.com/blog/a", 1), "different path prefix")
	assert.False(t, f.Enqueue("/support/a", 1), "relative URL")
	assert.False(t, f.Enqueue("://bad", 1), "malformed URL")
	assert.True(t, f.Enqueue("https://example.com/support/a", 1))
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_Enqueue_rejects_tasks_beyond_max_depth(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(newScope(t, "https://example.com/support"), 2, sitetext.QueryCollapse)

	assert.True(t, f.Enqueue("https://example.com/support/a", 2))
	assert.False(t, f.Enqueue("https://example.com/support/b", 3))
	assert.False(t, f.Enqueue("https://example.com/support/c", -1))
}

func TestFrontier_allows_duplicate_enqueues_but_processes_once(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(newScope(t, "https://example.com/support"), 5, sitetext.QueryCollapse)

	assert.True(t, f.Enqueue("https://example.com/support/a", 1))
	assert.True(t, f.Enqueue("https://example.com/support/a", 1), "unvisited URL may be queued again")
	assert.True(t, f.Enqueue("https://example.com/support/a#section", 2), "fragment variant is the same page")
	assert.Equal(t, 3, f.Len())

	task, ok := f.Next()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/support/a", task.URL)

	_, ok = f.Next()
	assert.False(t, ok, "stale duplicates must be skipped")

	assert.False(t, f.Enqueue("https://example.com/support/a", 1), "visited URL must be rejected")
}

func TestFrontier_QueryPolicies(t *testing.T) {
	t.Parallel()

	t.Run("collapse rejects query variants of a visited page", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(newScope(t, "https://example.com/support"), 5, sitetext.QueryCollapse)
		f.Enqueue("https://example.com/support/faq", 0)
		_, _ = f.Next()

		assert.False(t, f.Enqueue("https://example.com/support/faq?page=2", 1))
		assert.True(t, f.Enqueue("https://example.com/support/other?page=2", 1))
	})

	t.Run("keep treats query variants as distinct pages", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(newScope(t, "https://example.com/support"), 5, sitetext.QueryKeep)
		f.Enqueue("https://example.com/support/faq", 0)
		_, _ = f.Next()

		assert.True(t, f.Enqueue("https://example.com/support/faq?page=2", 1))
	})

	t.Run("strip folds query variants into one page", func(t *testing.T) {
		t.Parallel()

		f := crawl.NewFrontier(newScope(t, "https://example.com/support"), 5, sitetext.QueryStrip)
		f.Enqueue("https://example.com/support/faq?page=1", 0)
		f.Enqueue("https://example.com/support/faq?page=2", 0)

		task, ok := f.Next()
		require.True(t, ok)
		assert.Equal(t, "https://example.com/support/faq", task.URL)
		_, ok = f.Next()
		assert.False(t, ok)
	})
}

func TestFrontier_MarkVisited(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(newScope(t, "https://example.com/support"), 5, sitetext.QueryCollapse)
	f.Enqueue("https://example.com/support/a", 1)

	task, ok := f.Dequeue()
	require.True(t, ok)
	assert.False(t, f.IsVisited(task.URL), "dequeue alone does not mark visited")

	assert.True(t, f.MarkVisited(task.URL))
	assert.False(t, f.MarkVisited(task.URL), "second mark must report already visited")
	assert.True(t, f.IsVisited(task.URL))
}

func TestFrontier_Visited_is_sorted(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(newScope(t, "https://example.com/support"), 5, sitetext.QueryCollapse)
	f.Enqueue("https://example.com/support/c", 1)
	f.Enqueue("https://example.com/support/a", 1)
	f.Enqueue("https://example.com/support/b", 1)
	for {
		if _, ok := f.Next(); !ok {
			break
		}
	}

	assert.Equal(t, []string{
		"https://example.com/support/a",
		"https://example.com/support/b",
		"https://example.com/support/c",
	}, f.Visited())
}

func TestFrontier_nil_scope_admits_any_absolute_URL(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(nil, 0, sitetext.QueryCollapse)

	assert.True(t, f.Enqueue("https://a.example.com/x", 0))
	assert.True(t, f.Enqueue("https://b.example.com/y", 0))
	assert.False(t, f.Enqueue("not a url", 0))
}

func TestFrontier_concurrent_Next_processes_each_URL_once(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(newScope(t, "https://example.com/"), 5, sitetext.QueryCollapse)

	const numURLs = 200
	for i := 0; i < numURLs; i++ {
		u := fmt.Sprintf("https://example.com/page/%d", i)
		// Each URL is queued three times.
		f.Enqueue(u, 1)
		f.Enqueue(u, 1)
		f.Enqueue(u, 2)
	}

	var mu sync.Mutex
	counts := make(map[string]int)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				task, ok := f.Next()
				if !ok {
					return
				}
				mu.Lock()
				counts[task.URL]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, counts, numURLs)
	for u, n := range counts {
		assert.Equal(t, 1, n, "URL %s processed more than once", u)
	}
}

func TestFrontier_reclaims_queue_without_losing_order(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(newScope(t, "https://example.com/"), 5, sitetext.QueryCollapse)

	next := 0
	for i := 0; i < 300; i++ {
		f.Enqueue(fmt.Sprintf("https://example.com/p/%d", i), 1)
		if i%2 == 1 {
			task, ok := f.Next()
			require.True(t, ok)
			require.Equal(t, fmt.Sprintf("https://example.com/p/%d", next), task.URL)
			next++
		}
	}
	for {
		task, ok := f.Next()
		if !ok {
			break
		}
		require.Equal(t, fmt.Sprintf("https://example.com/p/%d", next), task.URL)
		next++
	}
	assert.Equal(t, 300, next)
}
