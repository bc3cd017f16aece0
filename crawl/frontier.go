package crawl

import (
	"sync"

	"github.com/passivleads/leadscout"
)

// Compile-time interface verification.
var _ leadscout.Frontier = (*Frontier)(nil)

// Frontier is an in-memory crawl queue with two priority classes and a page
// budget. URLs matching the important-keyword heuristic are drained before
// normal URLs. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu        sync.Mutex
	important []string
	normal    []string
	visited   map[string]struct{}
	budget    int
}

// NewFrontier creates a Frontier with the given page budget. The total
// number of URLs ever returned by TakeBatch never exceeds the budget.
func NewFrontier(maxPages int) *Frontier {
	return &Frontier{
		visited: make(map[string]struct{}),
		budget:  maxPages,
	}
}

// Schedule normalizes the URL and enqueues it unless already seen. A URL
// enters the visited set at schedule time, not completion time, so
// concurrent discovery can never enqueue the same page twice.
// Returns false if the URL was already scheduled.
func (f *Frontier) Schedule(rawURL string) bool {
	url := leadscout.Normalize(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.visited[url]; ok {
		return false
	}
	f.visited[url] = struct{}{}

	if leadscout.IsImportant(url) {
		f.important = append(f.important, url)
	} else {
		f.normal = append(f.normal, url)
	}
	return true
}

// TakeBatch pops up to n URLs, important queue first, bounded by the
// remaining page budget. The budget decreases by the number returned.
func (f *Frontier) TakeBatch(n int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if n > f.budget {
		n = f.budget
	}
	if n <= 0 {
		return nil
	}

	var batch []string

	take := func(queue []string) []string {
		for len(queue) > 0 && len(batch) < n {
			batch = append(batch, queue[0])
			queue = queue[1:]
		}
		return queue
	}

	f.important = take(f.important)
	f.normal = take(f.normal)

	f.budget -= len(batch)
	return batch
}

// Remaining returns the unspent page budget.
func (f *Frontier) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.budget
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.important) + len(f.normal)
}

// Seen returns true if the URL has been scheduled or completed.
func (f *Frontier) Seen(rawURL string) bool {
	url := leadscout.Normalize(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.visited[url]
	return ok
}
