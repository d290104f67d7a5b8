// Package controller holds the stateful presentation controllers: paginated
// resource lists, book/paper forms with ordered author editing, and bulk row
// selection. Controllers cache the last-fetched page only; the backend stays
// authoritative.
package controller

import (
	"context"
	"fmt"
	"sync"

	"erepo/pkg/domain"
)

// DefaultPageLimit is the page size requested by list screens.
const DefaultPageLimit = 12

// Fetch loads one page of a remote collection.
type Fetch[T any] func(ctx context.Context, p domain.SearchParams) (domain.Page[T], error)

// List keeps a paginated remote collection consistent with local query
// state. The draft query is edited freely; only SubmitSearch commits it,
// so typing never triggers a request per keystroke.
//
// Every fetch carries a sequence number. A response whose sequence is no
// longer the latest is discarded, so the last issued request always wins
// regardless of network reordering.
type List[T any] struct {
	mu    sync.Mutex
	fetch Fetch[T]
	limit int

	items      []T
	total      int
	totalPages int
	page       int

	draft     string
	committed string

	loading bool
	err     error
	seq     uint64
}

// NewList builds a list controller over fetch. limit <= 0 selects
// DefaultPageLimit.
func NewList[T any](fetch Fetch[T], limit int) *List[T] {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	return &List[T]{
		fetch: fetch,
		limit: limit,
		page:  1,
	}
}

// SetQuery updates the draft search text. No fetch is triggered.
func (l *List[T]) SetQuery(q string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.draft = q
}

// SubmitSearch commits the draft query, resets to page 1 and fetches.
func (l *List[T]) SubmitSearch(ctx context.Context) error {
	l.mu.Lock()
	l.committed = l.draft
	l.page = 1
	l.mu.Unlock()
	return l.load(ctx)
}

// GoToPage fetches page n. Once the page count is known, requests outside
// [1, totalPages] are rejected without touching the network.
func (l *List[T]) GoToPage(ctx context.Context, n int) error {
	l.mu.Lock()
	if n < 1 || (l.totalPages > 0 && n > l.totalPages) {
		l.mu.Unlock()
		return fmt.Errorf("page %d out of range [1, %d]", n, l.totalPages)
	}
	l.page = n
	l.mu.Unlock()
	return l.load(ctx)
}

// Refresh re-issues the fetch for the current committed query and page.
// Called after every mutation to keep the list authoritative.
func (l *List[T]) Refresh(ctx context.Context) error {
	return l.load(ctx)
}

func (l *List[T]) load(ctx context.Context) error {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	params := domain.SearchParams{
		Query: l.committed,
		Page:  l.page,
		Limit: l.limit,
	}
	l.loading = true
	l.mu.Unlock()

	page, err := l.fetch(ctx, params)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		// A newer request was issued while this one was in flight.
		return nil
	}
	l.loading = false
	if err != nil {
		// Keep the previous items visible; Err surfaces the failure so
		// the view can render stale data alongside an error banner.
		l.err = err
		return err
	}
	l.err = nil
	l.items = page.Data
	l.total = page.Total
	l.totalPages = page.PageCount()
	if page.Page > 0 {
		l.page = page.Page
	}
	return nil
}

// Items returns the last successfully fetched page of records.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Page returns the current 1-indexed page.
func (l *List[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// TotalPages returns the known page count, 0 before the first fetch.
func (l *List[T]) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalPages
}

// Total returns the total record count reported by the backend.
func (l *List[T]) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Query returns the committed search text.
func (l *List[T]) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.committed
}

// Loading reports whether the latest issued fetch is still in flight.
func (l *List[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the failure of the latest completed fetch, nil on success.
// items stay at their last known value while Err is non-nil.
func (l *List[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
