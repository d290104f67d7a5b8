package controller

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Selection tracks the selected row ids of one resource list and performs
// bulk deletion. Deletes run sequentially by default, a deliberate choice:
// admin batches are tens of rows, and one-at-a-time keeps the backend calm
// and error attribution simple. SetConcurrency allows a small cap when
// batches grow.
type Selection struct {
	mu  sync.Mutex
	ids map[int]struct{}

	deleteOne   func(ctx context.Context, id int) error
	refresh     func(ctx context.Context) error
	concurrency int
}

// BulkResult is the aggregate outcome of a bulk delete. Per-item failures
// are not itemized.
type BulkResult struct {
	Deleted int
	Failed  int
}

// NewSelection builds a selection over per-item delete and list refresh
// functions.
func NewSelection(deleteOne func(ctx context.Context, id int) error, refresh func(ctx context.Context) error) *Selection {
	return &Selection{
		ids:         make(map[int]struct{}),
		deleteOne:   deleteOne,
		refresh:     refresh,
		concurrency: 1,
	}
}

// SetConcurrency caps parallel delete calls. Values below 1 fall back to
// sequential.
func (s *Selection) SetConcurrency(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	s.concurrency = n
}

// Toggle flips the selection state of one id.
func (s *Selection) Toggle(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// IsSelected reports whether id is selected.
func (s *Selection) IsSelected(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// SelectAll marks every given id, typically the visible page.
func (s *Selection) SelectAll(ids []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[int]struct{})
}

// Count returns the number of selected rows.
func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Selected returns the selected ids in ascending order.
func (s *Selection) Selected() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// BulkDelete issues one delete per selected id. Every call is attempted
// even when earlier ones fail; failures are counted, not itemized. The
// selection is cleared and the list refreshed exactly once regardless of
// partial failure. A non-nil error summarizes the failed count.
func (s *Selection) BulkDelete(ctx context.Context) (BulkResult, error) {
	ids := s.Selected()
	s.mu.Lock()
	limit := s.concurrency
	s.mu.Unlock()

	var failed atomic.Int64
	g := &errgroup.Group{}
	g.SetLimit(limit)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := s.deleteOne(ctx, id); err != nil {
				failed.Add(1)
			}
			return nil
		})
	}
	// Per-item errors are swallowed above, so Wait cannot fail.
	_ = g.Wait()

	s.Clear()
	if s.refresh != nil {
		// A refresh failure surfaces through the list controller's own
		// error state; the deletes already happened.
		_ = s.refresh(ctx)
	}

	res := BulkResult{
		Deleted: len(ids) - int(failed.Load()),
		Failed:  int(failed.Load()),
	}
	if res.Failed > 0 {
		return res, fmt.Errorf("%d of %d deletions failed", res.Failed, len(ids))
	}
	return res, nil
}
