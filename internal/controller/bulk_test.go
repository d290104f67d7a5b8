package controller

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func TestSelectionToggleAndSelectAll(t *testing.T) {
	s := NewSelection(nil, nil)
	s.Toggle(3)
	s.Toggle(1)
	s.Toggle(3) // deselect
	s.SelectAll([]int{5, 2})
	s.SelectAll([]int{2}) // idempotent

	if got := s.Selected(); !reflect.DeepEqual(got, []int{1, 2, 5}) {
		t.Fatalf("expected [1 2 5], got %v", got)
	}
	if !s.IsSelected(5) || s.IsSelected(3) {
		t.Fatalf("selection state wrong")
	}
	s.Clear()
	if s.Count() != 0 {
		t.Fatalf("clear left %d selected", s.Count())
	}
}

func TestBulkDeleteContinuesPastFailures(t *testing.T) {
	var mu sync.Mutex
	var deleted []int
	deleteOne := func(ctx context.Context, id int) error {
		mu.Lock()
		deleted = append(deleted, id)
		mu.Unlock()
		if id == 2 {
			return errors.New("record locked")
		}
		return nil
	}
	refreshes := 0
	refresh := func(ctx context.Context) error {
		refreshes++
		return nil
	}

	s := NewSelection(deleteOne, refresh)
	s.SelectAll([]int{1, 2, 3})

	res, err := s.BulkDelete(context.Background())
	if err == nil || !strings.Contains(err.Error(), "1 of 3") {
		t.Fatalf("expected aggregate failure summary, got %v", err)
	}
	if res.Deleted != 2 || res.Failed != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(deleted) != 3 {
		t.Fatalf("every delete must be attempted, got %v", deleted)
	}
	if refreshes != 1 {
		t.Fatalf("refresh must run exactly once, ran %d times", refreshes)
	}
	if s.Count() != 0 {
		t.Fatalf("selection must clear after bulk delete")
	}
}

func TestBulkDeleteSequentialByDefault(t *testing.T) {
	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0
	deleteOne := func(ctx context.Context, id int) error {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		mu.Lock()
		inFlight--
		mu.Unlock()
		return nil
	}

	s := NewSelection(deleteOne, nil)
	s.SelectAll([]int{1, 2, 3, 4, 5})
	if _, err := s.BulkDelete(context.Background()); err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if maxInFlight != 1 {
		t.Fatalf("default must be sequential, saw %d concurrent deletes", maxInFlight)
	}
}

func TestBulkDeleteEmptySelection(t *testing.T) {
	calls := 0
	s := NewSelection(func(ctx context.Context, id int) error {
		calls++
		return nil
	}, nil)

	res, err := s.BulkDelete(context.Background())
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if res.Deleted != 0 || res.Failed != 0 || calls != 0 {
		t.Fatalf("empty selection must be a no-op, got %+v calls=%d", res, calls)
	}
}
