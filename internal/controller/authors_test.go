package controller

import (
	"reflect"
	"testing"
)

func addAuthor(t *testing.T, a *AuthorList, name string) {
	t.Helper()
	a.SetDraft(name)
	if err := a.Add(); err != nil {
		t.Fatalf("add %q: %v", name, err)
	}
}

func TestAuthorListRejectsCaseInsensitiveDuplicates(t *testing.T) {
	a := NewAuthorList()
	addAuthor(t, a, "Ana")

	a.SetDraft("ana")
	if err := a.Add(); err == nil {
		t.Fatalf("expected duplicate error for %q", "ana")
	}
	a.SetDraft("  ANA  ")
	if err := a.Add(); err == nil {
		t.Fatalf("expected duplicate error for padded %q", "ANA")
	}
	if got := a.Names(); !reflect.DeepEqual(got, []string{"Ana"}) {
		t.Fatalf("list changed on rejected add: %v", got)
	}
}

func TestAuthorListEmptyDraftIsNoOp(t *testing.T) {
	a := NewAuthorList()
	a.SetDraft("   ")
	if err := a.Add(); err != nil {
		t.Fatalf("blank add: %v", err)
	}
	if got := a.Names(); len(got) != 0 {
		t.Fatalf("blank draft must not commit, got %v", got)
	}
}

func TestAuthorListEditReinsertsAtOriginalIndex(t *testing.T) {
	a := NewAuthorList()
	for _, n := range []string{"A", "B", "C"} {
		addAuthor(t, a, n)
	}

	if err := a.Edit(1); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if a.Draft() != "B" {
		t.Fatalf("expected draft %q, got %q", "B", a.Draft())
	}
	if got := a.Names(); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Fatalf("expected tag list [A C], got %v", got)
	}

	a.SetDraft("B2")
	if err := a.Add(); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if got := a.Names(); !reflect.DeepEqual(got, []string{"A", "B2", "C"}) {
		t.Fatalf("edited author must keep its position, got %v", got)
	}
}

func TestAuthorListAllMergesPendingDraftInOrder(t *testing.T) {
	a := NewAuthorList()
	for _, n := range []string{"A", "B", "C"} {
		addAuthor(t, a, n)
	}
	if err := a.Edit(0); err != nil {
		t.Fatalf("edit: %v", err)
	}

	// Submitting mid-edit must not push the edited author to the end.
	if got := a.All(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("expected [A B C], got %v", got)
	}

	// A draft that duplicates an existing tag is not repeated.
	a.SetDraft("b")
	if got := a.All(); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Fatalf("duplicate draft must be dropped, got %v", got)
	}
}

func TestAuthorListLoadRoundTrip(t *testing.T) {
	a := NewAuthorList()
	a.Load([]string{"First", "Second", "Third"})

	if a.Draft() != "First" {
		t.Fatalf("expected first author in draft, got %q", a.Draft())
	}
	if got := a.All(); !reflect.DeepEqual(got, []string{"First", "Second", "Third"}) {
		t.Fatalf("load must preserve order, got %v", got)
	}
}

func TestAuthorListRemoveAdjustsPendingEdit(t *testing.T) {
	a := NewAuthorList()
	for _, n := range []string{"A", "B", "C"} {
		addAuthor(t, a, n)
	}
	if err := a.Edit(2); err != nil {
		t.Fatalf("edit: %v", err)
	}
	// names now [A B], pending index 2.
	if err := a.Remove(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	a.SetDraft("C")
	if err := a.Add(); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := a.Names(); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Fatalf("expected [B C], got %v", got)
	}
}
