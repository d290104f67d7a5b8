package controller

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"testing"
	"time"

	"erepo/internal/api"
	"erepo/pkg/domain"
)

type fakeBookAPI struct {
	creates int
	updates int
	lastID  int
	last    api.BookPayload
	err     error
}

func (f *fakeBookAPI) CreateBook(ctx context.Context, p api.BookPayload) (domain.Book, error) {
	f.creates++
	f.last = p
	if f.err != nil {
		return domain.Book{}, f.err
	}
	return domain.Book{ID: 1, Title: p.Title}, nil
}

func (f *fakeBookAPI) UpdateBook(ctx context.Context, id int, p api.BookPayload) (domain.Book, error) {
	f.updates++
	f.lastID = id
	f.last = p
	if f.err != nil {
		return domain.Book{}, f.err
	}
	return domain.Book{ID: id, Title: p.Title}, nil
}

type fakePaperAPI struct {
	creates int
	last    api.PaperPayload
}

func (f *fakePaperAPI) CreatePaper(ctx context.Context, p api.PaperPayload) (domain.Paper, error) {
	f.creates++
	f.last = p
	return domain.Paper{ID: 7, Title: p.Title}, nil
}

func (f *fakePaperAPI) UpdatePaper(ctx context.Context, id int, p api.PaperPayload) (domain.Paper, error) {
	return domain.Paper{ID: id}, nil
}

func validBookForm(backend BookAPI) *BookForm {
	f := NewBookForm(backend)
	f.Title = "Structure and Interpretation"
	f.Authors.SetDraft("Abelson")
	_ = f.Authors.Add()
	return f
}

func TestBookFormValidateYearRange(t *testing.T) {
	backend := &fakeBookAPI{}
	f := validBookForm(backend)
	f.PublishedYear = "1700"

	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatalf("expected year range error")
	}
	var verr *ValidationError
	if _, err := f.Submit(context.Background()); !errors.As(err, &verr) || verr.Field != "published year" {
		t.Fatalf("expected published year validation error, got %v", err)
	}
	if backend.creates+backend.updates != 0 {
		t.Fatalf("invalid form must not reach the backend")
	}

	// One past the current year is still accepted (in-press titles).
	f.PublishedYear = strconv.Itoa(time.Now().Year() + 1)
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	// Two past is not.
	f = validBookForm(backend)
	f.PublishedYear = strconv.Itoa(time.Now().Year() + 2)
	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatalf("expected future year to be rejected")
	}
}

func TestBookFormPagesRange(t *testing.T) {
	f := validBookForm(&fakeBookAPI{})
	f.Pages = "0"
	if err := f.Validate(); err == nil {
		t.Fatalf("expected pages range error for 0")
	}
	f.Pages = "10001"
	if err := f.Validate(); err == nil {
		t.Fatalf("expected pages range error for 10001")
	}
	f.Pages = "" // optional
	if err := f.Validate(); err != nil {
		t.Fatalf("empty pages must pass: %v", err)
	}
	f.Pages = "not-a-number"
	if err := f.Validate(); err == nil {
		t.Fatalf("expected error for non-numeric pages")
	}
}

func TestBookFormRequiresTitleAndAuthors(t *testing.T) {
	f := NewBookForm(&fakeBookAPI{})
	if err := f.Validate(); err == nil {
		t.Fatalf("expected missing title error")
	}
	f.Title = "Some Title"
	if err := f.Validate(); err == nil {
		t.Fatalf("expected missing authors error")
	}
	// A typed-but-uncommitted author counts.
	f.Authors.SetDraft("Knuth")
	if err := f.Validate(); err != nil {
		t.Fatalf("pending author draft must satisfy validation: %v", err)
	}
}

func TestBookFormSubmitCreateThenReset(t *testing.T) {
	backend := &fakeBookAPI{}
	f := validBookForm(backend)
	f.Authors.SetDraft("Sussman")
	called := 0
	f.OnSuccess(func(domain.Book) { called++ })

	book, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if book.ID != 1 || backend.creates != 1 || backend.updates != 0 {
		t.Fatalf("expected one create, got %+v creates=%d updates=%d", book, backend.creates, backend.updates)
	}
	if called != 1 {
		t.Fatalf("success callback fired %d times", called)
	}
	if got := backend.last.Authors; !reflect.DeepEqual(got, []string{"Abelson", "Sussman"}) {
		t.Fatalf("author order lost in payload: %v", got)
	}
	if f.Title != "" || f.Language != "English" || len(f.Authors.All()) != 0 {
		t.Fatalf("form must reset after success")
	}
}

func TestBookFormKeepsDraftOnFailure(t *testing.T) {
	backend := &fakeBookAPI{err: errors.New("boom")}
	f := validBookForm(backend)

	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatalf("expected backend error")
	}
	if f.Title == "" || len(f.Authors.All()) == 0 {
		t.Fatalf("draft must survive a failed submit")
	}
}

func TestBookFormSetBookSwitchesToUpdate(t *testing.T) {
	backend := &fakeBookAPI{}
	f := NewBookForm(backend)
	f.SetBook(domain.Book{
		ID:    42,
		Title: "Existing",
		Authors: []domain.WorkAuthor{
			{AuthorName: "One"},
			{AuthorName: "Two"},
		},
		PublishedYear: 1999,
		Pages:         320,
	})
	if !f.Editing() {
		t.Fatalf("form not in editing mode")
	}
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if backend.updates != 1 || backend.lastID != 42 {
		t.Fatalf("expected update of record 42, got updates=%d id=%d", backend.updates, backend.lastID)
	}
	if got := backend.last.Authors; !reflect.DeepEqual(got, []string{"One", "Two"}) {
		t.Fatalf("loaded author order lost: %v", got)
	}
}

func TestPaperFormRequiresAbstract(t *testing.T) {
	backend := &fakePaperAPI{}
	f := NewPaperForm(backend)
	f.Title = "On Computable Numbers"
	f.Authors.SetDraft("Turing")

	var verr *ValidationError
	if err := f.Validate(); !errors.As(err, &verr) || verr.Field != "abstract" {
		t.Fatalf("expected abstract validation error, got %v", err)
	}
	f.Abstract = "The computable numbers may be described briefly."
	if err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestPaperFormNumericRanges(t *testing.T) {
	f := NewPaperForm(&fakePaperAPI{})
	f.Title = "T"
	f.Abstract = "A"
	f.Authors.SetDraft("X")

	f.Year = "1899"
	if err := f.Validate(); err == nil {
		t.Fatalf("expected year < 1900 to be rejected")
	}
	f.Year = "1950"
	f.Volume = "1001"
	if err := f.Validate(); err == nil {
		t.Fatalf("expected volume > 1000 to be rejected")
	}
	f.Volume = "12"
	f.Issue = "101"
	if err := f.Validate(); err == nil {
		t.Fatalf("expected issue > 100 to be rejected")
	}
	f.Issue = "3"
	if err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestPaperFormResetDefaultsYear(t *testing.T) {
	f := NewPaperForm(&fakePaperAPI{})
	if f.Year != strconv.Itoa(time.Now().Year()) {
		t.Fatalf("expected current year default, got %q", f.Year)
	}
}
