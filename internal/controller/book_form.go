package controller

import (
	"context"
	"strconv"

	"erepo/internal/api"
	"erepo/internal/upload"
	"erepo/pkg/domain"
)

// BookAPI is the slice of the backend client a book form needs.
type BookAPI interface {
	CreateBook(ctx context.Context, p api.BookPayload) (domain.Book, error)
	UpdateBook(ctx context.Context, id int, p api.BookPayload) (domain.Book, error)
}

// BookForm holds the draft of a book create/update screen. Numeric fields
// stay strings until validation, as entered. Driven from a single
// goroutine like the rest of the view layer.
type BookForm struct {
	api BookAPI

	editingID int // 0 while creating

	Title         string
	Publisher     string
	PublishedYear string
	ISBN          string
	Subject       string
	Language      string
	Pages         string
	Summary       string
	Authors       *AuthorList

	attachment *upload.File
	cover      *upload.File

	submitting bool
	onSuccess  func(domain.Book)
}

// NewBookForm builds an empty create form.
func NewBookForm(client BookAPI) *BookForm {
	f := &BookForm{api: client, Authors: NewAuthorList()}
	f.Reset()
	return f
}

// OnSuccess installs the callback invoked after a successful submit,
// typically "close modal and refresh the list".
func (f *BookForm) OnSuccess(fn func(domain.Book)) {
	f.onSuccess = fn
}

// SetBook switches the form to editing an existing record: fields are
// populated and submit turns into an update.
func (f *BookForm) SetBook(b domain.Book) {
	f.Reset()
	f.editingID = b.ID
	f.Title = b.Title
	f.Publisher = b.Publisher
	if b.PublishedYear > 0 {
		f.PublishedYear = strconv.Itoa(b.PublishedYear)
	}
	f.ISBN = b.ISBN
	f.Subject = b.Subject
	if b.Language != "" {
		f.Language = b.Language
	}
	if b.Pages > 0 {
		f.Pages = strconv.Itoa(b.Pages)
	}
	f.Summary = b.Summary
	f.Authors.Load(recordAuthors(b.Authors, b.Author))
}

// Editing reports whether an existing record is bound.
func (f *BookForm) Editing() bool {
	return f.editingID != 0
}

// Submitting reports whether a submit is outstanding; views disable the
// submit control while true.
func (f *BookForm) Submitting() bool {
	return f.submitting
}

// AttachDocument validates and attaches the book file. Oversized files,
// disallowed extensions and unreadable PDFs are rejected here, before any
// bytes hit the wire.
func (f *BookForm) AttachDocument(file *upload.File) error {
	if err := upload.ValidateDocument(file); err != nil {
		return err
	}
	f.attachment = file
	return nil
}

// AttachCover attaches the cover image.
func (f *BookForm) AttachCover(file *upload.File) {
	f.cover = file
}

// Validate applies every client-side rule without touching the network.
func (f *BookForm) Validate() error {
	if err := requireTitle(f.Title); err != nil {
		return err
	}
	if err := requireAuthors(f.Authors.All()); err != nil {
		return err
	}
	if _, err := numericInRange("published year", f.PublishedYear, 1800, maxPublicationYear()); err != nil {
		return err
	}
	if _, err := numericInRange("pages", f.Pages, 1, 10000); err != nil {
		return err
	}
	return nil
}

// Submit validates and sends the draft as multipart, POST on create and
// PUT when editing. The draft is kept intact on failure so the user can
// retry immediately.
func (f *BookForm) Submit(ctx context.Context) (domain.Book, error) {
	if f.submitting {
		return domain.Book{}, ErrSubmitInFlight
	}
	if err := f.Validate(); err != nil {
		return domain.Book{}, err
	}

	year, _ := numericInRange("published year", f.PublishedYear, 1800, maxPublicationYear())
	pages, _ := numericInRange("pages", f.Pages, 1, 10000)
	payload := api.BookPayload{
		Title:         f.Title,
		Authors:       f.Authors.All(),
		Publisher:     f.Publisher,
		PublishedYear: year,
		ISBN:          f.ISBN,
		Subject:       f.Subject,
		Language:      f.Language,
		Pages:         pages,
		Summary:       f.Summary,
	}
	if f.attachment != nil {
		payload.FileName = f.attachment.Name
		payload.File = f.attachment.Reader()
	}
	if f.cover != nil {
		payload.CoverName = f.cover.Name
		payload.Cover = f.cover.Reader()
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	var (
		book domain.Book
		err  error
	)
	if f.editingID != 0 {
		book, err = f.api.UpdateBook(ctx, f.editingID, payload)
	} else {
		book, err = f.api.CreateBook(ctx, payload)
	}
	if err != nil {
		return domain.Book{}, err
	}
	if f.onSuccess != nil {
		f.onSuccess(book)
	}
	f.Reset()
	return book, nil
}

// Reset returns the form to a blank create state.
func (f *BookForm) Reset() {
	f.editingID = 0
	f.Title = ""
	f.Publisher = ""
	f.PublishedYear = ""
	f.ISBN = ""
	f.Subject = ""
	f.Language = "English"
	f.Pages = ""
	f.Summary = ""
	f.Authors.Reset()
	f.attachment = nil
	f.cover = nil
}

// recordAuthors flattens the authors sub-records, falling back to the
// legacy scalar author field.
func recordAuthors(authors []domain.WorkAuthor, legacy string) []string {
	if len(authors) == 0 {
		if legacy == "" {
			return nil
		}
		return []string{legacy}
	}
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.AuthorName)
	}
	return names
}
