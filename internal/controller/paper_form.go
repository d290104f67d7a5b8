package controller

import (
	"context"
	"strconv"
	"strings"
	"time"

	"erepo/internal/api"
	"erepo/internal/upload"
	"erepo/pkg/domain"
)

// PaperAPI is the slice of the backend client a paper form needs.
type PaperAPI interface {
	CreatePaper(ctx context.Context, p api.PaperPayload) (domain.Paper, error)
	UpdatePaper(ctx context.Context, id int, p api.PaperPayload) (domain.Paper, error)
}

// PaperForm holds the draft of a paper create/update screen.
type PaperForm struct {
	api PaperAPI

	editingID int

	Title      string
	Abstract   string
	Keywords   string
	Journal    string
	Volume     string
	Issue      string
	Pages      string
	Year       string
	DOI        string
	ISSN       string
	Advisor    string
	University string
	Department string
	Authors    *AuthorList

	attachment *upload.File
	cover      *upload.File

	submitting bool
	onSuccess  func(domain.Paper)
}

// NewPaperForm builds an empty create form. Year defaults to the current
// year.
func NewPaperForm(client PaperAPI) *PaperForm {
	f := &PaperForm{api: client, Authors: NewAuthorList()}
	f.Reset()
	return f
}

// OnSuccess installs the callback invoked after a successful submit.
func (f *PaperForm) OnSuccess(fn func(domain.Paper)) {
	f.onSuccess = fn
}

// SetPaper switches the form to editing an existing record.
func (f *PaperForm) SetPaper(p domain.Paper) {
	f.Reset()
	f.editingID = p.ID
	f.Title = p.Title
	f.Abstract = p.Abstract
	f.Keywords = p.Keywords
	f.Journal = p.Journal
	if p.Volume > 0 {
		f.Volume = strconv.Itoa(p.Volume)
	}
	if p.Issue > 0 {
		f.Issue = strconv.Itoa(p.Issue)
	}
	f.Pages = p.Pages
	if p.Year > 0 {
		f.Year = strconv.Itoa(p.Year)
	}
	f.DOI = p.DOI
	f.ISSN = p.ISSN
	f.Advisor = p.Advisor
	f.University = p.University
	f.Department = p.Department
	f.Authors.Load(recordAuthors(p.Authors, p.Author))
}

// Editing reports whether an existing record is bound.
func (f *PaperForm) Editing() bool {
	return f.editingID != 0
}

// Submitting reports whether a submit is outstanding.
func (f *PaperForm) Submitting() bool {
	return f.submitting
}

// AttachDocument validates and attaches the paper file.
func (f *PaperForm) AttachDocument(file *upload.File) error {
	if err := upload.ValidateDocument(file); err != nil {
		return err
	}
	f.attachment = file
	return nil
}

// AttachCover attaches the cover image.
func (f *PaperForm) AttachCover(file *upload.File) {
	f.cover = file
}

// Validate applies every client-side rule without touching the network.
func (f *PaperForm) Validate() error {
	if err := requireTitle(f.Title); err != nil {
		return err
	}
	if err := requireAuthors(f.Authors.All()); err != nil {
		return err
	}
	if strings.TrimSpace(f.Abstract) == "" {
		return fieldErr("abstract", "abstract is required")
	}
	if _, err := numericInRange("year", f.Year, 1900, maxPublicationYear()); err != nil {
		return err
	}
	if _, err := numericInRange("volume", f.Volume, 1, 1000); err != nil {
		return err
	}
	if _, err := numericInRange("issue", f.Issue, 1, 100); err != nil {
		return err
	}
	return nil
}

// Submit validates and sends the draft as multipart, POST on create and
// PUT when editing.
func (f *PaperForm) Submit(ctx context.Context) (domain.Paper, error) {
	if f.submitting {
		return domain.Paper{}, ErrSubmitInFlight
	}
	if err := f.Validate(); err != nil {
		return domain.Paper{}, err
	}

	year, _ := numericInRange("year", f.Year, 1900, maxPublicationYear())
	volume, _ := numericInRange("volume", f.Volume, 1, 1000)
	issue, _ := numericInRange("issue", f.Issue, 1, 100)
	payload := api.PaperPayload{
		Title:      f.Title,
		Authors:    f.Authors.All(),
		Abstract:   f.Abstract,
		Keywords:   f.Keywords,
		Journal:    f.Journal,
		Volume:     volume,
		Issue:      issue,
		Pages:      f.Pages,
		Year:       year,
		DOI:        f.DOI,
		ISSN:       f.ISSN,
		Advisor:    f.Advisor,
		University: f.University,
		Department: f.Department,
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
		paper domain.Paper
		err   error
	)
	if f.editingID != 0 {
		paper, err = f.api.UpdatePaper(ctx, f.editingID, payload)
	} else {
		paper, err = f.api.CreatePaper(ctx, payload)
	}
	if err != nil {
		return domain.Paper{}, err
	}
	if f.onSuccess != nil {
		f.onSuccess(paper)
	}
	f.Reset()
	return paper, nil
}

// Reset returns the form to a blank create state.
func (f *PaperForm) Reset() {
	f.editingID = 0
	f.Title = ""
	f.Abstract = ""
	f.Keywords = ""
	f.Journal = ""
	f.Volume = ""
	f.Issue = ""
	f.Pages = ""
	f.Year = strconv.Itoa(time.Now().Year())
	f.DOI = ""
	f.ISSN = ""
	f.Advisor = ""
	f.University = ""
	f.Department = ""
	f.Authors.Reset()
	f.attachment = nil
	f.cover = nil
}
