package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"erepo/pkg/domain"
)

// PaperPayload carries the editable fields of a paper create/update call.
type PaperPayload struct {
	Title      string
	Authors    []string
	Abstract   string
	Keywords   string
	Journal    string
	Volume     int
	Issue      int
	Pages      string
	Year       int
	DOI        string
	ISSN       string
	Advisor    string
	University string
	Department string

	FileName  string
	File      io.Reader
	CoverName string
	Cover     io.Reader
}

func (p PaperPayload) form() *form {
	f := newForm()
	f.field("title", p.Title)
	f.authors(p.Authors)
	f.field("abstract", p.Abstract)
	f.field("keywords", p.Keywords)
	f.field("journal", p.Journal)
	f.intField("volume", p.Volume)
	f.intField("issue", p.Issue)
	f.field("pages", p.Pages)
	f.intField("year", p.Year)
	f.field("doi", p.DOI)
	f.field("issn", p.ISSN)
	f.field("advisor", p.Advisor)
	f.field("university", p.University)
	f.field("department", p.Department)
	f.file("file", p.FileName, p.File)
	f.file("cover_image", p.CoverName, p.Cover)
	return f
}

// ListPapers fetches a page of the public paper collection.
func (c *Client) ListPapers(ctx context.Context, p domain.SearchParams) (domain.Page[domain.Paper], error) {
	var page domain.Page[domain.Paper]
	if err := c.getJSON(ctx, "/papers", searchQuery(p), &page); err != nil {
		return domain.Page[domain.Paper]{}, err
	}
	return page, nil
}

// ListOwnPapers fetches a page of records scoped to the caller.
func (c *Client) ListOwnPapers(ctx context.Context, p domain.SearchParams) (domain.Page[domain.Paper], error) {
	var page domain.Page[domain.Paper]
	if err := c.getJSON(ctx, c.scope()+"/papers", searchQuery(p), &page); err != nil {
		return domain.Page[domain.Paper]{}, err
	}
	return page, nil
}

// GetPaper fetches a single paper including nested authors.
func (c *Client) GetPaper(ctx context.Context, id int) (domain.Paper, error) {
	var paper domain.Paper
	if err := c.getJSON(ctx, fmt.Sprintf("/papers/%d", id), nil, &paper); err != nil {
		return domain.Paper{}, err
	}
	return paper, nil
}

// CreatePaper issues a multipart POST to the role-scoped collection.
func (c *Client) CreatePaper(ctx context.Context, p PaperPayload) (domain.Paper, error) {
	var paper domain.Paper
	if err := c.sendForm(ctx, http.MethodPost, c.scope()+"/papers", p.form(), &paper); err != nil {
		return domain.Paper{}, err
	}
	return paper, nil
}

// UpdatePaper issues a multipart PUT replacing the editable fields.
func (c *Client) UpdatePaper(ctx context.Context, id int, p PaperPayload) (domain.Paper, error) {
	var paper domain.Paper
	path := fmt.Sprintf("%s/papers/%d", c.scope(), id)
	if err := c.sendForm(ctx, http.MethodPut, path, p.form(), &paper); err != nil {
		return domain.Paper{}, err
	}
	return paper, nil
}

// DeletePaper removes a paper through the role-scoped endpoint.
func (c *Client) DeletePaper(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("%s/papers/%d", c.scope(), id))
}

// DownloadPaper streams the paper file.
func (c *Client) DownloadPaper(ctx context.Context, id int) (*FileDownload, error) {
	return c.download(ctx, fmt.Sprintf("/papers/%d/download", id))
}
