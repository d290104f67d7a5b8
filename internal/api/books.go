package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"erepo/pkg/domain"
)

// BookPayload carries the editable fields of a book create/update call.
// Scalar fields ride as text parts, Authors as repeated authors[] parts,
// File and Cover as optional binary parts.
type BookPayload struct {
	Title         string
	Authors       []string
	Publisher     string
	PublishedYear int
	ISBN          string
	Subject       string
	Language      string
	Pages         int
	Summary       string

	FileName  string
	File      io.Reader
	CoverName string
	Cover     io.Reader
}

func (p BookPayload) form() *form {
	f := newForm()
	f.field("title", p.Title)
	f.authors(p.Authors)
	f.field("publisher", p.Publisher)
	f.intField("published_year", p.PublishedYear)
	f.field("isbn", p.ISBN)
	f.field("subject", p.Subject)
	f.field("language", p.Language)
	f.intField("pages", p.Pages)
	f.field("summary", p.Summary)
	f.file("file", p.FileName, p.File)
	f.file("cover_image", p.CoverName, p.Cover)
	return f
}

// ListBooks fetches a page of the public book collection.
func (c *Client) ListBooks(ctx context.Context, p domain.SearchParams) (domain.Page[domain.Book], error) {
	var page domain.Page[domain.Book]
	if err := c.getJSON(ctx, "/books", searchQuery(p), &page); err != nil {
		return domain.Page[domain.Book]{}, err
	}
	return page, nil
}

// ListOwnBooks fetches a page of records scoped to the caller.
func (c *Client) ListOwnBooks(ctx context.Context, p domain.SearchParams) (domain.Page[domain.Book], error) {
	var page domain.Page[domain.Book]
	if err := c.getJSON(ctx, c.scope()+"/books", searchQuery(p), &page); err != nil {
		return domain.Page[domain.Book]{}, err
	}
	return page, nil
}

// GetBook fetches a single book including nested authors and categories.
func (c *Client) GetBook(ctx context.Context, id int) (domain.Book, error) {
	var book domain.Book
	if err := c.getJSON(ctx, fmt.Sprintf("/books/%d", id), nil, &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// CreateBook issues a multipart POST to the role-scoped collection.
func (c *Client) CreateBook(ctx context.Context, p BookPayload) (domain.Book, error) {
	var book domain.Book
	if err := c.sendForm(ctx, http.MethodPost, c.scope()+"/books", p.form(), &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// UpdateBook issues a multipart PUT replacing the editable fields.
func (c *Client) UpdateBook(ctx context.Context, id int, p BookPayload) (domain.Book, error) {
	var book domain.Book
	path := fmt.Sprintf("%s/books/%d", c.scope(), id)
	if err := c.sendForm(ctx, http.MethodPut, path, p.form(), &book); err != nil {
		return domain.Book{}, err
	}
	return book, nil
}

// DeleteBook removes a book through the role-scoped endpoint.
func (c *Client) DeleteBook(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("%s/books/%d", c.scope(), id))
}

// FileDownload is an open binary stream plus the headers needed to name it.
// The caller owns Body and must close it.
type FileDownload struct {
	Body               io.ReadCloser
	ContentDisposition string
	ContentType        string
}

// DownloadBook streams the book file.
func (c *Client) DownloadBook(ctx context.Context, id int) (*FileDownload, error) {
	return c.download(ctx, fmt.Sprintf("/books/%d/download", id))
}

func (c *Client) download(ctx context.Context, path string) (*FileDownload, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return &FileDownload{
		Body:               resp.Body,
		ContentDisposition: resp.Header.Get("Content-Disposition"),
		ContentType:        resp.Header.Get("Content-Type"),
	}, nil
}
