package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
)

// form accumulates multipart fields in insertion order. Order matters for
// repeated authors[] parts: the backend persists them as the author list.
type form struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newForm() *form {
	f := &form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

// field writes a text part, skipping empty values.
func (f *form) field(name, value string) {
	if f.err != nil || value == "" {
		return
	}
	f.err = f.w.WriteField(name, value)
}

// intField writes a numeric text part, skipping zero values.
func (f *form) intField(name string, v int) {
	if v == 0 {
		return
	}
	f.field(name, strconv.Itoa(v))
}

// authors writes one authors[] part per name, preserving order.
func (f *form) authors(names []string) {
	for _, name := range names {
		f.field("authors[]", name)
	}
}

// file writes a binary part. A nil reader is skipped.
func (f *form) file(name, filename string, r io.Reader) {
	if f.err != nil || r == nil {
		return
	}
	part, err := f.w.CreateFormFile(name, filename)
	if err != nil {
		f.err = err
		return
	}
	if _, err := io.Copy(part, r); err != nil {
		f.err = err
	}
}

func (f *form) encode() (io.Reader, string, error) {
	if f.err != nil {
		return nil, "", fmt.Errorf("build multipart form: %w", f.err)
	}
	if err := f.w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart form: %w", err)
	}
	return &f.buf, f.w.FormDataContentType(), nil
}
