// Package upload validates attachments client-side so malformed or
// oversized files never waste a round-trip to the backend.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxDocumentBytes caps attached documents at 32 MiB.
const MaxDocumentBytes = 32 << 20

// allowed document extensions, lower case.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// File is an attachment candidate: a name, a size and its content.
type File struct {
	Name string
	Size int64

	r      io.Reader
	ra     io.ReaderAt
	closer io.Closer
}

// Open prepares a local file for attachment. The caller must Close it
// after the upload completes.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat attachment: %w", err)
	}
	return &File{
		Name:   filepath.Base(path),
		Size:   info.Size(),
		r:      f,
		ra:     f,
		closer: f,
	}, nil
}

// FromBytes wraps in-memory content, used by tests and by metadata
// extraction previews.
func FromBytes(name string, data []byte) *File {
	br := bytes.NewReader(data)
	return &File{
		Name: name,
		Size: int64(len(data)),
		r:    br,
		ra:   br,
	}
}

// Reader returns the content stream.
func (f *File) Reader() io.Reader {
	return f.r
}

// Close releases the underlying file, if any.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// ValidateDocument applies the client-side attachment rules: size cap,
// extension allow-list, and for PDFs a structural sniff that rejects files
// the reader cannot open.
func ValidateDocument(f *File) error {
	if f == nil {
		return fmt.Errorf("no file attached")
	}
	if f.Size > MaxDocumentBytes {
		return fmt.Errorf("file exceeds the 32 MB limit")
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("file type %q not allowed (want .pdf, .doc or .docx)", ext)
	}
	if ext == ".pdf" && f.ra != nil {
		if err := sniffPDF(f.ra, f.Size); err != nil {
			return fmt.Errorf("unreadable PDF: %w", err)
		}
	}
	return nil
}

func sniffPDF(ra io.ReaderAt, size int64) (err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed document: %v", r)
		}
	}()
	doc, err := pdf.NewReader(ra, size)
	if err != nil {
		return err
	}
	if doc.NumPage() < 1 {
		return fmt.Errorf("document has no pages")
	}
	return nil
}
