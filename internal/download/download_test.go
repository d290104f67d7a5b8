package download

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilenamePrefersContentDisposition(t *testing.T) {
	got := Filename(`attachment; filename="report final.pdf"`, "Ignored Title", "http://x/file.docx")
	if got != "report final.pdf" {
		t.Fatalf("got %q", got)
	}
}

func TestFilenameFallsBackToTitlePlusURLExtension(t *testing.T) {
	cases := []struct {
		disposition string
		title       string
		fileURL     string
		want        string
	}{
		{"", "Thesis", "http://backend/uploads/works/123.docx", "Thesis.docx"},
		{"", "Thesis", "http://backend/uploads/works/123.pdf?token=abc", "Thesis.pdf"},
		{"attachment", "Thesis", "http://backend/uploads/123.doc", "Thesis.doc"}, // no filename param
		{"", "Thesis", "", "Thesis.pdf"},
		{"", "Thesis", "http://backend/uploads/noext", "Thesis.pdf"},
	}
	for _, tc := range cases {
		if got := Filename(tc.disposition, tc.title, tc.fileURL); got != tc.want {
			t.Fatalf("Filename(%q, %q, %q) = %q, want %q",
				tc.disposition, tc.title, tc.fileURL, got, tc.want)
		}
	}
}

func TestFilenameStripsPathComponents(t *testing.T) {
	got := Filename(`attachment; filename="../../etc/passwd"`, "T", "")
	if strings.Contains(got, "..") || strings.Contains(got, "/") {
		t.Fatalf("path components survived: %q", got)
	}
}

func TestSaveWritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads", "nested")
	path, err := Save(dir, "book.pdf", strings.NewReader("%PDF-1.4 data"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "%PDF-1.4 data" {
		t.Fatalf("content %q", data)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stream reset")
}

func TestSaveRemovesPartialFileOnError(t *testing.T) {
	dir := t.TempDir()
	if _, err := Save(dir, "broken.pdf", io.MultiReader(strings.NewReader("partial"), failingReader{})); err == nil {
		t.Fatalf("expected copy error")
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.pdf")); !os.IsNotExist(err) {
		t.Fatalf("partial file left behind: %v", err)
	}
}
