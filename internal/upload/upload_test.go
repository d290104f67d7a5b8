package upload

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDocumentRejectsOversize(t *testing.T) {
	f := FromBytes("big.doc", []byte("x"))
	f.Size = MaxDocumentBytes + 1
	if err := ValidateDocument(f); err == nil {
		t.Fatalf("expected size error")
	}
	f.Size = MaxDocumentBytes
	if err := ValidateDocument(f); err != nil {
		t.Fatalf("at-limit file rejected: %v", err)
	}
}

func TestValidateDocumentExtensionAllowList(t *testing.T) {
	for _, name := range []string{"a.doc", "b.docx", "C.DOCX"} {
		if err := ValidateDocument(FromBytes(name, []byte("content"))); err != nil {
			t.Fatalf("%s rejected: %v", name, err)
		}
	}
	for _, name := range []string{"a.txt", "b.exe", "c", "d.pdf.sh"} {
		if err := ValidateDocument(FromBytes(name, []byte("content"))); err == nil {
			t.Fatalf("%s must be rejected", name)
		}
	}
}

func TestValidateDocumentRejectsCorruptPDF(t *testing.T) {
	f := FromBytes("paper.pdf", []byte("this is not a pdf at all"))
	err := ValidateDocument(f)
	if err == nil {
		t.Fatalf("expected corrupt PDF rejection")
	}
	if !strings.Contains(err.Error(), "PDF") && !strings.Contains(err.Error(), "document") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestValidateDocumentNilFile(t *testing.T) {
	if err := ValidateDocument(nil); err == nil {
		t.Fatalf("expected error for nil file")
	}
}

func TestOpenReadsLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thesis.docx")
	if err := os.WriteFile(path, []byte("word soup"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if f.Name != "thesis.docx" || f.Size != int64(len("word soup")) {
		t.Fatalf("metadata %q %d", f.Name, f.Size)
	}
	data, err := io.ReadAll(f.Reader())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, []byte("word soup")) {
		t.Fatalf("content %q", data)
	}
	if err := ValidateDocument(f); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "absent.pdf")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFromBytesCloseIsNoOp(t *testing.T) {
	f := FromBytes("a.doc", []byte("x"))
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
