// Package download derives filenames for downloaded works and writes the
// streams to disk.
package download

import (
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Filename picks the name for a downloaded file. Preference order: the
// Content-Disposition header, then the title plus the extension of the
// record's file_url, then title.pdf.
func Filename(contentDisposition, title, fileURL string) string {
	if contentDisposition != "" {
		if _, params, err := mime.ParseMediaType(contentDisposition); err == nil {
			if name := params["filename"]; name != "" {
				return safeFilename(name)
			}
		}
	}
	if ext := urlExtension(fileURL); ext != "" {
		return safeFilename(title + ext)
	}
	return safeFilename(title + ".pdf")
}

// urlExtension extracts the file extension from a URL, ignoring query
// strings.
func urlExtension(fileURL string) string {
	if fileURL == "" {
		return ""
	}
	p := fileURL
	if u, err := url.Parse(fileURL); err == nil && u.Path != "" {
		p = u.Path
	}
	return path.Ext(p)
}

// Save streams r into dir/filename, creating dir if needed, and returns
// the written path.
func Save(dir, filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	target := filepath.Join(dir, safeFilename(filename))
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("write file: %w", err)
	}
	return target, nil
}

func safeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	name = strings.TrimSpace(name)
	if name == "" || name == "." {
		return "download"
	}
	return name
}
