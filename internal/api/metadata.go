package api

import (
	"context"
	"io"
	"net/http"

	"erepo/pkg/domain"
)

// ExtractMetadata uploads a document to the AI metadata-extraction helper
// and returns the structured bibliographic fields it found. docType selects
// the extraction profile ("book" or "paper"). The extraction itself runs in
// an external service; this is only the transport.
func (c *Client) ExtractMetadata(ctx context.Context, docType, filename string, r io.Reader) (domain.ExtractedMetadata, error) {
	f := newForm()
	f.file("file", filename, r)

	var meta domain.ExtractedMetadata
	if err := c.sendForm(ctx, http.MethodPost, "/upload/"+docType, f, &meta); err != nil {
		return domain.ExtractedMetadata{}, err
	}
	return meta, nil
}
