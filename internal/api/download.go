package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Blob is an opaque binary response such as a rendered PDF or DOCX.
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string // from Content-Disposition, may be empty
}

// Download performs a request whose response is binary. Auth and error
// handling are the same as for Request.
func (c *Client) Download(ctx context.Context, endpoint string, opts *RequestOptions) (*Blob, error) {
	resp, err := c.do(ctx, endpoint, opts, "*/*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Message: MsgNetwork, Err: err}
	}

	return &Blob{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
		Filename:    filenameFromDisposition(resp.Header.Get("Content-Disposition")),
	}, nil
}

// Save writes the blob into dir. The server-supplied name wins over fallback;
// only the base name is used so a hostile header cannot escape dir.
func (b *Blob) Save(dir, fallback string) (string, error) {
	name := b.Filename
	if name == "" {
		name = fallback
	}
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("no file name for download")
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}

// Extension guesses a file extension from the content type.
func (b *Blob) Extension() string {
	mediaType, _, err := mime.ParseMediaType(b.ContentType)
	if err != nil {
		return ""
	}
	switch mediaType {
	case "application/pdf":
		return ".pdf"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ".docx"
	case "application/json":
		return ".json"
	case "application/zip":
		return ".zip"
	}
	return ""
}

func filenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["filename"])
}
