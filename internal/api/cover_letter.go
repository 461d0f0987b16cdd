package api

import (
	"context"
	"net/http"

	"github.com/jonathan/jobdesk/internal/types"
)

// CoverLetterService wraps the /cover-letter endpoints.
type CoverLetterService struct {
	client *Client
}

// CoverLetter returns the cover letter service.
func (c *Client) CoverLetter() *CoverLetterService {
	return &CoverLetterService{client: c}
}

// Generate writes a new cover letter. A blank job description is rejected
// without a network call.
func (s *CoverLetterService) Generate(ctx context.Context, req *types.GenerateCoverLetterRequest) (*types.CoverLetterContent, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: types.ValidationMessage(err), Err: err}
	}
	return doPtr[types.CoverLetterContent](ctx, s.client, "/cover-letter/generate", &RequestOptions{Method: http.MethodPost, Body: req, Long: true})
}

// RewriteParagraph rewrites one paragraph.
func (s *CoverLetterService) RewriteParagraph(ctx context.Context, req *types.RewriteParagraphRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	resp, err := Do[types.RewriteParagraphResponse](ctx, s.client, "/cover-letter/rewrite-paragraph", &RequestOptions{Method: http.MethodPost, Body: req})
	return resp.Paragraph, err
}

// SaveVersion stores a snapshot of the letter.
func (s *CoverLetterService) SaveVersion(ctx context.Context, id string, req *types.SaveVersionRequest) (*types.CoverLetterVersion, error) {
	return doPtr[types.CoverLetterVersion](ctx, s.client, "/cover-letter/"+pathID(id)+"/save-version", &RequestOptions{Method: http.MethodPost, Body: req})
}

// Versions lists saved snapshots.
func (s *CoverLetterService) Versions(ctx context.Context, id string) ([]types.CoverLetterVersion, error) {
	return Do[[]types.CoverLetterVersion](ctx, s.client, "/cover-letter/"+pathID(id)+"/versions", nil)
}

// Download renders the letter as PDF or DOCX.
func (s *CoverLetterService) Download(ctx context.Context, req *types.DownloadCoverLetterRequest) (*Blob, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.client.Download(ctx, "/cover-letter/download", &RequestOptions{Method: http.MethodPost, Body: req})
}
