package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jonathan/jobdesk/internal/types"
)

// CVService wraps the /cv endpoints.
type CVService struct {
	client *Client
}

// CV returns the CV service.
func (c *Client) CV() *CVService {
	return &CVService{client: c}
}

// List returns the user's CVs.
func (s *CVService) List(ctx context.Context) ([]types.CVSummary, error) {
	return Do[[]types.CVSummary](ctx, s.client, "/cv/", nil)
}

// Get returns one CV with content.
func (s *CVService) Get(ctx context.Context, id string) (*types.CVDetail, error) {
	return doPtr[types.CVDetail](ctx, s.client, "/cv/"+pathID(id), nil)
}

// Create creates a CV.
func (s *CVService) Create(ctx context.Context, req *types.CreateCVRequest) (*types.CVDetail, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return doPtr[types.CVDetail](ctx, s.client, "/cv/", &RequestOptions{Method: http.MethodPost, Body: req})
}

// Update replaces a CV's title, template and content.
func (s *CVService) Update(ctx context.Context, id string, req *types.UpdateCVRequest) (*types.CVDetail, error) {
	return doPtr[types.CVDetail](ctx, s.client, "/cv/"+pathID(id), &RequestOptions{Method: http.MethodPut, Body: req})
}

// AutoSave stores a draft of the content without creating a version.
func (s *CVService) AutoSave(ctx context.Context, id string, req *types.UpdateCVRequest) error {
	return s.client.Request(ctx, "/cv/"+pathID(id)+"/auto-save", &RequestOptions{Method: http.MethodPost, Body: req}, nil)
}

// Duplicate copies a CV and returns the copy.
func (s *CVService) Duplicate(ctx context.Context, id string) (*types.CVSummary, error) {
	return doPtr[types.CVSummary](ctx, s.client, "/cv/"+pathID(id)+"/duplicate", &RequestOptions{Method: http.MethodPost})
}

// Delete removes a CV.
func (s *CVService) Delete(ctx context.Context, id string) error {
	return s.client.Request(ctx, "/cv/"+pathID(id), &RequestOptions{Method: http.MethodDelete}, nil)
}

// Preview downloads the rendered preview PDF.
func (s *CVService) Preview(ctx context.Context, id string) (*Blob, error) {
	return s.client.Download(ctx, "/cv/"+pathID(id)+"/preview", nil)
}

// Export downloads the CV in the given format (pdf or docx).
func (s *CVService) Export(ctx context.Context, id, format string) (*Blob, error) {
	return s.client.Download(ctx, "/cv/"+pathID(id)+"/export", &RequestOptions{Query: url.Values{"format": {format}}})
}

// ImproveText asks the backend to rewrite a passage.
func (s *CVService) ImproveText(ctx context.Context, req *types.ImproveTextRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	resp, err := Do[types.ImproveTextResponse](ctx, s.client, "/cv/ai/improve-text", &RequestOptions{Method: http.MethodPost, Body: req})
	return resp.ImprovedText, err
}

// GenerateSummary asks for a professional summary.
func (s *CVService) GenerateSummary(ctx context.Context, req *types.GenerateSummaryRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	resp, err := Do[types.GenerateSummaryResponse](ctx, s.client, "/cv/ai/generate-summary", &RequestOptions{Method: http.MethodPost, Body: req})
	return resp.Summary, err
}

// SuggestBullets asks for achievement bullets.
func (s *CVService) SuggestBullets(ctx context.Context, req *types.SuggestBulletsRequest) ([]string, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	resp, err := Do[types.SuggestBulletsResponse](ctx, s.client, "/cv/ai/suggest-bullets", &RequestOptions{Method: http.MethodPost, Body: req})
	return resp.Bullets, err
}

// doPtr is Do for single resources, returning nil on error.
func doPtr[T any](ctx context.Context, c *Client, endpoint string, opts *RequestOptions) (*T, error) {
	out := new(T)
	if err := c.Request(ctx, endpoint, opts, out); err != nil {
		return nil, err
	}
	return out, nil
}
