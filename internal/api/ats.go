package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jonathan/jobdesk/internal/types"
)

// ATSAnalyzePath is the backend endpoint for ATS analysis. The console server
// proxies /api/ats-analyze to it.
const ATSAnalyzePath = "/ats/analyze"

// ATSService wraps the /ats endpoints.
type ATSService struct {
	client *Client
}

// ATS returns the ATS service.
func (c *Client) ATS() *ATSService {
	return &ATSService{client: c}
}

// Analyze scores a CV against a job description. Analysis can take minutes,
// so it runs on the long-timeout transport.
func (s *ATSService) Analyze(ctx context.Context, req *types.ATSAnalyzeRequest) (*types.ATSAnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: types.ValidationMessage(err), Err: err}
	}
	return doPtr[types.ATSAnalysisResult](ctx, s.client, ATSAnalyzePath, &RequestOptions{Method: http.MethodPost, Body: req, Long: true})
}

// ApplyChanges applies accepted suggestions to the CV.
func (s *ATSService) ApplyChanges(ctx context.Context, req *types.ApplyChangesRequest) (*types.ApplyChangesResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return doPtr[types.ApplyChangesResponse](ctx, s.client, "/ats/apply-changes", &RequestOptions{Method: http.MethodPost, Body: req})
}

// FetchJob has the backend fetch and extract a posting from a URL.
func (s *ATSService) FetchJob(ctx context.Context, req *types.FetchJobRequest) (*types.FetchJobResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return doPtr[types.FetchJobResponse](ctx, s.client, "/ats/fetch-job", &RequestOptions{Method: http.MethodPost, Body: req, Long: true})
}

// DownloadTailored downloads the tailored CV produced by an analysis.
func (s *ATSService) DownloadTailored(ctx context.Context, cvID, format string) (*Blob, error) {
	query := url.Values{"cv_id": {cvID}}
	if format != "" {
		query.Set("format", format)
	}
	return s.client.Download(ctx, "/ats/download-tailored", &RequestOptions{Query: query})
}

// DownloadOptimized renders the CV with the selected suggestions applied.
func (s *ATSService) DownloadOptimized(ctx context.Context, req *types.DownloadOptimizedRequest) (*Blob, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.client.Download(ctx, "/ats/download-optimized", &RequestOptions{Method: http.MethodPost, Body: req, Long: true})
}
