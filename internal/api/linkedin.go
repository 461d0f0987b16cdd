package api

import (
	"context"
	"net/http"

	"github.com/jonathan/jobdesk/internal/types"
)

// LinkedInService wraps the LinkedIn optimizer endpoint.
type LinkedInService struct {
	client *Client
}

// LinkedIn returns the LinkedIn service.
func (c *Client) LinkedIn() *LinkedInService {
	return &LinkedInService{client: c}
}

// Optimize rewrites one profile section for a target role.
func (s *LinkedInService) Optimize(ctx context.Context, req *types.LinkedInOptimizeRequest) (*types.LinkedInOptimization, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return doPtr[types.LinkedInOptimization](ctx, s.client, "/linkedin/optimize", &RequestOptions{Method: http.MethodPost, Body: req})
}
