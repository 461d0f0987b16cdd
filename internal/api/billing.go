package api

import (
	"context"
	"net/http"

	"github.com/jonathan/jobdesk/internal/types"
)

// BillingService wraps the /billing endpoints. Payment itself happens on the
// external checkout and portal pages whose URLs these calls return.
type BillingService struct {
	client *Client
}

// Billing returns the billing service.
func (c *Client) Billing() *BillingService {
	return &BillingService{client: c}
}

// Plan returns the current subscription.
func (s *BillingService) Plan(ctx context.Context) (*types.CurrentPlan, error) {
	return doPtr[types.CurrentPlan](ctx, s.client, "/billing/plan", nil)
}

// Checkout starts a checkout and returns its redirect URL.
func (s *BillingService) Checkout(ctx context.Context, req *types.CheckoutRequest) (*types.CheckoutSession, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return doPtr[types.CheckoutSession](ctx, s.client, "/billing/checkout", &RequestOptions{Method: http.MethodPost, Body: req})
}

// History lists past invoices.
func (s *BillingService) History(ctx context.Context) ([]types.BillingRecord, error) {
	return Do[[]types.BillingRecord](ctx, s.client, "/billing/history", nil)
}

// Portal returns the billing portal URL.
func (s *BillingService) Portal(ctx context.Context) (*types.PortalSession, error) {
	return doPtr[types.PortalSession](ctx, s.client, "/billing/portal", &RequestOptions{Method: http.MethodPost})
}
