package types

import "time"

// CurrentPlan is the user's subscription as reported by the backend.
type CurrentPlan struct {
	PlanID           string     `json:"plan_id"`
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	Interval         string     `json:"interval,omitempty"`
	PriceCents       int        `json:"price_cents"`
	Currency         string     `json:"currency,omitempty"`
	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty"`
	CreditsUsed      int        `json:"credits_used"`
	CreditsLimit     int        `json:"credits_limit"`
}

// CheckoutRequest starts an external checkout for a plan.
type CheckoutRequest struct {
	PlanID     string `json:"plan_id" validate:"required"`
	Interval   string `json:"interval,omitempty" validate:"omitempty,oneof=month year"`
	SuccessURL string `json:"success_url,omitempty" validate:"omitempty,url"`
	CancelURL  string `json:"cancel_url,omitempty" validate:"omitempty,url"`
}

// Validate validates the CheckoutRequest using the validator.
func (r *CheckoutRequest) Validate() error {
	validate := newValidator()
	return validate.Struct(r)
}

// CheckoutSession is the redirect target for a checkout.
type CheckoutSession struct {
	SessionID string `json:"session_id,omitempty"`
	URL       string `json:"url"`
}

// PortalSession is the redirect target for the billing portal.
type PortalSession struct {
	URL string `json:"url"`
}

// BillingRecord is one invoice or payment in the billing history.
type BillingRecord struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	AmountCents int       `json:"amount_cents"`
	Currency    string    `json:"currency,omitempty"`
	Status      string    `json:"status"`
	InvoiceURL  string    `json:"invoice_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
