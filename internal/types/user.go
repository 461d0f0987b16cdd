package types

import "time"

// UserProfile is the signed-in user's profile.
type UserProfile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Phone       string    `json:"phone,omitempty"`
	Location    string    `json:"location,omitempty"`
	Headline    string    `json:"headline,omitempty"`
	LinkedInURL string    `json:"linkedin_url,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// UpdateProfileRequest is the payload for PUT /users/profile.
type UpdateProfileRequest struct {
	FullName    string `json:"full_name,omitempty" validate:"omitempty,min=1,max=120"`
	Phone       string `json:"phone,omitempty"`
	Location    string `json:"location,omitempty"`
	Headline    string `json:"headline,omitempty" validate:"omitempty,max=220"`
	LinkedInURL string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
}

// Validate validates the UpdateProfileRequest using the validator.
func (r *UpdateProfileRequest) Validate() error {
	validate := newValidator()
	return validate.Struct(r)
}

// UserPreferences are settings round-tripped to the backend.
type UserPreferences struct {
	Language           string `json:"language,omitempty"`
	DefaultTemplateID  string `json:"default_template_id,omitempty"`
	DefaultTone        string `json:"default_tone,omitempty"`
	EmailNotifications bool   `json:"email_notifications"`
	WeeklyDigest       bool   `json:"weekly_digest"`
}
