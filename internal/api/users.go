package api

import (
	"context"
	"net/http"

	"github.com/jonathan/jobdesk/internal/types"
)

// UsersService wraps the /users endpoints.
type UsersService struct {
	client *Client
}

// Users returns the users service.
func (c *Client) Users() *UsersService {
	return &UsersService{client: c}
}

// Profile returns the signed-in user's profile.
func (s *UsersService) Profile(ctx context.Context) (*types.UserProfile, error) {
	return doPtr[types.UserProfile](ctx, s.client, "/users/profile", nil)
}

// UpdateProfile saves profile fields.
func (s *UsersService) UpdateProfile(ctx context.Context, req *types.UpdateProfileRequest) (*types.UserProfile, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return doPtr[types.UserProfile](ctx, s.client, "/users/profile", &RequestOptions{Method: http.MethodPut, Body: req})
}

// Preferences returns the user's settings.
func (s *UsersService) Preferences(ctx context.Context) (*types.UserPreferences, error) {
	return doPtr[types.UserPreferences](ctx, s.client, "/users/preferences", nil)
}

// UpdatePreferences saves the user's settings.
func (s *UsersService) UpdatePreferences(ctx context.Context, prefs *types.UserPreferences) (*types.UserPreferences, error) {
	return doPtr[types.UserPreferences](ctx, s.client, "/users/preferences", &RequestOptions{Method: http.MethodPut, Body: prefs})
}

// ExportData downloads an archive of the user's data.
func (s *UsersService) ExportData(ctx context.Context) (*Blob, error) {
	return s.client.Download(ctx, "/users/export-data", &RequestOptions{Method: http.MethodPost})
}

// DeleteAccount permanently deletes the account.
func (s *UsersService) DeleteAccount(ctx context.Context) error {
	return s.client.Request(ctx, "/users/account", &RequestOptions{Method: http.MethodDelete}, nil)
}
