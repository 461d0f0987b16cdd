// Package middleware provides HTTP middleware for the console server.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/jobdesk/internal/session"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const (
	userIDKey ContextKey = "userID"
	tokenKey  ContextKey = "bearerToken"
)

// ErrTokenExpired is returned by ClaimsValidator for tokens past their expiry.
var ErrTokenExpired = errors.New("token expired")

// TokenValidator turns a bearer token into the caller's user id.
type TokenValidator interface {
	ValidateToken(token string) (userID string, err error)
}

// ClaimsValidator decodes identity tokens and rejects expired ones or ones
// without a user. It does not check signatures, so it only suits callers
// that are already trusted; the console defaults to BackendValidator.
type ClaimsValidator struct {
	Now func() time.Time
}

// ValidateToken implements TokenValidator.
func (v ClaimsValidator) ValidateToken(token string) (string, error) {
	claims, err := session.ParseClaims(token)
	if err != nil {
		return "", err
	}
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	if claims.Expired(now()) {
		return "", ErrTokenExpired
	}
	id := claims.GetUserID()
	if id == "" {
		return "", errors.New("token has no subject")
	}
	return id, nil
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the user id and raw token in the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			userID, err := validator.ValidateToken(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// GetUserID returns the authenticated user id from the request context.
func GetUserID(r *http.Request) (string, error) {
	id, ok := r.Context().Value(userIDKey).(string)
	if !ok || id == "" {
		return "", errors.New("user ID not found in request context")
	}
	return id, nil
}

// GetToken returns the bearer token AuthMiddleware accepted.
func GetToken(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}
