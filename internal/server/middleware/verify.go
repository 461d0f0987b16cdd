package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/jonathan/jobdesk/internal/session"
)

// DefaultVerifyTTL is how long a verified token is trusted before the
// backend is asked again.
const DefaultVerifyTTL = 5 * time.Minute

// LookupFunc asks the identity owner which user a token belongs to.
type LookupFunc func(ctx context.Context, token string) (userID string, err error)

type verifiedToken struct {
	userID string
	until  time.Time
}

// BackendValidator trusts a token only after the backend has accepted it.
// Results are cached per token digest until the TTL or the token's own
// expiry, whichever is first.
type BackendValidator struct {
	lookup  LookupFunc
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]verifiedToken
}

// NewBackendValidator creates a validator around lookup. A ttl of zero uses
// DefaultVerifyTTL.
func NewBackendValidator(lookup LookupFunc, ttl time.Duration) *BackendValidator {
	if ttl <= 0 {
		ttl = DefaultVerifyTTL
	}
	return &BackendValidator{
		lookup:  lookup,
		ttl:     ttl,
		timeout: 10 * time.Second,
		now:     time.Now,
		cache:   make(map[string]verifiedToken),
	}
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken implements TokenValidator.
func (v *BackendValidator) ValidateToken(token string) (string, error) {
	if token == "" {
		return "", errors.New("token is empty")
	}
	now := v.now()

	// Opaque tokens are allowed; a decodable one that has expired is
	// rejected without asking the backend.
	var expiry time.Time
	if claims, err := session.ParseClaims(token); err == nil {
		if claims.Expired(now) {
			return "", ErrTokenExpired
		}
		if claims.ExpiresAt != nil {
			expiry = claims.ExpiresAt.Time
		}
	}

	key := tokenDigest(token)
	v.mu.Lock()
	if hit, ok := v.cache[key]; ok {
		if now.Before(hit.until) {
			v.mu.Unlock()
			return hit.userID, nil
		}
		delete(v.cache, key)
	}
	v.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()
	userID, err := v.lookup(ctx, token)
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", errors.New("token has no user")
	}

	until := now.Add(v.ttl)
	if !expiry.IsZero() && expiry.Before(until) {
		until = expiry
	}
	v.mu.Lock()
	v.cache[key] = verifiedToken{userID: userID, until: until}
	v.mu.Unlock()
	return userID, nil
}
