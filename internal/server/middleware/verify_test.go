package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobdesk/internal/session"
)

// countingLookup resolves tokens from a map and counts backend round trips.
type countingLookup struct {
	users map[string]string
	calls int
}

func (l *countingLookup) lookup(_ context.Context, token string) (string, error) {
	l.calls++
	if id, ok := l.users[token]; ok {
		return id, nil
	}
	return "", errors.New("backend rejected token")
}

func newVerifier(l *countingLookup, ttl time.Duration, now *time.Time) *BackendValidator {
	v := NewBackendValidator(l.lookup, ttl)
	v.now = func() time.Time { return *now }
	return v
}

func TestBackendValidator_CachesAcceptedTokens(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := &countingLookup{users: map[string]string{"opaque-ana": "ana", "opaque-ben": "ben"}}
	v := newVerifier(l, time.Minute, &now)

	for i := 0; i < 3; i++ {
		id, err := v.ValidateToken("opaque-ana")
		require.NoError(t, err)
		assert.Equal(t, "ana", id)
	}
	assert.Equal(t, 1, l.calls)

	id, err := v.ValidateToken("opaque-ben")
	require.NoError(t, err)
	assert.Equal(t, "ben", id)
	assert.Equal(t, 2, l.calls)

	now = now.Add(61 * time.Second)
	_, err = v.ValidateToken("opaque-ana")
	require.NoError(t, err)
	assert.Equal(t, 3, l.calls, "stale entries are verified again")
}

func TestBackendValidator_RejectionsAreNotCached(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := &countingLookup{users: map[string]string{}}
	v := newVerifier(l, time.Minute, &now)

	_, err := v.ValidateToken("forged")
	assert.Error(t, err)
	_, err = v.ValidateToken("forged")
	assert.Error(t, err)
	assert.Equal(t, 2, l.calls)

	_, err = v.ValidateToken("")
	assert.Error(t, err)
	assert.Equal(t, 2, l.calls)
}

func TestBackendValidator_SameSubjectDifferentSignature(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	claims := &session.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "ana"}}
	genuine, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("idp-key"))
	require.NoError(t, err)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-key"))
	require.NoError(t, err)

	l := &countingLookup{users: map[string]string{genuine: "ana"}}
	v := newVerifier(l, time.Minute, &now)

	id, err := v.ValidateToken(genuine)
	require.NoError(t, err)
	assert.Equal(t, "ana", id)

	_, err = v.ValidateToken(forged)
	assert.Error(t, err, "a cached subject must not vouch for another token")
}

func TestBackendValidator_TokenExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tok := signed(t, &session.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "ana",
		ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Second)),
	}})
	l := &countingLookup{users: map[string]string{tok: "ana"}}
	v := newVerifier(l, 5*time.Minute, &now)

	_, err := v.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, 1, l.calls)

	now = now.Add(31 * time.Second)
	_, err = v.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, 1, l.calls, "expired tokens never reach the backend")
}

func TestBackendValidator_EmptyUser(t *testing.T) {
	v := NewBackendValidator(func(context.Context, string) (string, error) { return "", nil }, 0)
	_, err := v.ValidateToken("tok")
	assert.Error(t, err)
	assert.Equal(t, DefaultVerifyTTL, v.ttl)
}

func TestAuthMiddleware_WithBackendValidator(t *testing.T) {
	l := &countingLookup{users: map[string]string{"opaque-ana": "ana"}}
	v := NewBackendValidator(l.lookup, time.Minute)

	w, r := serve(v, "Bearer opaque-ana")
	assert.Equal(t, http.StatusNoContent, w.Code)
	id, err := GetUserID(r)
	require.NoError(t, err)
	assert.Equal(t, "ana", id)

	w, _ = serve(v, "Bearer opaque-eve")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
