// Package session holds the process-wide authentication state: where identity
// tokens come from, who is signed in, and who wants to know when that changes.
// A Session is created once at start-up and injected into the components that
// need it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// DefaultLoginPath is where an unauthorized response sends the user.
const DefaultLoginPath = "/login"

// ErrSignedOut is returned by IDToken when no identity is available.
var ErrSignedOut = errors.New("not signed in")

// User is the signed-in identity as decoded from the identity token.
type User struct {
	ID        string
	Email     string
	Name      string
	ExpiresAt time.Time
}

// Redirector performs the navigation side effect of a forced sign-out.
type Redirector interface {
	Redirect(path string)
}

// RedirectFunc adapts a function to the Redirector interface.
type RedirectFunc func(path string)

// Redirect calls f(path).
func (f RedirectFunc) Redirect(path string) { f(path) }

// Listener is notified with the current user (nil when signed out).
type Listener func(*User)

// Session is the shared auth state. It is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	source    oauth2.TokenSource
	user      *User
	listeners map[uint64]Listener
	nextID    uint64
	redirect  Redirector
	loginPath string
	now       func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithRedirector sets the navigation hook used by HandleUnauthorized.
func WithRedirector(r Redirector) Option {
	return func(s *Session) { s.redirect = r }
}

// WithLoginPath overrides DefaultLoginPath.
func WithLoginPath(path string) Option {
	return func(s *Session) { s.loginPath = path }
}

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a signed-out Session.
func New(opts ...Option) *Session {
	s := &Session{
		listeners: make(map[uint64]Listener),
		loginPath: DefaultLoginPath,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromIDToken creates a Session signed in with a fixed identity token.
// An empty token yields a signed-out Session.
func FromIDToken(idToken string, opts ...Option) (*Session, error) {
	s := New(opts...)
	if idToken == "" {
		return s, nil
	}
	if err := s.SignIn(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: idToken})); err != nil {
		return nil, err
	}
	return s, nil
}

// SignIn installs a token source, decodes the identity and notifies listeners.
// Tokens are cached by oauth2.ReuseTokenSource until they expire.
func (s *Session) SignIn(ctx context.Context, source oauth2.TokenSource) error {
	if source == nil {
		return fmt.Errorf("token source is nil")
	}
	reuse := oauth2.ReuseTokenSource(nil, source)

	tok, err := reuse.Token()
	if err != nil {
		return fmt.Errorf("failed to obtain identity token: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	user := userFromToken(idTokenOf(tok))

	s.mu.Lock()
	s.source = reuse
	s.user = user
	listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(listeners, user)
	return nil
}

// IDToken returns a bearer token for the backend.
func (s *Session) IDToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	source := s.source
	s.mu.Unlock()

	if source == nil {
		return "", ErrSignedOut
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	tok, err := source.Token()
	if err != nil {
		return "", fmt.Errorf("failed to refresh identity token: %w", err)
	}
	return idTokenOf(tok), nil
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *Session) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Expired reports whether the signed-in user's token has passed its expiry.
func (s *Session) Expired() bool {
	u := s.CurrentUser()
	return u != nil && !u.ExpiresAt.IsZero() && !s.now().Before(u.ExpiresAt)
}

// OnAuthStateChanged registers fn and calls it immediately with the current
// user. The returned function unsubscribes; calling it more than once is safe.
func (s *Session) OnAuthStateChanged(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.user
	s.mu.Unlock()

	notify([]Listener{fn}, current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// SignOut drops the identity and notifies listeners.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.source = nil
	s.user = nil
	listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(listeners, nil)
}

// HandleUnauthorized signs out and redirects to the login path. The API
// client calls it once for every 401 or 403 response.
func (s *Session) HandleUnauthorized() {
	s.SignOut()
	if s.redirect != nil {
		s.redirect.Redirect(s.loginPath)
	}
}

func (s *Session) snapshotLocked() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

func notify(listeners []Listener, user *User) {
	for _, l := range listeners {
		if user == nil {
			l(nil)
			continue
		}
		u := *user
		l(&u)
	}
}

// idTokenOf prefers an explicit id_token extra over the access token.
func idTokenOf(tok *oauth2.Token) string {
	if tok == nil {
		return ""
	}
	if id, ok := tok.Extra("id_token").(string); ok && id != "" {
		return id
	}
	return tok.AccessToken
}

// userFromToken decodes what it can; opaque tokens give an anonymous user.
func userFromToken(token string) *User {
	claims, err := ParseClaims(token)
	if err != nil {
		return &User{}
	}
	u := &User{
		ID:    claims.GetUserID(),
		Email: claims.Email,
		Name:  claims.Name,
	}
	if claims.ExpiresAt != nil {
		u.ExpiresAt = claims.ExpiresAt.Time
	}
	return u
}
