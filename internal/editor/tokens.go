// Package editor holds the state behind the AI-assisted editors. Each
// editable field tracks its own request state; a response is applied only if
// it answers the most recent request for that field.
package editor

import (
	"errors"
	"sync"

	"github.com/jonathan/jobdesk/internal/api"
)

// ErrSuperseded is returned when a newer request for the same field was
// issued while this one was in flight. Its result has been discarded.
var ErrSuperseded = errors.New("superseded by a newer request")

// Tokens issues per-field, monotonically increasing request tokens.
// The zero value is ready to use.
type Tokens struct {
	mu   sync.Mutex
	last map[string]uint64
}

// Begin issues a new token for field, invalidating all earlier ones.
func (t *Tokens) Begin(field string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last == nil {
		t.last = make(map[string]uint64)
	}
	t.last[field]++
	return t.last[field]
}

// Current reports whether token is the latest one issued for field.
func (t *Tokens) Current(field string, token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return token != 0 && t.last[field] == token
}

// FieldState is the request state of one editable field.
type FieldState struct {
	Loading bool
	Err     string
}

// fields combines tokens with the visible state. Callers serialise access.
type fields struct {
	tokens Tokens
	states map[string]FieldState
}

func (f *fields) begin(field string) uint64 {
	if f.states == nil {
		f.states = make(map[string]FieldState)
	}
	f.states[field] = FieldState{Loading: true}
	return f.tokens.Begin(field)
}

// finish records the outcome of a request and reports whether the caller
// should apply its result.
func (f *fields) finish(field string, token uint64, err error, fallback string) bool {
	if !f.tokens.Current(field, token) {
		return false
	}
	f.states[field] = FieldState{Err: api.UserMessage(err, fallback)}
	return err == nil
}

// fail sets an error on field without a request, e.g. after local validation.
func (f *fields) fail(field, msg string) {
	if f.states == nil {
		f.states = make(map[string]FieldState)
	}
	f.tokens.Begin(field)
	f.states[field] = FieldState{Err: msg}
}

func (f *fields) state(field string) FieldState {
	return f.states[field]
}
