package editor

import (
	"context"
	"sync"

	"github.com/jonathan/jobdesk/internal/types"
)

// LinkedInBackend is implemented by *api.LinkedInService.
type LinkedInBackend interface {
	Optimize(ctx context.Context, req *types.LinkedInOptimizeRequest) (*types.LinkedInOptimization, error)
}

// LinkedInOptimizer keeps the latest optimisation per profile section.
type LinkedInOptimizer struct {
	mu      sync.Mutex
	backend LinkedInBackend
	results map[string]*types.LinkedInOptimization
	fields  fields
}

// NewLinkedInOptimizer creates an optimizer.
func NewLinkedInOptimizer(backend LinkedInBackend) *LinkedInOptimizer {
	return &LinkedInOptimizer{backend: backend, results: make(map[string]*types.LinkedInOptimization)}
}

// Optimize rewrites one section (headline, about, experience, skills).
func (o *LinkedInOptimizer) Optimize(ctx context.Context, section, text, targetRole string) (*types.LinkedInOptimization, error) {
	o.mu.Lock()
	token := o.fields.begin(section)
	o.mu.Unlock()

	res, err := o.backend.Optimize(ctx, &types.LinkedInOptimizeRequest{Section: section, Content: text, TargetRole: targetRole})

	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.fields.finish(section, token, err, "Failed to optimize section") {
		return nil, staleOr(err)
	}
	o.results[section] = res
	return res, nil
}

// Result returns the last optimisation of section, or nil.
func (o *LinkedInOptimizer) Result(section string) *types.LinkedInOptimization {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.results[section]
}

// State returns the request state of a section.
func (o *LinkedInOptimizer) State(section string) FieldState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fields.state(section)
}
