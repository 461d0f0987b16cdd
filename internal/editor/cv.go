package editor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jonathan/jobdesk/internal/types"
)

// CVBackend is the part of the API the CV editor needs. *api.CVService
// implements it.
type CVBackend interface {
	Update(ctx context.Context, id string, req *types.UpdateCVRequest) (*types.CVDetail, error)
	AutoSave(ctx context.Context, id string, req *types.UpdateCVRequest) error
	ImproveText(ctx context.Context, req *types.ImproveTextRequest) (string, error)
	GenerateSummary(ctx context.Context, req *types.GenerateSummaryRequest) (string, error)
	SuggestBullets(ctx context.Context, req *types.SuggestBulletsRequest) ([]string, error)
}

// Field names for state that does not map to a content path.
const (
	FieldSave     = "save"
	FieldAutoSave = "auto_save"
)

// CVEditor edits one CV. Field paths are dotted: "summary",
// "experience.0.description". It is safe for concurrent use.
type CVEditor struct {
	mu      sync.Mutex
	backend CVBackend
	cv      types.CVDetail
	fields  fields
	dirty   bool
	tone    string
}

// NewCVEditor starts editing a copy of cv.
func NewCVEditor(backend CVBackend, cv *types.CVDetail) *CVEditor {
	e := &CVEditor{backend: backend, cv: *cv}
	e.cv.Content = deepCopy(cv.Content)
	if e.cv.Content == nil {
		e.cv.Content = types.CVContent{}
	}
	return e
}

// SetTone sets the tone passed to summary generation.
func (e *CVEditor) SetTone(tone string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tone = tone
}

// CV returns a copy of the edited CV.
func (e *CVEditor) CV() *types.CVDetail {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.cv
	out.Content = deepCopy(e.cv.Content)
	return &out
}

// Dirty reports unsaved changes.
func (e *CVEditor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// State returns the request state of a field.
func (e *CVEditor) State(field string) FieldState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fields.state(field)
}

// Get returns the value at a field path.
func (e *CVEditor) Get(field string) (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return getPath(e.cv.Content, field)
}

// SetField writes value at a field path.
func (e *CVEditor) SetField(field string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := setPath(e.cv.Content, field, value); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// ImproveText rewrites text and, if no newer request for field was made in
// the meantime, stores the result at field.
func (e *CVEditor) ImproveText(ctx context.Context, field, text string) (string, error) {
	e.mu.Lock()
	token := e.fields.begin(field)
	section := strings.SplitN(field, ".", 2)[0]
	e.mu.Unlock()

	improved, err := e.backend.ImproveText(ctx, &types.ImproveTextRequest{Text: text, Section: section})

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.fields.finish(field, token, err, "Failed to improve text") {
		return "", staleOr(err)
	}
	if err := setPath(e.cv.Content, field, improved); err != nil {
		return "", err
	}
	e.dirty = true
	return improved, nil
}

// GenerateSummary writes a new summary for targetRole.
func (e *CVEditor) GenerateSummary(ctx context.Context, targetRole string) (string, error) {
	e.mu.Lock()
	token := e.fields.begin(types.SectionSummary)
	req := &types.GenerateSummaryRequest{CVID: e.cv.ID, TargetRole: targetRole, Tone: e.tone}
	e.mu.Unlock()

	summary, err := e.backend.GenerateSummary(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.fields.finish(types.SectionSummary, token, err, "Failed to generate summary") {
		return "", staleOr(err)
	}
	e.cv.Content[types.SectionSummary] = summary
	e.dirty = true
	return summary, nil
}

// SuggestBullets fetches achievement bullets for one experience entry and
// stores them in its "achievements" list.
func (e *CVEditor) SuggestBullets(ctx context.Context, index int) ([]string, error) {
	field := types.SectionExperience + "." + strconv.Itoa(index) + ".achievements"

	e.mu.Lock()
	experience := e.cv.Content.Experience()
	if index < 0 || index >= len(experience) {
		e.mu.Unlock()
		return nil, fmt.Errorf("no experience entry at index %d", index)
	}
	entry := experience[index]
	req := &types.SuggestBulletsRequest{
		JobTitle:    firstString(entry, "title", "position", "role"),
		Company:     firstString(entry, "company"),
		Description: firstString(entry, "description"),
	}
	token := e.fields.begin(field)
	e.mu.Unlock()

	bullets, err := e.backend.SuggestBullets(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.fields.finish(field, token, err, "Failed to suggest bullets") {
		return nil, staleOr(err)
	}
	list := make([]any, len(bullets))
	for i, b := range bullets {
		list[i] = b
	}
	if err := setPath(e.cv.Content, field, list); err != nil {
		return nil, err
	}
	e.dirty = true
	return bullets, nil
}

// Save writes the CV to the backend and adopts the backend's copy.
func (e *CVEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	token := e.fields.begin(FieldSave)
	id := e.cv.ID
	req := e.updateRequestLocked()
	e.mu.Unlock()

	saved, err := e.backend.Update(ctx, id, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.fields.finish(FieldSave, token, err, "Failed to save CV") {
		return staleOr(err)
	}
	if saved != nil {
		e.cv = *saved
		if e.cv.Content == nil {
			e.cv.Content = types.CVContent{}
		}
	}
	e.dirty = false
	return nil
}

// AutoSave stores a draft when there are unsaved changes.
func (e *CVEditor) AutoSave(ctx context.Context) error {
	e.mu.Lock()
	if !e.dirty {
		e.mu.Unlock()
		return nil
	}
	token := e.fields.begin(FieldAutoSave)
	id := e.cv.ID
	req := e.updateRequestLocked()
	e.mu.Unlock()

	err := e.backend.AutoSave(ctx, id, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.fields.finish(FieldAutoSave, token, err, "Auto-save failed") {
		return staleOr(err)
	}
	e.dirty = false
	return nil
}

func (e *CVEditor) updateRequestLocked() *types.UpdateCVRequest {
	return &types.UpdateCVRequest{
		Title:      e.cv.Title,
		TemplateID: e.cv.TemplateID,
		Content:    deepCopy(e.cv.Content),
	}
}

func staleOr(err error) error {
	if err != nil {
		return err
	}
	return ErrSuperseded
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
