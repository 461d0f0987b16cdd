package editor

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/jonathan/jobdesk/internal/api"
	"github.com/jonathan/jobdesk/internal/types"
)

// CoverLetterBackend is the part of the API the cover letter editor needs.
// *api.CoverLetterService implements it.
type CoverLetterBackend interface {
	Generate(ctx context.Context, req *types.GenerateCoverLetterRequest) (*types.CoverLetterContent, error)
	RewriteParagraph(ctx context.Context, req *types.RewriteParagraphRequest) (string, error)
	SaveVersion(ctx context.Context, id string, req *types.SaveVersionRequest) (*types.CoverLetterVersion, error)
	Versions(ctx context.Context, id string) ([]types.CoverLetterVersion, error)
}

// Cover letter field names.
const (
	FieldLetter   = "letter"
	FieldVersions = "versions"
)

// ParagraphField names the state of paragraph i.
func ParagraphField(i int) string {
	return "paragraph." + strconv.Itoa(i)
}

// CoverLetterEditor generates and edits one cover letter.
type CoverLetterEditor struct {
	mu       sync.Mutex
	backend  CoverLetterBackend
	letter   *types.CoverLetterContent
	versions []types.CoverLetterVersion
	fields   fields
}

// NewCoverLetterEditor creates an empty editor.
func NewCoverLetterEditor(backend CoverLetterBackend) *CoverLetterEditor {
	return &CoverLetterEditor{backend: backend}
}

// Letter returns a copy of the current letter, or nil before generation.
func (e *CoverLetterEditor) Letter() *types.CoverLetterContent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyLetter(e.letter)
}

// SetLetter loads an existing letter into the editor.
func (e *CoverLetterEditor) SetLetter(letter *types.CoverLetterContent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.letter = copyLetter(letter)
}

// State returns the request state of a field.
func (e *CoverLetterEditor) State(field string) FieldState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fields.state(field)
}

// Generate writes a new letter. A blank job description fails locally with
// "Job description is required" and nothing is sent.
func (e *CoverLetterEditor) Generate(ctx context.Context, req *types.GenerateCoverLetterRequest) (*types.CoverLetterContent, error) {
	if err := req.Validate(); err != nil {
		msg := types.ValidationMessage(err)
		e.mu.Lock()
		e.fields.fail(FieldLetter, msg)
		e.mu.Unlock()
		return nil, &api.ValidationError{Message: msg, Err: err}
	}

	e.mu.Lock()
	token := e.fields.begin(FieldLetter)
	e.mu.Unlock()

	letter, err := e.backend.Generate(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.fields.finish(FieldLetter, token, err, "Failed to generate cover letter") {
		return nil, staleOr(err)
	}
	e.letter = copyLetter(letter)
	e.versions = nil
	return copyLetter(letter), nil
}

// SetParagraph replaces paragraph i with hand-edited text.
func (e *CoverLetterEditor) SetParagraph(i int, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.letter == nil || i < 0 || i >= len(e.letter.Paragraphs) {
		return fmt.Errorf("no paragraph at index %d", i)
	}
	e.replaceParagraphLocked(i, text)
	return nil
}

// RewriteParagraph asks for a new version of paragraph i.
func (e *CoverLetterEditor) RewriteParagraph(ctx context.Context, i int, instruction string) (string, error) {
	field := ParagraphField(i)

	e.mu.Lock()
	if e.letter == nil || i < 0 || i >= len(e.letter.Paragraphs) {
		e.mu.Unlock()
		return "", fmt.Errorf("no paragraph at index %d", i)
	}
	req := &types.RewriteParagraphRequest{
		CoverLetterID:  e.letter.ID,
		Paragraph:      e.letter.Paragraphs[i],
		ParagraphIndex: i,
		Instruction:    instruction,
		Tone:           e.letter.Tone,
	}
	token := e.fields.begin(field)
	e.mu.Unlock()

	text, err := e.backend.RewriteParagraph(ctx, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.fields.finish(field, token, err, "Failed to rewrite paragraph") {
		return "", staleOr(err)
	}
	if e.letter == nil || i >= len(e.letter.Paragraphs) {
		return "", fmt.Errorf("no paragraph at index %d", i)
	}
	e.replaceParagraphLocked(i, text)
	return text, nil
}

func (e *CoverLetterEditor) replaceParagraphLocked(i int, text string) {
	paragraphs := make([]string, len(e.letter.Paragraphs))
	copy(paragraphs, e.letter.Paragraphs)
	paragraphs[i] = text
	e.letter.Paragraphs = paragraphs
}

// SaveVersion stores a labelled snapshot of the current paragraphs.
func (e *CoverLetterEditor) SaveVersion(ctx context.Context, label string) (*types.CoverLetterVersion, error) {
	e.mu.Lock()
	if e.letter == nil {
		e.mu.Unlock()
		return nil, fmt.Errorf("no cover letter to save")
	}
	id := e.letter.ID
	req := &types.SaveVersionRequest{Label: label, Paragraphs: append([]string(nil), e.letter.Paragraphs...)}
	token := e.fields.begin(FieldVersions)
	e.mu.Unlock()

	version, err := e.backend.SaveVersion(ctx, id, req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.fields.finish(FieldVersions, token, err, "Failed to save version") {
		return nil, staleOr(err)
	}
	e.versions = append(e.versions, *version)
	return version, nil
}

// Versions fetches the saved snapshots of the current letter.
func (e *CoverLetterEditor) Versions(ctx context.Context) ([]types.CoverLetterVersion, error) {
	e.mu.Lock()
	if e.letter == nil {
		e.mu.Unlock()
		return nil, nil
	}
	id := e.letter.ID
	token := e.fields.begin(FieldVersions)
	e.mu.Unlock()

	versions, err := e.backend.Versions(ctx, id)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.fields.finish(FieldVersions, token, err, "Failed to load versions") {
		return nil, staleOr(err)
	}
	e.versions = versions
	return append([]types.CoverLetterVersion(nil), versions...), nil
}

// RestoreVersion replaces the paragraphs with a saved snapshot.
func (e *CoverLetterEditor) RestoreVersion(versionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.letter == nil {
		return fmt.Errorf("no cover letter loaded")
	}
	for _, v := range e.versions {
		if v.ID == versionID {
			e.letter.Paragraphs = append([]string(nil), v.Paragraphs...)
			return nil
		}
	}
	return fmt.Errorf("version %s not found", versionID)
}

func copyLetter(letter *types.CoverLetterContent) *types.CoverLetterContent {
	if letter == nil {
		return nil
	}
	out := *letter
	out.Paragraphs = append([]string(nil), letter.Paragraphs...)
	return &out
}
