package types

import (
	"strings"
	"time"
)

// CoverLetterContent is an editable cover letter. Paragraph order is the only structure.
type CoverLetterContent struct {
	ID         string   `json:"id"`
	Paragraphs []string `json:"paragraphs"`
	Tone       string   `json:"tone,omitempty"`
	Format     string   `json:"format,omitempty"`
	Language   string   `json:"language,omitempty"`
}

// Text joins the paragraphs with blank lines.
func (c *CoverLetterContent) Text() string {
	if c == nil {
		return ""
	}
	return strings.Join(c.Paragraphs, "\n\n")
}

// GenerateCoverLetterRequest is the payload for POST /cover-letter/generate.
type GenerateCoverLetterRequest struct {
	CVID           string `json:"cv_id,omitempty"`
	JobDescription string `json:"job_description" validate:"required"`
	CompanyName    string `json:"company_name,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	Tone           string `json:"tone,omitempty" validate:"omitempty,oneof=professional enthusiastic formal friendly confident"`
	Format         string `json:"format,omitempty"`
	Language       string `json:"language,omitempty"`
}

// Validate validates the GenerateCoverLetterRequest using the validator.
// A job description made only of whitespace counts as missing.
func (r *GenerateCoverLetterRequest) Validate() error {
	trimmed := *r
	trimmed.JobDescription = strings.TrimSpace(r.JobDescription)
	validate := newValidator()
	return validate.Struct(&trimmed)
}

// RewriteParagraphRequest asks the backend to rewrite one paragraph.
type RewriteParagraphRequest struct {
	CoverLetterID  string `json:"cover_letter_id,omitempty"`
	Paragraph      string `json:"paragraph" validate:"required"`
	ParagraphIndex int    `json:"paragraph_index"`
	Instruction    string `json:"instruction,omitempty"`
	Tone           string `json:"tone,omitempty"`
}

// RewriteParagraphResponse carries the rewritten paragraph.
type RewriteParagraphResponse struct {
	Paragraph string `json:"paragraph"`
}

// SaveVersionRequest is the payload for POST /cover-letter/{id}/save-version.
type SaveVersionRequest struct {
	Label      string   `json:"label,omitempty"`
	Paragraphs []string `json:"paragraphs"`
}

// CoverLetterVersion is a saved snapshot of a cover letter.
type CoverLetterVersion struct {
	ID         string    `json:"id"`
	Label      string    `json:"label,omitempty"`
	Paragraphs []string  `json:"paragraphs"`
	CreatedAt  time.Time `json:"created_at"`
}

// DownloadCoverLetterRequest is the payload for POST /cover-letter/download.
type DownloadCoverLetterRequest struct {
	CoverLetterID string   `json:"cover_letter_id,omitempty"`
	Paragraphs    []string `json:"paragraphs,omitempty"`
	Format        string   `json:"format" validate:"required,oneof=pdf docx"`
}
