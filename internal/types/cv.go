package types

import "time"

// CV section keys used by the editor and printers.
const (
	SectionContactInfo = "contact_info"
	SectionSummary     = "summary"
	SectionExperience  = "experience"
	SectionEducation   = "education"
	SectionSkills      = "skills"
)

// CVSummary is the list view of a CV.
type CVSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"template_id"`
	ATSScore   *int      `json:"ats_score,omitempty"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// CVDetail is a CV with its full content.
type CVDetail struct {
	CVSummary
	Content CVContent `json:"content"`
}

// CVContent is a loosely typed bag of sections. No cross-field invariants
// are enforced on the client.
type CVContent map[string]any

// Clone returns a shallow copy of the content map.
func (c CVContent) Clone() CVContent {
	if c == nil {
		return nil
	}
	out := make(CVContent, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Summary returns the summary section, or "" when absent.
func (c CVContent) Summary() string {
	s, _ := c[SectionSummary].(string)
	return s
}

// ContactInfo returns the contact_info section as a string map.
func (c CVContent) ContactInfo() map[string]string {
	out := map[string]string{}
	raw, ok := c[SectionContactInfo].(map[string]any)
	if !ok {
		return out
	}
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Experience returns the experience entries that decode as objects.
func (c CVContent) Experience() []map[string]any {
	return objectList(c[SectionExperience])
}

// Education returns the education entries that decode as objects.
func (c CVContent) Education() []map[string]any {
	return objectList(c[SectionEducation])
}

// Skills returns the skill names. Entries may be plain strings or objects with a "name".
func (c CVContent) Skills() []string {
	items, ok := c[SectionSkills].([]any)
	if !ok {
		if ss, ok := c[SectionSkills].([]string); ok {
			return ss
		}
		return nil
	}
	var out []string
	for _, it := range items {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			if name, ok := v["name"].(string); ok {
				out = append(out, name)
			}
		}
	}
	return out
}

func objectList(v any) []map[string]any {
	switch items := v.(type) {
	case []map[string]any:
		return items
	case []any:
		out := make([]map[string]any, 0, len(items))
		for _, it := range items {
			if m, ok := it.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// CreateCVRequest is the payload for POST /cv/.
type CreateCVRequest struct {
	Title      string    `json:"title" validate:"required"`
	TemplateID string    `json:"template_id,omitempty"`
	Content    CVContent `json:"content,omitempty"`
}

// Validate validates the CreateCVRequest using the validator.
func (r *CreateCVRequest) Validate() error {
	validate := newValidator()
	return validate.Struct(r)
}

// UpdateCVRequest is the payload for PUT /cv/{id} and the auto-save endpoint.
type UpdateCVRequest struct {
	Title      string    `json:"title,omitempty"`
	TemplateID string    `json:"template_id,omitempty"`
	Content    CVContent `json:"content"`
}

// ImproveTextRequest asks the backend to rewrite a piece of CV text.
type ImproveTextRequest struct {
	Text    string `json:"text" validate:"required"`
	Section string `json:"section,omitempty"`
	JobRole string `json:"job_title,omitempty"`
}

// ImproveTextResponse carries the improved text.
type ImproveTextResponse struct {
	ImprovedText string `json:"improved_text"`
}

// GenerateSummaryRequest asks for a professional summary for a target role.
type GenerateSummaryRequest struct {
	CVID       string `json:"cv_id,omitempty"`
	TargetRole string `json:"target_role" validate:"required"`
	Tone       string `json:"tone,omitempty"`
}

// GenerateSummaryResponse carries the generated summary.
type GenerateSummaryResponse struct {
	Summary string `json:"summary"`
}

// SuggestBulletsRequest asks for achievement bullets for an experience entry.
type SuggestBulletsRequest struct {
	JobTitle    string `json:"job_title" validate:"required"`
	Company     string `json:"company,omitempty"`
	Description string `json:"description,omitempty"`
	Count       int    `json:"count,omitempty" validate:"omitempty,min=1,max=10"`
}

// SuggestBulletsResponse carries suggested bullets.
type SuggestBulletsResponse struct {
	Bullets []string `json:"bullets"`
}
