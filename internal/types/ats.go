package types

import "strings"

// ATSAnalyzeRequest is the payload for an ATS analysis.
type ATSAnalyzeRequest struct {
	CVID           string `json:"cv_id" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
	JobTitle       string `json:"job_title,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
}

// Validate validates the ATSAnalyzeRequest using the validator.
// A job description made only of whitespace counts as missing.
func (r *ATSAnalyzeRequest) Validate() error {
	trimmed := *r
	trimmed.JobDescription = strings.TrimSpace(r.JobDescription)
	return newValidator().Struct(&trimmed)
}

// ATSAnalysisResult is the backend's scoring of a CV against a job description.
// The client displays it and never re-derives its fields.
type ATSAnalysisResult struct {
	AnalysisID       string          `json:"analysis_id,omitempty"`
	OverallScore     int             `json:"overall_score"`
	KeywordMatch     int             `json:"keyword_match"`
	SectionScores    map[string]int  `json:"section_scores,omitempty"`
	MatchedKeywords  []string        `json:"matched_keywords,omitempty"`
	MissingKeywords  []string        `json:"missing_keywords,omitempty"`
	Suggestions      []ATSSuggestion `json:"suggestions,omitempty"`
	FormattingIssues []string        `json:"formatting_issues,omitempty"`
	ScoreHistory     []int           `json:"score_history,omitempty"`
}

// ATSSuggestion is one proposed change from an analysis.
type ATSSuggestion struct {
	ID        string `json:"id"`
	Section   string `json:"section"`
	Original  string `json:"original,omitempty"`
	Suggested string `json:"suggested"`
	Reason    string `json:"reason,omitempty"`
	Impact    string `json:"impact,omitempty"`
}

// ApplyChangesRequest applies selected suggestions to a CV.
type ApplyChangesRequest struct {
	CVID          string   `json:"cv_id" validate:"required"`
	AnalysisID    string   `json:"analysis_id,omitempty"`
	SuggestionIDs []string `json:"suggestion_ids" validate:"required,min=1"`
}

// ApplyChangesResponse reports the CV after changes were applied.
type ApplyChangesResponse struct {
	CVID         string `json:"cv_id"`
	AppliedCount int    `json:"applied_count"`
	NewScore     *int   `json:"new_score,omitempty"`
}

// FetchJobRequest asks the backend to fetch a posting by URL.
type FetchJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// FetchJobResponse is a posting fetched by the backend.
type FetchJobResponse struct {
	JobTitle       string `json:"job_title,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	JobDescription string `json:"job_description"`
}

// DownloadOptimizedRequest asks for an optimized CV rendered with the accepted suggestions.
type DownloadOptimizedRequest struct {
	CVID          string   `json:"cv_id" validate:"required"`
	AnalysisID    string   `json:"analysis_id,omitempty"`
	SuggestionIDs []string `json:"suggestion_ids,omitempty"`
	Format        string   `json:"format" validate:"required,oneof=pdf docx"`
}
