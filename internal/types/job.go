// Package types provides the view models shared by the jobdesk client packages.
// They mirror backend resources; the backend owns persistence and invariants.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
	"time"
)

// Stage is the pipeline bucket a tracked application currently occupies.
// It is a plain label: any stage may be replaced by any other.
type Stage string

const (
	StageSaved     Stage = "saved"
	StageApplied   Stage = "applied"
	StageInterview Stage = "interview"
	StageOffer     Stage = "offer"
	StageRejected  Stage = "rejected"
)

// AllStages returns the five stages in board column order.
func AllStages() []Stage {
	return []Stage{StageSaved, StageApplied, StageInterview, StageOffer, StageRejected}
}

// Valid reports whether s is one of the five known stages.
func (s Stage) Valid() bool {
	for _, st := range AllStages() {
		if s == st {
			return true
		}
	}
	return false
}

// Label returns the column heading for the stage.
func (s Stage) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseStage converts user input into a Stage, ignoring case and surrounding space.
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown stage %q (want one of saved, applied, interview, offer, rejected)", s)
	}
	return st, nil
}

// Job is a tracked job application as shown on the kanban board.
type Job struct {
	ID            int64      `json:"id"`
	Company       string     `json:"company"`
	Role          string     `json:"role"`
	Location      string     `json:"location,omitempty"`
	Stage         Stage      `json:"stage"`
	Tags          []string   `json:"tags,omitempty"`
	ATSMatch      *int       `json:"ats_match,omitempty"`
	Salary        string     `json:"salary,omitempty"`
	InterviewDate *time.Time `json:"interview_date,omitempty"`
	DaysWaiting   *int       `json:"days_waiting,omitempty"`
	URL           string     `json:"url,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// JobNote is a free-text note attached to a job.
type JobNote struct {
	ID        int64     `json:"id"`
	JobID     int64     `json:"job_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// TimelineEvent is one entry of a job's activity history, as recorded by the backend.
type TimelineEvent struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	FromStage   Stage     `json:"from_stage,omitempty"`
	ToStage     Stage     `json:"to_stage,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateJobRequest is the payload for adding an application.
type CreateJobRequest struct {
	Company  string   `json:"company" validate:"required"`
	Role     string   `json:"role" validate:"required"`
	Location string   `json:"location,omitempty"`
	Stage    Stage    `json:"stage,omitempty" validate:"omitempty,oneof=saved applied interview offer rejected"`
	Tags     []string `json:"tags,omitempty"`
	Salary   string   `json:"salary,omitempty"`
	URL      string   `json:"url,omitempty" validate:"omitempty,url"`
	Notes    string   `json:"notes,omitempty"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := newValidator()
	return validate.Struct(r)
}

// UpdateStageRequest is the payload for PATCH /jobs/{id}/stage.
type UpdateStageRequest struct {
	Stage Stage `json:"stage" validate:"required,oneof=saved applied interview offer rejected"`
}

// Validate validates the UpdateStageRequest using the validator.
func (r *UpdateStageRequest) Validate() error {
	validate := newValidator()
	return validate.Struct(r)
}

// AddNoteRequest is the payload for POST /jobs/{id}/notes.
type AddNoteRequest struct {
	Body string `json:"body" validate:"required"`
}
