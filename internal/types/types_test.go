//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStage(t *testing.T) {
	tests := []struct {
		input   string
		want    Stage
		wantErr bool
	}{
		{input: "saved", want: StageSaved},
		{input: "Applied", want: StageApplied},
		{input: "  INTERVIEW ", want: StageInterview},
		{input: "offer", want: StageOffer},
		{input: "rejected", want: StageRejected},
		{input: "ghosted", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStage(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllStages_Order(t *testing.T) {
	assert.Equal(t, []Stage{"saved", "applied", "interview", "offer", "rejected"}, AllStages())
	assert.Equal(t, "Interview", StageInterview.Label())
}

func TestCreateJobRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request CreateJobRequest
		wantMsg string
	}{
		{
			name:    "valid request",
			request: CreateJobRequest{Company: "Google", Role: "SRE", Stage: StageSaved},
		},
		{
			name:    "stage optional",
			request: CreateJobRequest{Company: "Google", Role: "SRE"},
		},
		{
			name:    "missing company",
			request: CreateJobRequest{Role: "SRE"},
			wantMsg: "Company is required",
		},
		{
			name:    "unknown stage",
			request: CreateJobRequest{Company: "Google", Role: "SRE", Stage: "ghosted"},
			wantMsg: "Stage must be one of: saved, applied, interview, offer, rejected",
		},
		{
			name:    "bad url",
			request: CreateJobRequest{Company: "Google", Role: "SRE", URL: "not a url"},
			wantMsg: "Url must be a valid URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, ValidationMessage(err))
		})
	}
}

func TestGenerateCoverLetterRequest_BlankDescription(t *testing.T) {
	for _, jd := range []string{"", "   ", "\n\t"} {
		req := GenerateCoverLetterRequest{JobDescription: jd}
		err := req.Validate()
		require.Error(t, err)
		assert.Equal(t, "Job description is required", ValidationMessage(err))
	}

	req := GenerateCoverLetterRequest{JobDescription: "Build things", Tone: "professional"}
	assert.NoError(t, req.Validate())
}

func TestValidationMessage_NonValidationError(t *testing.T) {
	assert.Equal(t, "", ValidationMessage(nil))
	assert.Equal(t, "boom", ValidationMessage(assert.AnError))
	assert.NotEmpty(t, ValidationMessage(assert.AnError))
}

func TestCVContent_Accessors(t *testing.T) {
	raw := `{
		"summary": "Backend engineer",
		"contact_info": {"email": "a@b.c", "phone": "555", "age": 3},
		"experience": [{"title": "SRE", "company": "Google"}, "junk"],
		"education": [{"school": "MIT"}],
		"skills": ["Go", {"name": "Kubernetes"}, 7]
	}`
	var content CVContent
	require.NoError(t, json.Unmarshal([]byte(raw), &content))

	assert.Equal(t, "Backend engineer", content.Summary())
	assert.Equal(t, map[string]string{"email": "a@b.c", "phone": "555"}, content.ContactInfo())
	require.Len(t, content.Experience(), 1)
	assert.Equal(t, "Google", content.Experience()[0]["company"])
	assert.Len(t, content.Education(), 1)
	assert.Equal(t, []string{"Go", "Kubernetes"}, content.Skills())
}

func TestCVContent_Clone(t *testing.T) {
	var nilContent CVContent
	assert.Nil(t, nilContent.Clone())

	orig := CVContent{"summary": "a"}
	clone := orig.Clone()
	clone["summary"] = "b"
	assert.Equal(t, "a", orig.Summary())
	assert.Equal(t, "b", clone.Summary())
}

func TestCoverLetterContent_Text(t *testing.T) {
	var c *CoverLetterContent
	assert.Equal(t, "", c.Text())

	c = &CoverLetterContent{Paragraphs: []string{"Dear team,", "I build things."}}
	assert.Equal(t, "Dear team,\n\nI build things.", c.Text())
}
