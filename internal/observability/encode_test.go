package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobdesk/internal/types"
)

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, types.Job{ID: 7, Company: "Google", Stage: types.StageSaved}))

	assert.Contains(t, buf.String(), `"company": "Google"`)
	assert.Contains(t, buf.String(), `"stage": "saved"`)
}

func TestEncode_YAMLUsesJSONNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, types.Job{ID: 7, Company: "Google", Stage: types.StageSaved, Tags: []string{"go"}}))

	out := buf.String()
	assert.Contains(t, out, "company: Google")
	assert.Contains(t, out, "stage: saved")
	assert.Contains(t, out, "tags:\n  - go")
	assert.NotContains(t, out, "Company")
}

func TestEncode_Unsupported(t *testing.T) {
	err := Encode(&bytes.Buffer{}, "xml", nil)
	assert.Error(t, err)
}
