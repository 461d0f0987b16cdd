package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobdesk/internal/types"
)

// fakeBackend records calls per route pattern.
type fakeBackend struct {
	mux *http.ServeMux

	mu     sync.Mutex
	calls  map[string]int
	bodies map[string]string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{mux: http.NewServeMux(), calls: map[string]int{}, bodies: map[string]string{}}
	srv := httptest.NewServer(fb.mux)
	t.Cleanup(srv.Close)

	t.Setenv("JOBDESK_API_URL", srv.URL+"/api/v1")
	t.Setenv("NEXT_PUBLIC_API_URL", "")
	t.Setenv("JOBDESK_ID_TOKEN", "test-token")
	t.Setenv("JOBDESK_OUTPUT", "")
	t.Setenv("JOBDESK_DOWNLOAD_DIR", "")
	return fb
}

// handle registers h under "METHOD /api/v1<path>".
func (fb *fakeBackend) handle(method, path string, h http.HandlerFunc) {
	pattern := method + " /api/v1" + path
	fb.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.calls[method+" "+path]++
		fb.bodies[method+" "+path] = string(body)
		fb.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		h(w, r)
	})
}

func (fb *fakeBackend) json(method, path string, status int, v any) {
	fb.handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	})
}

func (fb *fakeBackend) count(method, path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.calls[method+" "+path]
}

func (fb *fakeBackend) body(method, path string) string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.bodies[method+" "+path]
}

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

var sampleJobs = []types.Job{
	{ID: 3, Company: "Stripe", Role: "Backend Engineer", Stage: types.StageSaved},
	{ID: 7, Company: "Google", Role: "SRE", Stage: types.StageSaved},
	{ID: 9, Company: "Figma", Role: "Product Designer", Stage: types.StageInterview},
}

func TestBoardCommand_Table(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("GET", "/jobs/", http.StatusOK, sampleJobs)

	out, _, err := run(t, "", "board")
	require.NoError(t, err)
	assert.Contains(t, out, "SAVED (2)")
	assert.Contains(t, out, "INTERVIEW (1)")
	assert.Contains(t, out, "Google · SRE")
}

func TestBoardCommand_SearchJSON(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("GET", "/jobs/", http.StatusOK, sampleJobs)

	out, _, err := run(t, "", "board", "--search", "ENGINEER", "-o", "json")
	require.NoError(t, err)

	var jobs []types.Job
	require.NoError(t, json.Unmarshal([]byte(out), &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Stripe", jobs[0].Company)
}

func TestBoardCommand_StageFilterYAML(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("GET", "/jobs/", http.StatusOK, sampleJobs)

	out, _, err := run(t, "", "board", "--stage", "interview", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "company: Figma")
	assert.NotContains(t, out, "Stripe")
}

func TestBoardCommand_BadStage(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("GET", "/jobs/", http.StatusOK, sampleJobs)

	_, _, err := run(t, "", "board", "--stage", "limbo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown stage")
	assert.Zero(t, fb.count("GET", "/jobs/"))
}

func TestJobsStage(t *testing.T) {
	fb := newFakeBackend(t)
	fb.handle("PATCH", "/jobs/{id}/stage", func(w http.ResponseWriter, r *http.Request) {
		var req types.UpdateStageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		job := sampleJobs[1]
		job.Stage = req.Stage
		_ = json.NewEncoder(w).Encode(job)
	})

	out, _, err := run(t, "", "jobs", "stage", "7", "Applied")
	require.NoError(t, err)
	assert.JSONEq(t, `{"stage":"applied"}`, fb.body("PATCH", "/jobs/{id}/stage"))
	assert.Contains(t, out, "Moved #7 Google · SRE to Applied")
}

func TestJobsStage_InvalidArgs(t *testing.T) {
	newFakeBackend(t)

	_, _, err := run(t, "", "jobs", "stage", "seven", "applied")
	assert.ErrorContains(t, err, "invalid job id")

	_, _, err = run(t, "", "jobs", "stage", "7", "hired")
	assert.ErrorContains(t, err, "unknown stage")
}

func TestJobsAdd_FromFile(t *testing.T) {
	fb := newFakeBackend(t)
	fb.handle("POST", "/jobs/", func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateJobRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(types.Job{ID: 42, Company: req.Company, Role: req.Role, Stage: req.Stage, Tags: req.Tags})
	})

	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"company":"Linear","role":"Go Engineer","stage":"applied","tags":["remote"]}`), 0o644))

	out, _, err := run(t, "", "jobs", "add", "--from", path, "-o", "json")
	require.NoError(t, err)

	var job types.Job
	require.NoError(t, json.Unmarshal([]byte(out), &job))
	assert.Equal(t, int64(42), job.ID)
	assert.Equal(t, types.StageApplied, job.Stage)
	assert.Equal(t, []string{"remote"}, job.Tags)
}

func TestJobsAdd_InvalidFileNeverSent(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("POST", "/jobs/", http.StatusOK, types.Job{})

	path := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"company":"Linear","stage":"hired"}`), 0o644))

	_, _, err := run(t, "", "jobs", "add", "--from", path)
	assert.Error(t, err)
	assert.Zero(t, fb.count("POST", "/jobs/"))
}

func TestATSAnalyze_BlankDescription(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("POST", "/ats/analyze", http.StatusOK, types.ATSAnalysisResult{OverallScore: 80})

	_, _, err := run(t, "", "ats", "analyze", "--cv", "cv1", "--jd", "   ")
	require.Error(t, err)
	assert.Equal(t, "Job description is required", errorText(err))
	assert.Zero(t, fb.count("POST", "/ats/analyze"), "nothing may be sent")
}

func TestATSAnalyze_HTMLFromStdin(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("POST", "/ats/analyze", http.StatusOK, types.ATSAnalysisResult{OverallScore: 76, KeywordMatch: 64})

	html := `<html><body><main><h1>Platform Engineer</h1><ul><li>Go</li><li>Kubernetes</li></ul></main></body></html>`
	out, _, err := run(t, html, "ats", "analyze", "--cv", "cv1", "--jd", "-", "--company", "Acme", "-o", "json")
	require.NoError(t, err)

	var sent types.ATSAnalyzeRequest
	require.NoError(t, json.Unmarshal([]byte(fb.body("POST", "/ats/analyze")), &sent))
	assert.Equal(t, "cv1", sent.CVID)
	assert.Equal(t, "Acme", sent.CompanyName)
	assert.Contains(t, sent.JobDescription, "Kubernetes")
	assert.NotContains(t, sent.JobDescription, "<li>")

	var res types.ATSAnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 76, res.OverallScore)
}

func TestATSAnalyze_FromURL(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("POST", "/ats/fetch-job", http.StatusOK, types.FetchJobResponse{JobTitle: "SRE", CompanyName: "Google", JobDescription: "Run production."})
	fb.json("POST", "/ats/analyze", http.StatusOK, types.ATSAnalysisResult{OverallScore: 50})

	_, _, err := run(t, "", "ats", "analyze", "--cv", "cv1", "--url", "https://careers.example.com/sre")
	require.NoError(t, err)

	var sent types.ATSAnalyzeRequest
	require.NoError(t, json.Unmarshal([]byte(fb.body("POST", "/ats/analyze")), &sent))
	assert.Equal(t, "Run production.", sent.JobDescription)
	assert.Equal(t, "SRE", sent.JobTitle)
	assert.Equal(t, "Google", sent.CompanyName)
}

func TestATSAnalyze_BlankFetchedDescription(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("POST", "/ats/fetch-job", http.StatusOK, types.FetchJobResponse{JobTitle: "SRE", JobDescription: " \n "})
	fb.json("POST", "/ats/analyze", http.StatusOK, types.ATSAnalysisResult{OverallScore: 50})

	_, _, err := run(t, "", "ats", "analyze", "--cv", "cv1", "--url", "https://careers.example.com/sre")
	require.Error(t, err)
	assert.Equal(t, "Job description is required", errorText(err))
	assert.Zero(t, fb.count("POST", "/ats/analyze"))
}

func TestUnauthorized_PrintsSignInHint(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("GET", "/users/profile", http.StatusUnauthorized, map[string]string{"detail": "Token expired"})

	_, stderr, err := run(t, "", "profile", "show")
	require.Error(t, err)
	assert.Equal(t, "Your session has expired. Please sign in again.", errorText(err))
	assert.Equal(t, 1, strings.Count(stderr, signInHint))
}

func TestUnauthorized_DashboardHintPrintedOnce(t *testing.T) {
	fb := newFakeBackend(t)
	for _, path := range []string{"/users/profile", "/billing/plan", "/cv/", "/jobs/"} {
		fb.json("GET", path, http.StatusUnauthorized, map[string]string{"detail": "Token expired"})
	}

	_, stderr, _ := run(t, "", "dashboard")
	assert.Equal(t, 1, strings.Count(stderr, signInHint))
}

func TestCVDownload_SavesFile(t *testing.T) {
	fb := newFakeBackend(t)
	fb.handle("GET", "/cv/{id}/export", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "docx", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		w.Header().Set("Content-Disposition", `attachment; filename="Ana Lima CV.docx"`)
		_, _ = w.Write([]byte("docx-bytes"))
	})
	dir := t.TempDir()

	out, _, err := run(t, "", "cv", "download", "cv1", "--format", "DOCX", "--dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Ana Lima CV.docx"))
	require.NoError(t, err)
	assert.Equal(t, "docx-bytes", string(data))
	assert.Contains(t, out, "Saved")
}

func TestCVDownload_BadFormat(t *testing.T) {
	newFakeBackend(t)
	_, _, err := run(t, "", "cv", "download", "cv1", "--format", "odt")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestCVImprove_SavesField(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("GET", "/cv/{id}", http.StatusOK, types.CVDetail{
		CVSummary: types.CVSummary{ID: "cv1", Title: "Main"},
		Content:   types.CVContent{"summary": "I write code."},
	})
	fb.json("POST", "/cv/ai/improve-text", http.StatusOK, types.ImproveTextResponse{ImprovedText: "Backend engineer shipping Go services."})
	fb.handle("PUT", "/cv/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req types.UpdateCVRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(types.CVDetail{CVSummary: types.CVSummary{ID: "cv1", Title: req.Title}, Content: req.Content})
	})

	out, _, err := run(t, "", "cv", "improve", "cv1", "--field", "summary", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Backend engineer shipping Go services.")

	var improve types.ImproveTextRequest
	require.NoError(t, json.Unmarshal([]byte(fb.body("POST", "/cv/ai/improve-text")), &improve))
	assert.Equal(t, "I write code.", improve.Text)

	var saved types.UpdateCVRequest
	require.NoError(t, json.Unmarshal([]byte(fb.body("PUT", "/cv/{id}")), &saved))
	assert.Equal(t, "Backend engineer shipping Go services.", saved.Content["summary"])
}

func TestCVImprove_RequiresOneMode(t *testing.T) {
	newFakeBackend(t)
	_, _, err := run(t, "", "cv", "improve", "cv1")
	assert.ErrorContains(t, err, "exactly one of")

	_, _, err = run(t, "", "cv", "improve", "cv1", "--field", "summary", "--bullets", "0")
	assert.ErrorContains(t, err, "exactly one of")
}

func TestProfilePreferences_WritesOnlyChangedFields(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("GET", "/users/preferences", http.StatusOK, types.UserPreferences{Language: "en", EmailNotifications: true})
	fb.handle("PUT", "/users/preferences", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(w, r.Body)
	})

	_, _, err := run(t, "", "profile", "preferences", "--weekly-digest")
	require.NoError(t, err)

	var sent types.UserPreferences
	require.NoError(t, json.Unmarshal([]byte(fb.body("PUT", "/users/preferences")), &sent))
	assert.Equal(t, types.UserPreferences{Language: "en", EmailNotifications: true, WeeklyDigest: true}, sent)

	// Without flags nothing is written.
	_, _, err = run(t, "", "profile", "preferences")
	require.NoError(t, err)
	assert.Equal(t, 1, fb.count("PUT", "/users/preferences"))
}

func TestProfileDeleteAccount_RequiresConfirmation(t *testing.T) {
	fb := newFakeBackend(t)
	fb.handle("DELETE", "/users/account", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	_, _, err := run(t, "", "profile", "delete-account")
	assert.ErrorContains(t, err, "--yes")
	assert.Zero(t, fb.count("DELETE", "/users/account"))

	out, _, err := run(t, "", "profile", "delete-account", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Account deleted.")
}

func TestConfigFileOutput(t *testing.T) {
	fb := newFakeBackend(t)
	fb.json("GET", "/billing/plan", http.StatusOK, types.CurrentPlan{PlanID: "pro", Name: "Pro", Status: "active", CreditsUsed: 3, CreditsLimit: 50})

	path := filepath.Join(t.TempDir(), "jobdesk.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output":"yaml"}`), 0o644))

	out, _, err := run(t, "", "billing", "plan", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "plan_id: pro")

	// The flag wins over the file.
	out, _, err = run(t, "", "billing", "plan", "--config", path, "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Credits:  3 of 50 used")
}

func TestConfigFile_Invalid(t *testing.T) {
	newFakeBackend(t)
	path := filepath.Join(t.TempDir(), "jobdesk.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output":"xml"}`), 0o644))

	_, _, err := run(t, "", "billing", "plan", "--config", path)
	assert.ErrorContains(t, err, "config error")
}

func TestCoverLetterRewrite_UsesLatestVersion(t *testing.T) {
	fb := newFakeBackend(t)
	fb.handle("GET", "/cover-letter/{id}/versions", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"v1","paragraphs":["Old opening.","Old body."],"created_at":"2026-01-01T10:00:00Z"},
			{"id":"v2","paragraphs":["Dear team,","I build Go services."],"created_at":"2026-01-02T10:00:00Z"}
		]`))
	})
	fb.json("POST", "/cover-letter/rewrite-paragraph", http.StatusOK, types.RewriteParagraphResponse{Paragraph: "I have shipped Go services for six years."})
	fb.handle("POST", "/cover-letter/{id}/save-version", func(w http.ResponseWriter, r *http.Request) {
		var req types.SaveVersionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(types.CoverLetterVersion{ID: "v3", Label: req.Label, Paragraphs: req.Paragraphs})
	})

	out, _, err := run(t, "", "cover-letter", "rewrite", "cl1", "--index", "1", "--instruction", "more concrete", "--save", "concrete")
	require.NoError(t, err)
	assert.Contains(t, out, "I have shipped Go services for six years.")

	var rewrite types.RewriteParagraphRequest
	require.NoError(t, json.Unmarshal([]byte(fb.body("POST", "/cover-letter/rewrite-paragraph")), &rewrite))
	assert.Equal(t, "I build Go services.", rewrite.Paragraph)
	assert.Equal(t, "cl1", rewrite.CoverLetterID)

	var saved types.SaveVersionRequest
	require.NoError(t, json.Unmarshal([]byte(fb.body("POST", "/cover-letter/{id}/save-version")), &saved))
	assert.Equal(t, []string{"Dear team,", "I have shipped Go services for six years."}, saved.Paragraphs)
}

func TestChartRing(t *testing.T) {
	out, _, err := run(t, "", "chart", "ring", "72")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<svg"))

	path := filepath.Join(t.TempDir(), "spark.svg")
	_, _, err = run(t, "", "chart", "sparkline", "10,40", "70", "--out", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<polyline")

	_, _, err = run(t, "", "chart", "ring", "high")
	assert.ErrorContains(t, err, "invalid score")

	_, _, err = run(t, "", "chart", "sparkline", "10,NaN")
	assert.ErrorContains(t, err, "invalid score")

	_, _, err = run(t, "", "chart", "ring", "Inf")
	assert.ErrorContains(t, err, "invalid score")
}
