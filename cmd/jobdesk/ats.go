package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/api"
	"github.com/jonathan/jobdesk/internal/ingestion"
	"github.com/jonathan/jobdesk/internal/types"
)

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Score CVs against job descriptions",
}

var (
	atsCV          string
	atsJD          string
	atsJobURL      string
	atsTitle       string
	atsCompany     string
	atsAnalysis    string
	atsSuggestions string
	atsFormat      string
	atsDir         string
)

var atsAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a CV against a job description",
	Long: `Analyze a CV against a job description. --jd takes the text itself,
@file or - for stdin; HTML is reduced to text. --url has the backend fetch
the posting instead.`,
	Args: cobra.NoArgs,
	RunE: runATSAnalyze,
}

var atsApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply accepted suggestions to a CV",
	Args:  cobra.NoArgs,
	RunE:  runATSApply,
}

var atsFetchJobCmd = &cobra.Command{
	Use:   "fetch-job <url>",
	Short: "Fetch a job posting through the backend",
	Args:  cobra.ExactArgs(1),
	RunE:  runATSFetchJob,
}

var atsDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the tailored CV, or an optimized one with --suggestions",
	Args:  cobra.NoArgs,
	RunE:  runATSDownload,
}

func init() {
	for _, c := range []*cobra.Command{atsAnalyzeCmd, atsApplyCmd, atsDownloadCmd} {
		c.Flags().StringVar(&atsCV, "cv", "", "CV id")
	}
	atsAnalyzeCmd.Flags().StringVar(&atsJD, "jd", "", "Job description: text, @file or -")
	atsAnalyzeCmd.Flags().StringVar(&atsJobURL, "url", "", "Posting URL for the backend to fetch")
	atsAnalyzeCmd.Flags().StringVar(&atsTitle, "title", "", "Job title")
	atsAnalyzeCmd.Flags().StringVar(&atsCompany, "company", "", "Company name")

	for _, c := range []*cobra.Command{atsApplyCmd, atsDownloadCmd} {
		c.Flags().StringVar(&atsAnalysis, "analysis", "", "Analysis id")
		c.Flags().StringVar(&atsSuggestions, "suggestions", "", "Comma-separated suggestion ids")
	}
	atsDownloadCmd.Flags().StringVar(&atsFormat, "format", "pdf", "pdf or docx")
	atsDownloadCmd.Flags().StringVar(&atsDir, "dir", "", "Directory to save into (default download_dir)")

	atsCmd.AddCommand(atsAnalyzeCmd, atsApplyCmd, atsFetchJobCmd, atsDownloadCmd)
	rootCmd.AddCommand(atsCmd)
}

// jobDescription resolves --jd / --url into text. A blank description is
// returned as "" so request validation reports it.
func jobDescription(ctx context.Context, client *api.Client, src, postingURL string, stdin io.Reader) (string, *types.FetchJobResponse, error) {
	if postingURL != "" {
		fetched, err := client.ATS().FetchJob(ctx, &types.FetchJobRequest{URL: postingURL})
		if err != nil {
			return "", nil, err
		}
		return fetched.JobDescription, fetched, nil
	}
	if strings.TrimSpace(src) == "" {
		return "", nil, nil
	}
	text, err := ingestion.Load(src, stdin)
	if errors.Is(err, ingestion.ErrEmptyDescription) {
		return "", nil, nil
	}
	return text, nil, err
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func runATSAnalyze(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := ctxOf(cmd)

	jd, fetched, err := jobDescription(ctx, a.client, atsJD, atsJobURL, cmd.InOrStdin())
	if err != nil {
		return err
	}
	req := &types.ATSAnalyzeRequest{CVID: atsCV, JobDescription: jd, JobTitle: atsTitle, CompanyName: atsCompany}
	if fetched != nil {
		if req.JobTitle == "" {
			req.JobTitle = fetched.JobTitle
		}
		if req.CompanyName == "" {
			req.CompanyName = fetched.CompanyName
		}
	}

	res, err := a.client.ATS().Analyze(ctx, req)
	if err != nil {
		return err
	}
	return a.render(res, func() { a.printer.PrintATSResult(res) })
}

func runATSApply(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	res, err := a.client.ATS().ApplyChanges(ctxOf(cmd), &types.ApplyChangesRequest{
		CVID:          atsCV,
		AnalysisID:    atsAnalysis,
		SuggestionIDs: splitIDs(atsSuggestions),
	})
	if err != nil {
		return err
	}
	return a.render(res, func() {
		a.printer.Message("Applied %d change(s) to CV %s", res.AppliedCount, res.CVID)
		if res.NewScore != nil {
			a.printer.Message("New ATS score: %d", *res.NewScore)
		}
	})
}

func runATSFetchJob(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	res, err := a.client.ATS().FetchJob(ctxOf(cmd), &types.FetchJobRequest{URL: args[0]})
	if err != nil {
		return err
	}
	return a.render(res, func() {
		if res.JobTitle != "" || res.CompanyName != "" {
			a.printer.Message("%s · %s\n", res.CompanyName, res.JobTitle)
		}
		a.printer.Message("%s", res.JobDescription)
	})
}

func runATSDownload(cmd *cobra.Command, _ []string) error {
	format := strings.ToLower(atsFormat)
	if format != "pdf" && format != "docx" {
		return fmt.Errorf("unsupported format %q (want pdf or docx)", atsFormat)
	}
	if atsCV == "" {
		return fmt.Errorf("--cv is required")
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var blob *api.Blob
	if ids := splitIDs(atsSuggestions); len(ids) > 0 || atsAnalysis != "" {
		blob, err = a.client.ATS().DownloadOptimized(ctxOf(cmd), &types.DownloadOptimizedRequest{
			CVID:          atsCV,
			AnalysisID:    atsAnalysis,
			SuggestionIDs: ids,
			Format:        format,
		})
	} else {
		blob, err = a.client.ATS().DownloadTailored(ctxOf(cmd), atsCV, format)
	}
	if err != nil {
		return err
	}
	return a.saveBlob(blob, atsDir, "cv-"+atsCV+"-tailored."+format)
}
