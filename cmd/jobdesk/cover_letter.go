package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/editor"
	"github.com/jonathan/jobdesk/internal/types"
)

var coverLetterCmd = &cobra.Command{
	Use:     "cover-letter",
	Aliases: []string{"cl"},
	Short:   "Generate and edit cover letters",
}

var (
	clCV          string
	clJD          string
	clCompany     string
	clTitle       string
	clTone        string
	clLanguage    string
	clSaveLabel   string
	clIndex       int
	clInstruction string
	clVersion     string
	clFormat      string
	clDir         string
)

var clGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a cover letter for a job description",
	Args:  cobra.NoArgs,
	RunE:  runCoverLetterGenerate,
}

var clRewriteCmd = &cobra.Command{
	Use:   "rewrite <letter-id>",
	Short: "Rewrite one paragraph of a saved cover letter",
	Long: `Rewrite paragraph --index of a saved letter. The paragraphs come from
--version, or the most recent saved version.`,
	Args: cobra.ExactArgs(1),
	RunE: runCoverLetterRewrite,
}

var clVersionsCmd = &cobra.Command{
	Use:   "versions <letter-id>",
	Short: "List saved versions of a cover letter",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoverLetterVersions,
}

var clDownloadCmd = &cobra.Command{
	Use:   "download <letter-id>",
	Short: "Download a cover letter as PDF or DOCX",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoverLetterDownload,
}

func init() {
	g := clGenerateCmd.Flags()
	g.StringVar(&clCV, "cv", "", "CV id to draw on")
	g.StringVar(&clJD, "jd", "", "Job description: text, @file or -")
	g.StringVar(&clCompany, "company", "", "Company name")
	g.StringVar(&clTitle, "title", "", "Job title")
	g.StringVar(&clTone, "tone", "", "professional, enthusiastic, formal, friendly or confident")
	g.StringVar(&clLanguage, "language", "", "Letter language")

	for _, c := range []*cobra.Command{clGenerateCmd, clRewriteCmd} {
		c.Flags().StringVar(&clSaveLabel, "save", "", "Save the result as a version with this label")
	}
	clRewriteCmd.Flags().IntVar(&clIndex, "index", 0, "Paragraph index, starting at 0")
	clRewriteCmd.Flags().StringVar(&clInstruction, "instruction", "", "How to change the paragraph")
	for _, c := range []*cobra.Command{clRewriteCmd, clDownloadCmd} {
		c.Flags().StringVar(&clVersion, "version", "", "Version id (default latest)")
	}
	clDownloadCmd.Flags().StringVar(&clFormat, "format", "pdf", "pdf or docx")
	clDownloadCmd.Flags().StringVar(&clDir, "dir", "", "Directory to save into (default download_dir)")

	coverLetterCmd.AddCommand(clGenerateCmd, clRewriteCmd, clVersionsCmd, clDownloadCmd)
	rootCmd.AddCommand(coverLetterCmd)
}

func runCoverLetterGenerate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := ctxOf(cmd)

	jd, _, err := jobDescription(ctx, a.client, clJD, "", cmd.InOrStdin())
	if err != nil {
		return err
	}
	ed := editor.NewCoverLetterEditor(a.client.CoverLetter())
	letter, err := ed.Generate(ctx, &types.GenerateCoverLetterRequest{
		CVID:           clCV,
		JobDescription: jd,
		CompanyName:    clCompany,
		JobTitle:       clTitle,
		Tone:           strings.ToLower(clTone),
		Language:       clLanguage,
	})
	if err != nil {
		return err
	}
	if clSaveLabel != "" {
		if _, err := ed.SaveVersion(ctx, clSaveLabel); err != nil {
			return err
		}
	}
	return a.render(letter, func() { a.printer.PrintCoverLetter(letter) })
}

// loadLetter fills an editor with a saved version of letterID.
func loadLetter(ctx context.Context, ed *editor.CoverLetterEditor, letterID, versionID string) error {
	ed.SetLetter(&types.CoverLetterContent{ID: letterID})
	versions, err := ed.Versions(ctx)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		return fmt.Errorf("cover letter %s has no saved versions", letterID)
	}
	if versionID == "" {
		latest := versions[0]
		for _, v := range versions[1:] {
			if v.CreatedAt.After(latest.CreatedAt) {
				latest = v
			}
		}
		versionID = latest.ID
	}
	return ed.RestoreVersion(versionID)
}

func runCoverLetterRewrite(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := ctxOf(cmd)

	ed := editor.NewCoverLetterEditor(a.client.CoverLetter())
	if err := loadLetter(ctx, ed, args[0], clVersion); err != nil {
		return err
	}
	text, err := ed.RewriteParagraph(ctx, clIndex, clInstruction)
	if err != nil {
		return err
	}
	if clSaveLabel != "" {
		if _, err := ed.SaveVersion(ctx, clSaveLabel); err != nil {
			return err
		}
	}
	letter := ed.Letter()
	return a.render(letter, func() {
		a.printer.Message("Paragraph %d:\n%s", clIndex+1, text)
	})
}

func runCoverLetterVersions(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	versions, err := a.client.CoverLetter().Versions(ctxOf(cmd), args[0])
	if err != nil {
		return err
	}
	return a.render(versions, func() { a.printer.PrintVersions(versions) })
}

func runCoverLetterDownload(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(clFormat)
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := ctxOf(cmd)

	req := &types.DownloadCoverLetterRequest{CoverLetterID: args[0], Format: format}
	if clVersion != "" {
		ed := editor.NewCoverLetterEditor(a.client.CoverLetter())
		if err := loadLetter(ctx, ed, args[0], clVersion); err != nil {
			return err
		}
		req.Paragraphs = ed.Letter().Paragraphs
	}
	blob, err := a.client.CoverLetter().Download(ctx, req)
	if err != nil {
		return err
	}
	return a.saveBlob(blob, clDir, "cover-letter-"+args[0]+"."+format)
}
