package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/editor"
	"github.com/jonathan/jobdesk/internal/schemas"
	"github.com/jonathan/jobdesk/internal/types"
)

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Manage CVs",
}

var (
	cvTitle       string
	cvTemplate    string
	cvFrom        string
	cvFormat      string
	cvDir         string
	cvField       string
	cvText        string
	cvRole        string
	cvBulletIndex int
	cvTone        string
	cvSave        bool
)

var cvListCmd = &cobra.Command{
	Use:   "list",
	Short: "List CVs",
	Args:  cobra.NoArgs,
	RunE:  runCVList,
}

var cvShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a CV",
	Args:  cobra.ExactArgs(1),
	RunE:  runCVShow,
}

var cvCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a CV",
	Long:  "Create a CV. --from imports a JSON file holding either a full create request or bare CV content.",
	Args:  cobra.NoArgs,
	RunE:  runCVCreate,
}

var cvDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Copy a CV",
	Args:  cobra.ExactArgs(1),
	RunE:  runCVDuplicate,
}

var cvDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a CV",
	Args:  cobra.ExactArgs(1),
	RunE:  runCVDelete,
}

var cvDownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Export a CV as PDF or DOCX",
	Args:  cobra.ExactArgs(1),
	RunE:  runCVDownload,
}

var cvImproveCmd = &cobra.Command{
	Use:   "improve <id>",
	Short: "Rewrite one CV field with AI",
	Long: `Rewrite the text at --field (a dotted path such as "summary" or
"experience.0.description"). --summary-for generates a new summary for a
target role instead, and --bullets suggests achievements for one experience
entry. Changes are printed, and written back with --save.`,
	Args: cobra.ExactArgs(1),
	RunE: runCVImprove,
}

func init() {
	cvCreateCmd.Flags().StringVar(&cvTitle, "title", "", "CV title")
	cvCreateCmd.Flags().StringVar(&cvTemplate, "template", "", "Template id")
	cvCreateCmd.Flags().StringVar(&cvFrom, "from", "", "JSON file to import")

	cvDownloadCmd.Flags().StringVar(&cvFormat, "format", "pdf", "pdf or docx")
	cvDownloadCmd.Flags().StringVar(&cvDir, "dir", "", "Directory to save into (default download_dir)")

	f := cvImproveCmd.Flags()
	f.StringVar(&cvField, "field", "", "Dotted path of the field to rewrite")
	f.StringVar(&cvText, "text", "", "Text to rewrite (default: the field's current value)")
	f.StringVar(&cvRole, "summary-for", "", "Generate a summary for this target role")
	f.IntVar(&cvBulletIndex, "bullets", -1, "Suggest achievements for the experience entry at this index")
	f.StringVar(&cvTone, "tone", "", "Tone for generated text")
	f.BoolVar(&cvSave, "save", false, "Save the CV after the change")

	cvCmd.AddCommand(cvListCmd, cvShowCmd, cvCreateCmd, cvDuplicateCmd, cvDeleteCmd, cvDownloadCmd, cvImproveCmd)
	rootCmd.AddCommand(cvCmd)
}

func runCVList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cvs, err := a.client.CV().List(ctxOf(cmd))
	if err != nil {
		return err
	}
	return a.render(cvs, func() { a.printer.PrintCVList(cvs) })
}

func runCVShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cv, err := a.client.CV().Get(ctxOf(cmd), args[0])
	if err != nil {
		return err
	}
	return a.render(cv, func() { a.printer.PrintCV(cv) })
}

func runCVCreate(cmd *cobra.Command, _ []string) error {
	req := &types.CreateCVRequest{Title: cvTitle}
	if cvFrom != "" {
		loaded, err := schemas.LoadCreateCVRequest(cvFrom, cvTitle)
		if err != nil {
			return err
		}
		req = loaded
	}
	if cvTemplate != "" {
		req.TemplateID = cvTemplate
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cv, err := a.client.CV().Create(ctxOf(cmd), req)
	if err != nil {
		return err
	}
	return a.render(cv, func() { a.printer.PrintCV(cv) })
}

func runCVDuplicate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	cv, err := a.client.CV().Duplicate(ctxOf(cmd), args[0])
	if err != nil {
		return err
	}
	return a.render(cv, func() { a.printer.Message("Created %s (%s)", cv.Title, cv.ID) })
}

func runCVDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.client.CV().Delete(ctxOf(cmd), args[0]); err != nil {
		return err
	}
	a.printer.Message("Deleted CV %s", args[0])
	return nil
}

func runCVDownload(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(cvFormat)
	if format != "pdf" && format != "docx" {
		return fmt.Errorf("unsupported format %q (want pdf or docx)", cvFormat)
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	blob, err := a.client.CV().Export(ctxOf(cmd), args[0], format)
	if err != nil {
		return err
	}
	return a.saveBlob(blob, cvDir, "cv-"+args[0]+"."+format)
}

func runCVImprove(cmd *cobra.Command, args []string) error {
	modes := 0
	for _, set := range []bool{cvField != "", cvRole != "", cvBulletIndex >= 0} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return fmt.Errorf("exactly one of --field, --summary-for or --bullets is required")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := ctxOf(cmd)
	cv, err := a.client.CV().Get(ctx, args[0])
	if err != nil {
		return err
	}
	ed := editor.NewCVEditor(a.client.CV(), cv)
	ed.SetTone(cvTone)

	var result any
	switch {
	case cvField != "":
		text := cvText
		if text == "" {
			current, ok := ed.Get(cvField)
			s, isString := current.(string)
			if !ok || !isString || strings.TrimSpace(s) == "" {
				return fmt.Errorf("field %q has no text; pass --text", cvField)
			}
			text = s
		}
		result, err = ed.ImproveText(ctx, cvField, text)
	case cvRole != "":
		result, err = ed.GenerateSummary(ctx, cvRole)
	default:
		result, err = ed.SuggestBullets(ctx, cvBulletIndex)
	}
	if err != nil {
		return err
	}

	if cvSave {
		if err := ed.Save(ctx); err != nil {
			return err
		}
	}
	return a.render(result, func() {
		switch v := result.(type) {
		case []string:
			for _, b := range v {
				a.printer.Message("- %s", b)
			}
		default:
			a.printer.Message("%v", v)
		}
		if cvSave {
			a.printer.Message("Saved CV %s", args[0])
		}
	})
}
