package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/schemas"
	"github.com/jonathan/jobdesk/internal/types"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage tracked job applications",
}

var (
	jobFrom     string
	jobCompany  string
	jobRole     string
	jobLocation string
	jobStage    string
	jobTags     string
	jobSalary   string
	jobURL      string
	jobNotes    string
)

var jobsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an application",
	Long:  "Add an application from flags, or from a JSON document with --from (validated against the job schema).",
	Args:  cobra.NoArgs,
	RunE:  runJobsAdd,
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one application",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsShow,
}

var jobsStageCmd = &cobra.Command{
	Use:   "stage <id> <stage>",
	Short: "Move an application to another stage",
	Args:  cobra.ExactArgs(2),
	RunE:  runJobsStage,
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an application",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsDelete,
}

var jobsNoteCmd = &cobra.Command{
	Use:   "note <id> <text>",
	Short: "Attach a note to an application",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runJobsNote,
}

var jobsTimelineCmd = &cobra.Command{
	Use:   "timeline <id>",
	Short: "Show an application's history",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsTimeline,
}

func init() {
	f := jobsAddCmd.Flags()
	f.StringVar(&jobFrom, "from", "", "JSON file with the application")
	f.StringVar(&jobCompany, "company", "", "Company name")
	f.StringVar(&jobRole, "role", "", "Role title")
	f.StringVar(&jobLocation, "location", "", "Location")
	f.StringVar(&jobStage, "stage", "", "Initial stage (default saved)")
	f.StringVar(&jobTags, "tags", "", "Comma-separated tags")
	f.StringVar(&jobSalary, "salary", "", "Salary range")
	f.StringVar(&jobURL, "url", "", "Posting URL")
	f.StringVar(&jobNotes, "notes", "", "Notes")

	jobsCmd.AddCommand(jobsAddCmd, jobsShowCmd, jobsStageCmd, jobsDeleteCmd, jobsNoteCmd, jobsTimelineCmd)
	rootCmd.AddCommand(jobsCmd)
}

func jobRequestFromFlags() (*types.CreateJobRequest, error) {
	if jobFrom != "" {
		return schemas.LoadCreateJobRequest(jobFrom)
	}
	req := &types.CreateJobRequest{
		Company:  jobCompany,
		Role:     jobRole,
		Location: jobLocation,
		Salary:   jobSalary,
		URL:      jobURL,
		Notes:    jobNotes,
	}
	if jobStage != "" {
		stage, err := types.ParseStage(jobStage)
		if err != nil {
			return nil, err
		}
		req.Stage = stage
	}
	for _, tag := range strings.Split(jobTags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			req.Tags = append(req.Tags, tag)
		}
	}
	return req, nil
}

func runJobsAdd(cmd *cobra.Command, _ []string) error {
	req, err := jobRequestFromFlags()
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	job, err := a.client.Jobs().Create(ctxOf(cmd), req)
	if err != nil {
		return err
	}
	return a.render(job, func() { a.printer.PrintJob(job) })
}

func runJobsShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	job, err := a.client.Jobs().Get(ctxOf(cmd), id)
	if err != nil {
		return err
	}
	return a.render(job, func() { a.printer.PrintJob(job) })
}

func runJobsStage(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	stage, err := types.ParseStage(args[1])
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	job, err := a.client.Jobs().UpdateStage(ctxOf(cmd), id, stage)
	if err != nil {
		return err
	}
	return a.render(job, func() {
		a.printer.Message("Moved #%d %s · %s to %s", job.ID, job.Company, job.Role, job.Stage.Label())
	})
}

func runJobsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.client.Jobs().Delete(ctxOf(cmd), id); err != nil {
		return err
	}
	a.printer.Message("Deleted job #%d", id)
	return nil
}

func runJobsNote(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	body := strings.TrimSpace(strings.Join(args[1:], " "))
	if body == "" {
		return fmt.Errorf("note text is empty")
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	note, err := a.client.Jobs().AddNote(ctxOf(cmd), id, body)
	if err != nil {
		return err
	}
	return a.render(note, func() { a.printer.Message("Added note to job #%d", id) })
}

func runJobsTimeline(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	events, err := a.client.Jobs().Timeline(ctxOf(cmd), id)
	if err != nil {
		return err
	}
	return a.render(events, func() { a.printer.PrintTimeline(events) })
}
