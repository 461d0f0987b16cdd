// Package observability renders command results for the terminal: boxed
// summaries for people, JSON or YAML for scripts.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobdesk/internal/dashboard"
	"github.com/jonathan/jobdesk/internal/tracker"
	"github.com/jonathan/jobdesk/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes human-readable summaries.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// Message prints one plain line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Message(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func more(sb *strings.Builder, total, shown int, noun string) {
	if total > shown {
		sb.WriteString(fmt.Sprintf("  ... and %d more %s\n", total-shown, noun))
	}
}

// PrintBoard prints one box per stage with the visible jobs in it.
func (p *Printer) PrintBoard(board *tracker.Board) {
	counts := board.Counts()
	for _, stage := range types.AllStages() {
		if f := board.Filter(); f.Stage != nil && *f.Stage != stage {
			continue
		}
		jobs := board.JobsByStage(stage)

		var sb strings.Builder
		if len(jobs) == 0 {
			sb.WriteString("(empty)")
		}
		for i, job := range jobs {
			sb.WriteString(fmt.Sprintf("#%-4d %s · %s", job.ID, job.Company, job.Role))
			if job.ATSMatch != nil {
				sb.WriteString(fmt.Sprintf("  [%d%%]", *job.ATSMatch))
			}
			if i < len(jobs)-1 {
				sb.WriteString("\n")
			}
		}
		p.printBox(fmt.Sprintf("%s (%d)", strings.ToUpper(stage.Label()), counts[stage]), sb.String())
	}
}

// PrintJob prints one application.
func (p *Printer) PrintJob(job *types.Job) {
	if job == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", job.Role))
	sb.WriteString(fmt.Sprintf("Stage:    %s\n", job.Stage.Label()))
	if job.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", job.Location))
	}
	if job.Salary != "" {
		sb.WriteString(fmt.Sprintf("Salary:   %s\n", job.Salary))
	}
	if job.ATSMatch != nil {
		sb.WriteString(fmt.Sprintf("ATS:      %d%%\n", *job.ATSMatch))
	}
	if job.InterviewDate != nil {
		sb.WriteString(fmt.Sprintf("Interview: %s\n", job.InterviewDate.Format("Mon 2 Jan 2006 15:04")))
	}
	if job.DaysWaiting != nil {
		sb.WriteString(fmt.Sprintf("Waiting:  %d days\n", *job.DaysWaiting))
	}
	if len(job.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("Tags:     %s\n", strings.Join(job.Tags, ", ")))
	}
	p.printBox(fmt.Sprintf("JOB #%d", job.ID), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTimeline prints an application's history, oldest first.
func (p *Printer) PrintTimeline(events []types.TimelineEvent) {
	var sb strings.Builder
	if len(events) == 0 {
		sb.WriteString("No events yet")
	}
	for i, ev := range events {
		sb.WriteString(fmt.Sprintf("%s  %s", ev.CreatedAt.Format("2006-01-02"), ev.Description))
		if ev.FromStage != "" && ev.ToStage != "" {
			sb.WriteString(fmt.Sprintf(" (%s → %s)", ev.FromStage.Label(), ev.ToStage.Label()))
		}
		if i < len(events)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("TIMELINE", sb.String())
}

// PrintCVList prints the user's CVs.
func (p *Printer) PrintCVList(cvs []types.CVSummary) {
	var sb strings.Builder
	if len(cvs) == 0 {
		sb.WriteString("No CVs yet. Create one with `jobdesk cv create`.")
	}
	for i, cv := range cvs {
		score := "  -"
		if cv.ATSScore != nil {
			score = fmt.Sprintf("%3d", *cv.ATSScore)
		}
		sb.WriteString(fmt.Sprintf("%s  %s  %s", score, cv.ID, cv.Title))
		if i < len(cvs)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("CVS (%d)", len(cvs)), sb.String())
}

// PrintCV prints a CV's main sections.
func (p *Printer) PrintCV(cv *types.CVDetail) {
	if cv == nil {
		return
	}
	var sb strings.Builder
	contact := cv.Content.ContactInfo()
	if name := contact["full_name"]; name != "" {
		sb.WriteString(name + "\n")
	}
	if email := contact["email"]; email != "" {
		sb.WriteString(email + "\n")
	}
	if summary := cv.Content.Summary(); summary != "" {
		sb.WriteString("\nSummary:\n")
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(summary, boxWidth-6)))
	}

	experience := cv.Content.Experience()
	if len(experience) > 0 {
		sb.WriteString("\nExperience:\n")
		count := min(len(experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			title, _ := experience[i]["title"].(string)
			company, _ := experience[i]["company"].(string)
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", title, company))
		}
		more(&sb, len(experience), count, "roles")
	}

	if skills := cv.Content.Skills(); len(skills) > 0 {
		sb.WriteString("\nSkills:\n")
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(skills, ", ")))
	}
	p.printBox(fmt.Sprintf("CV: %s", cv.Title), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSResult prints an analysis: overall score, section scores,
// missing keywords and the top suggestions.
func (p *Printer) PrintATSResult(res *types.ATSAnalysisResult) {
	if res == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall score:  %d/100\n", res.OverallScore))
	sb.WriteString(fmt.Sprintf("Keyword match:  %d%%\n", res.KeywordMatch))

	if len(res.SectionScores) > 0 {
		sb.WriteString("\nSections:\n")
		for _, name := range sortedKeys(res.SectionScores) {
			sb.WriteString(fmt.Sprintf("  %-14s %3d\n", name, res.SectionScores[name]))
		}
	}

	if len(res.MissingKeywords) > 0 {
		sb.WriteString("\nMissing keywords:\n")
		count := min(len(res.MissingKeywords), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(res.MissingKeywords[:count], ", ")))
		more(&sb, len(res.MissingKeywords), count, "keywords")
	}

	if len(res.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		count := min(len(res.Suggestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := res.Suggestions[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", s.ID, s.Suggested))
		}
		more(&sb, len(res.Suggestions), count, "suggestions")
	}

	if len(res.FormattingIssues) > 0 {
		sb.WriteString("\nFormatting:\n")
		for _, issue := range res.FormattingIssues {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", issue))
		}
	}
	p.printBox("ATS ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoverLetter prints the letter paragraphs, numbered for `rewrite`.
func (p *Printer) PrintCoverLetter(letter *types.CoverLetterContent) {
	if letter == nil {
		return
	}
	var sb strings.Builder
	for i, para := range letter.Paragraphs {
		sb.WriteString(fmt.Sprintf("[%d] %s", i, para))
		if i < len(letter.Paragraphs)-1 {
			sb.WriteString("\n")
		}
	}
	title := "COVER LETTER"
	if letter.ID != "" {
		title += " " + letter.ID
	}
	p.printBox(title, sb.String())
}

// PrintVersions prints saved cover letter versions.
func (p *Printer) PrintVersions(versions []types.CoverLetterVersion) {
	var sb strings.Builder
	if len(versions) == 0 {
		sb.WriteString("No saved versions")
	}
	for i, v := range versions {
		label := v.Label
		if label == "" {
			label = "(unlabelled)"
		}
		sb.WriteString(fmt.Sprintf("%s  %s  %s", v.CreatedAt.Format("2006-01-02 15:04"), v.ID, label))
		if i < len(versions)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("VERSIONS", sb.String())
}

// PrintLinkedIn prints an optimised profile section.
func (p *Printer) PrintLinkedIn(opt *types.LinkedInOptimization) {
	if opt == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(opt.Optimized + "\n")
	if len(opt.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("\nKeywords: %s\n", strings.Join(opt.Keywords, ", ")))
	}
	if len(opt.Tips) > 0 {
		sb.WriteString("\nTips:\n")
		for _, tip := range opt.Tips {
			sb.WriteString(fmt.Sprintf("  • %s\n", tip))
		}
	}
	p.printBox("LINKEDIN "+strings.ToUpper(opt.Section), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfile prints the user's profile.
func (p *Printer) PrintProfile(profile *types.UserProfile) {
	if profile == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.FullName))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Email))
	if profile.Headline != "" {
		sb.WriteString(fmt.Sprintf("Headline: %s\n", profile.Headline))
	}
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.Location))
	}
	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPlan prints the subscription and credit usage.
func (p *Printer) PrintPlan(plan *types.CurrentPlan) {
	if plan == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Plan:     %s (%s)\n", plan.Name, plan.Status))
	if plan.PriceCents > 0 {
		sb.WriteString(fmt.Sprintf("Price:    %s / %s\n", money(plan.PriceCents, plan.Currency), plan.Interval))
	}
	if plan.CreditsLimit > 0 {
		sb.WriteString(fmt.Sprintf("Credits:  %d of %d used\n", plan.CreditsUsed, plan.CreditsLimit))
	}
	if plan.CurrentPeriodEnd != nil {
		sb.WriteString(fmt.Sprintf("Renews:   %s\n", plan.CurrentPeriodEnd.Format("2006-01-02")))
	}
	p.printBox("BILLING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBillingHistory prints past invoices.
func (p *Printer) PrintBillingHistory(records []types.BillingRecord) {
	var sb strings.Builder
	if len(records) == 0 {
		sb.WriteString("No invoices")
	}
	for i, r := range records {
		sb.WriteString(fmt.Sprintf("%s  %10s  %-8s %s", r.CreatedAt.Format("2006-01-02"), money(r.AmountCents, r.Currency), r.Status, r.Description))
		if i < len(records)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("BILLING HISTORY", sb.String())
}

func money(cents int, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, strings.ToUpper(currency))
}

// PrintPreferences prints the user's settings.
func (p *Printer) PrintPreferences(prefs *types.UserPreferences) {
	if prefs == nil {
		return
	}
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Language:       %s\n", prefs.Language))
	sb.WriteString(fmt.Sprintf("Template:       %s\n", prefs.DefaultTemplateID))
	sb.WriteString(fmt.Sprintf("Tone:           %s\n", prefs.DefaultTone))
	sb.WriteString(fmt.Sprintf("Notifications:  %s\n", onOff(prefs.EmailNotifications)))
	sb.WriteString(fmt.Sprintf("Weekly digest:  %s", onOff(prefs.WeeklyDigest)))
	p.printBox("PREFERENCES", sb.String())
}

// PrintDashboard prints banners first, then the headline numbers and plan.
func (p *Printer) PrintDashboard(page *dashboard.Page) {
	if page == nil {
		return
	}
	for _, b := range page.Banners {
		p.Message("[%s] %s", b.Kind, b.Message)
	}

	var sb strings.Builder
	if page.Profile != nil {
		sb.WriteString(fmt.Sprintf("Welcome back, %s\n\n", page.Profile.FullName))
	}
	sb.WriteString(fmt.Sprintf("CVs:           %d (avg ATS %d)\n", page.Stats.CVCount, page.Stats.AverageATS))
	sb.WriteString(fmt.Sprintf("Applications:  %d\n", page.Stats.Applications))
	sb.WriteString(fmt.Sprintf("Interviews:    %d\n", page.Stats.Interviews))
	sb.WriteString(fmt.Sprintf("Offers:        %d", page.Stats.Offers))
	if page.Plan != nil {
		sb.WriteString(fmt.Sprintf("\nPlan:          %s", page.Plan.Name))
	}
	p.printBox("DASHBOARD", sb.String())
}
