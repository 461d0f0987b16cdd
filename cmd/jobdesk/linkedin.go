package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/editor"
	"github.com/jonathan/jobdesk/internal/ingestion"
)

var (
	liSection string
	liText    string
	liRole    string
)

var linkedinCmd = &cobra.Command{
	Use:   "linkedin",
	Short: "Improve LinkedIn profile sections",
}

var linkedinOptimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize one profile section",
	Long:  "Optimize a headline, about, experience or skills section. --text takes the text itself, @file or - for stdin.",
	Args:  cobra.NoArgs,
	RunE:  runLinkedInOptimize,
}

func init() {
	linkedinOptimizeCmd.Flags().StringVar(&liSection, "section", "headline", "headline, about, experience or skills")
	linkedinOptimizeCmd.Flags().StringVar(&liText, "text", "", "Current section text: text, @file or -")
	linkedinOptimizeCmd.Flags().StringVar(&liRole, "role", "", "Target role")
	linkedinCmd.AddCommand(linkedinOptimizeCmd)
	rootCmd.AddCommand(linkedinCmd)
}

func runLinkedInOptimize(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	text := liText
	if strings.TrimSpace(text) != "" {
		// A blank result falls through to request validation.
		if loaded, err := ingestion.Load(text, cmd.InOrStdin()); err == nil {
			text = loaded
		}
	}

	opt := editor.NewLinkedInOptimizer(a.client.LinkedIn())
	res, err := opt.Optimize(ctxOf(cmd), strings.ToLower(liSection), text, liRole)
	if err != nil {
		return err
	}
	return a.render(res, func() { a.printer.PrintLinkedIn(res) })
}
