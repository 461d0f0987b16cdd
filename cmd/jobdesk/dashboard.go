package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show profile, plan, CVs and applications at a glance",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	page, err := dashboard.Load(ctxOf(cmd), dashboard.FromClient(a.client))
	if err != nil {
		return err
	}
	return a.render(page, func() { a.printer.PrintDashboard(page) })
}
