package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/types"
)

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Plan, payments and invoices",
}

var (
	checkoutPlan     string
	checkoutInterval string
)

var billingPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the current plan and credit usage",
	Args:  cobra.NoArgs,
	RunE:  runBillingPlan,
}

var billingCheckoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Start a checkout for a plan and print its URL",
	Args:  cobra.NoArgs,
	RunE:  runBillingCheckout,
}

var billingHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List payments",
	Args:  cobra.NoArgs,
	RunE:  runBillingHistory,
}

var billingPortalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Print a link to the billing portal",
	Args:  cobra.NoArgs,
	RunE:  runBillingPortal,
}

func init() {
	billingCheckoutCmd.Flags().StringVar(&checkoutPlan, "plan", "", "Plan id")
	billingCheckoutCmd.Flags().StringVar(&checkoutInterval, "interval", "month", "month or year")
	billingCmd.AddCommand(billingPlanCmd, billingCheckoutCmd, billingHistoryCmd, billingPortalCmd)
	rootCmd.AddCommand(billingCmd)
}

func runBillingPlan(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	plan, err := a.client.Billing().Plan(ctxOf(cmd))
	if err != nil {
		return err
	}
	return a.render(plan, func() { a.printer.PrintPlan(plan) })
}

func runBillingCheckout(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	sess, err := a.client.Billing().Checkout(ctxOf(cmd), &types.CheckoutRequest{PlanID: checkoutPlan, Interval: checkoutInterval})
	if err != nil {
		return err
	}
	return a.render(sess, func() { a.printer.Message("Complete your purchase at:\n%s", sess.URL) })
}

func runBillingHistory(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	records, err := a.client.Billing().History(ctxOf(cmd))
	if err != nil {
		return err
	}
	return a.render(records, func() { a.printer.PrintBillingHistory(records) })
}

func runBillingPortal(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	portal, err := a.client.Billing().Portal(ctxOf(cmd))
	if err != nil {
		return err
	}
	return a.render(portal, func() { a.printer.Message("Manage billing at:\n%s", portal.URL) })
}
