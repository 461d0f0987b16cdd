package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/tracker"
	"github.com/jonathan/jobdesk/internal/types"
)

var (
	boardSearch string
	boardStage  string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show tracked applications by stage",
	Long:  "Show the application board. --search matches company and role without regard to case.",
	Args:  cobra.NoArgs,
	RunE:  runBoard,
}

func init() {
	boardCmd.Flags().StringVarP(&boardSearch, "search", "s", "", "Only show jobs matching this text")
	boardCmd.Flags().StringVar(&boardStage, "stage", "", "Only show one stage (saved, applied, interview, offer, rejected)")
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	var stage *types.Stage
	if boardStage != "" {
		st, err := types.ParseStage(boardStage)
		if err != nil {
			return err
		}
		stage = &st
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	jobs, err := a.client.Jobs().List(ctxOf(cmd))
	if err != nil {
		return err
	}

	board := tracker.NewBoard(jobs)
	board.SetFilter(tracker.Filter{Search: boardSearch, Stage: stage})
	return a.render(board.Visible(), func() { a.printer.PrintBoard(board) })
}
