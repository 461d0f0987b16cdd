package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/charts"
)

var (
	chartSize   int
	chartWidth  int
	chartHeight int
	chartOut    string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render score charts as SVG",
}

var chartRingCmd = &cobra.Command{
	Use:   "ring <score>",
	Short: "Render a score ring",
	Args:  cobra.ExactArgs(1),
	RunE:  runChartRing,
}

var chartSparklineCmd = &cobra.Command{
	Use:   "sparkline <score>...",
	Short: "Render a score history sparkline",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChartSparkline,
}

func init() {
	chartRingCmd.Flags().IntVar(&chartSize, "size", 120, "Width and height in pixels")
	chartSparklineCmd.Flags().IntVar(&chartWidth, "width", 120, "Width in pixels")
	chartSparklineCmd.Flags().IntVar(&chartHeight, "height", 32, "Height in pixels")
	for _, c := range []*cobra.Command{chartRingCmd, chartSparklineCmd} {
		c.Flags().StringVar(&chartOut, "out", "", "Write the SVG to this file instead of stdout")
	}
	chartCmd.AddCommand(chartRingCmd, chartSparklineCmd)
	rootCmd.AddCommand(chartCmd)
}

func parseScores(args []string) ([]float64, error) {
	var scores []float64
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			v, err := strconv.ParseFloat(part, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("invalid score %q", part)
			}
			scores = append(scores, v)
		}
	}
	return scores, nil
}

func writeSVG(cmd *cobra.Command, svg string) error {
	if chartOut == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(chartOut, []byte(svg+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", chartOut, err)
	}
	return nil
}

func runChartRing(cmd *cobra.Command, args []string) error {
	scores, err := parseScores(args)
	if err != nil {
		return err
	}
	if len(scores) != 1 {
		return fmt.Errorf("want exactly one score")
	}
	return writeSVG(cmd, charts.ScoreRing(scores[0], chartSize))
}

func runChartSparkline(cmd *cobra.Command, args []string) error {
	scores, err := parseScores(args)
	if err != nil {
		return err
	}
	return writeSVG(cmd, charts.Sparkline(scores, chartWidth, chartHeight))
}
