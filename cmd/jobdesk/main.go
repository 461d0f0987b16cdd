// Package main provides the jobdesk command line client and local console.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	apiURL     string
	outputFmt  string
	idToken    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "jobdesk",
	Short:         "Job search workspace client",
	Long:          "jobdesk manages tracked applications, CVs, ATS analyses, cover letters and billing on the jobdesk backend, and runs a local console server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (default $JOBDESK_API_URL or http://localhost:8066/api/v1)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().StringVar(&idToken, "token", "", "Identity token (default $JOBDESK_ID_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every backend request to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()
	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorText(err))
		os.Exit(1)
	}
}
