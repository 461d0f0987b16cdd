package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local console server",
	Long:  `Start an HTTP server exposing the ATS analysis proxy, a per-user job board and SVG chart endpoints.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", server.DefaultHost, "Interface to listen on; 0.0.0.0 exposes the console to the network")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 3000 or console_port from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	port := cfg.ConsolePort
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Host:       serveHost,
		Port:       port,
		APIURL:     cfg.APIURL,
		ATSTimeout: cfg.ATSTimeout(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
