package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdesk/internal/api"
	"github.com/jonathan/jobdesk/internal/config"
	"github.com/jonathan/jobdesk/internal/observability"
	"github.com/jonathan/jobdesk/internal/session"
)

// signInHint is printed when the backend rejects the identity token.
const signInHint = "Your session has expired. Sign in again and set JOBDESK_ID_TOKEN (or pass --token)."

// app bundles what a command needs to talk to the backend.
type app struct {
	cfg     config.Config
	session *session.Session
	client  *api.Client
	printer *observability.Printer
	out     io.Writer
	errOut  io.Writer
}

// resolveConfig layers flags over the config file, environment and defaults.
func resolveConfig() (config.Config, error) {
	var file *config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		file = loaded
	}
	cfg := config.Resolve(config.Config{APIURL: apiURL, IDToken: idToken, Output: outputFmt, Verbose: verbose}, file)
	if file != nil && file.Verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newApp builds the session and API client for cmd.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	// Concurrent loaders can each hit a 401; one hint is enough.
	errOut := cmd.ErrOrStderr()
	var hintOnce sync.Once
	sess, err := session.FromIDToken(cfg.IDToken, session.WithRedirector(session.RedirectFunc(func(string) {
		hintOnce.Do(func() { fmt.Fprintln(errOut, signInHint) })
	})))
	if err != nil {
		return nil, err
	}

	opts := []api.Option{
		api.WithTimeout(cfg.Timeout()),
		api.WithLongRequestTimeout(cfg.ATSTimeout()),
	}
	if cfg.Verbose {
		opts = append(opts, api.WithLogger(log.New(errOut, "", log.LstdFlags)))
	}
	client, err := api.NewClient(cfg.APIURL, sess, opts...)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		session: sess,
		client:  client,
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		out:     cmd.OutOrStdout(),
		errOut:  errOut,
	}, nil
}

// render prints v with the table printer or encodes it for scripts.
func (a *app) render(v any, table func()) error {
	if a.cfg.Output == observability.FormatTable {
		table()
		return nil
	}
	return observability.Encode(a.out, a.cfg.Output, v)
}

// saveBlob writes a downloaded file into dir (the configured download dir
// when empty) and reports where it went.
func (a *app) saveBlob(blob *api.Blob, dir, fallback string) error {
	if dir == "" {
		dir = a.cfg.DownloadDir
	}
	path, err := blob.Save(dir, fallback)
	if err != nil {
		return err
	}
	a.printer.Message("Saved %s (%d bytes)", path, len(blob.Data))
	return nil
}

// errorText prefers the message a person should see over the raw error.
func errorText(err error) string {
	return api.UserMessage(err, err.Error())
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid job id %q", arg)
	}
	return id, nil
}
