package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-job-tracker/internal/apiclient"
	"github.com/Tiliavir/trivial-job-tracker/internal/auth"
	"github.com/Tiliavir/trivial-job-tracker/internal/config"
	"github.com/Tiliavir/trivial-job-tracker/internal/logging"
	"github.com/Tiliavir/trivial-job-tracker/internal/tracker"
)

var (
	flagBaseURL  string
	flagLogLevel string
)

// Resolved in PersistentPreRunE, before any subcommand runs.
var (
	cfg  config.Config
	log  *logrus.Logger
	base string
)

var rootCmd = &cobra.Command{
	Use:   "tjt",
	Short: "Trivial Job Tracker – a minimal CLI for tracking job applications",
	Long: `tjt is a single-binary client for a job applications API.
It lists the applications stored on the server and submits new ones.
Configuration lives in ~/.tjt/config.json; TJT_* variables (also read from
a .env file) override it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Applications API root URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(interactionsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
}

// setup loads .env, the config file and the logger. Precedence is
// flags > environment > config file > defaults.
func setup(cmd *cobra.Command, args []string) error {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	var err error
	base, err = config.BaseDir()
	if err != nil {
		return err
	}
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if flagBaseURL != "" {
		cfg.API.BaseURL = flagBaseURL
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	log, err = logging.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return nil
}

// newClient builds an API client using the configured credential.
func newClient(ctx context.Context) *apiclient.Client {
	ts, src := auth.NewTokenSource(cfg.API.Token, base)
	log.WithFields(logrus.Fields{
		"base_url":   cfg.API.BaseURL,
		"credential": src,
	}).Debug("api client configured")
	return apiclient.New(ctx, cfg.API.BaseURL, ts, apiclient.WithLogger(log))
}

// newTracker builds a session whose notifications go to stderr.
func newTracker(ctx context.Context) *tracker.Tracker {
	return tracker.New(newClient(ctx), tracker.WriterNotifier(os.Stderr), log)
}
