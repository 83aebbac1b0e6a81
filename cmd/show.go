package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-job-tracker/internal/apiclient"
	"github.com/Tiliavir/trivial-job-tracker/internal/model"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single job application",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := newClient(ctx)

	app, err := client.GetApplication(ctx, model.ID(args[0]))
	if apiclient.IsNotFound(err) {
		fmt.Fprintf(os.Stderr, "No application with id %q.\n", args[0])
		os.Exit(1)
	}
	if err != nil {
		log.WithError(err).Error("Error fetching application")
		fmt.Fprintln(os.Stderr, "Failed to load application. Run with --log-level debug for details.")
		os.Exit(1)
	}

	printApplication(cmd.OutOrStdout(), app)
	return nil
}

func printApplication(out io.Writer, a model.Application) {
	fmt.Fprintln(out, a.Line())
	fmt.Fprintf(out, "  ID:      %s\n", a.ID)
	if a.Status != "" {
		fmt.Fprintf(out, "  Status:  %s\n", a.Status)
	}
	if a.Source != "" {
		fmt.Fprintf(out, "  Source:  %s\n", a.Source)
	}
	if a.JobNumber != "" {
		fmt.Fprintf(out, "  Job no.: %s\n", a.JobNumber)
	}
}
