package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List submitted job applications",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	tr := newTracker(ctx)

	// The failure has already been reported to the user.
	if err := tr.Start(ctx); err != nil {
		os.Exit(1)
	}
	tr.List.Render(cmd.OutOrStdout())
	return nil
}
