package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-job-tracker/internal/auth"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured API and credential",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "API:        %s/applications/\n", cfg.API.BaseURL)

	if cfg.API.Token != "" {
		fmt.Fprintln(out, "Credential: static token (config or TJT_API_TOKEN)")
		return nil
	}

	path := auth.TokenFilePath(base)
	tok, err := auth.LoadToken(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	switch {
	case tok == nil || tok.AccessToken == "":
		fmt.Fprintln(out, "Credential: none (run `tjt login --token <token>`)")
	case tok.Expiry.IsZero():
		fmt.Fprintf(out, "Credential: %s (no expiry)\n", path)
	case tok.Valid():
		fmt.Fprintf(out, "Credential: %s (expires %s)\n", path, tok.Expiry.Format("2006-01-02 15:04"))
	default:
		fmt.Fprintf(out, "Credential: %s (expired %s)\n", path, tok.Expiry.Format("2006-01-02 15:04"))
	}
	return nil
}
