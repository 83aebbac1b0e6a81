package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/trivial-job-tracker/internal/auth"
)

var (
	loginToken     string
	loginExpiresIn time.Duration
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the bearer token used for API requests",
	Long: `Store a bearer token in ~/.tjt/auth/token.json. Tokens are issued by
the API's authentication provider; tjt only presents them. Running login
again replaces the stored token, and later requests use the new one.
Pass "-" as the token to read it from stdin.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the stored bearer token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", `Bearer token, or "-" to read from stdin`)
	loginCmd.Flags().DurationVar(&loginExpiresIn, "expires-in", 0, "Token lifetime (e.g. 1h); 0 means no expiry")
	_ = loginCmd.MarkFlagRequired("token")
}

func runLogin(cmd *cobra.Command, args []string) error {
	token := loginToken
	if token == "-" {
		data, err := readAllTrimmed(cmd)
		if err != nil {
			return err
		}
		token = data
	}
	if token == "" {
		fmt.Fprintln(os.Stderr, "Empty token; nothing stored.")
		os.Exit(1)
	}

	tok := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	if loginExpiresIn > 0 {
		tok.Expiry = time.Now().Add(loginExpiresIn)
	}

	path := auth.TokenFilePath(base)
	if err := auth.SaveToken(path, tok); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.API.Token != "" {
		fmt.Fprintln(os.Stderr, "Warning: a static token is configured (config or TJT_API_TOKEN) and takes precedence.")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Token stored in %s\n", path)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := auth.RemoveToken(auth.TokenFilePath(base)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Stored token removed.")
	return nil
}

func readAllTrimmed(cmd *cobra.Command) (string, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading token from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
