package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-job-tracker/internal/datecalc"
	"github.com/Tiliavir/trivial-job-tracker/internal/model"
)

var (
	interactionDate      string
	interactionSender    string
	interactionSubject   string
	interactionSnippet   string
	interactionType      string
	interactionMessageID string
)

var interactionsCmd = &cobra.Command{
	Use:   "interactions <application-id>",
	Short: "List the email interactions of a job application",
	Args:  cobra.ExactArgs(1),
	RunE:  runInteractions,
}

var interactionsAddCmd = &cobra.Command{
	Use:   "add <application-id>",
	Short: "Record an email interaction for a job application",
	Long: `Record an email interaction for a job application.
The date defaults to today.`,
	Args: cobra.ExactArgs(1),
	RunE: runInteractionsAdd,
}

func init() {
	f := interactionsAddCmd.Flags()
	f.StringVar(&interactionDate, "date", "", "Interaction date (YYYY-MM-DD, default today)")
	f.StringVar(&interactionSender, "sender", "", "Sender address")
	f.StringVar(&interactionSubject, "subject", "", "Mail subject")
	f.StringVar(&interactionSnippet, "snippet", "", "Short excerpt of the mail body")
	f.StringVar(&interactionType, "type", "", `Interaction type, e.g. "Interview Invite"`)
	f.StringVar(&interactionMessageID, "message-id", "", "Gmail message id")
	interactionsCmd.AddCommand(interactionsAddCmd)
}

func runInteractions(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	client := newClient(ctx)

	interactions, err := client.ListInteractions(ctx, model.ID(args[0]))
	if err != nil {
		log.WithError(err).Error("Error fetching interactions")
		fmt.Fprintln(os.Stderr, "Failed to load interactions. Run with --log-level debug for details.")
		os.Exit(1)
	}

	printInteractions(cmd.OutOrStdout(), interactions)
	return nil
}

func runInteractionsAdd(cmd *cobra.Command, args []string) error {
	date := interactionDate
	if date == "" {
		date = datecalc.Today(time.Now())
	} else if _, err := datecalc.ParseDate(date); err != nil {
		return err
	}

	ctx := context.Background()
	client := newClient(ctx)

	draft := model.InteractionDraft{
		ApplicationID:   model.ID(args[0]),
		GmailMessageID:  interactionMessageID,
		InteractionDate: date,
		Sender:          interactionSender,
		Subject:         interactionSubject,
		Snippet:         interactionSnippet,
		InteractionType: interactionType,
	}
	if err := client.CreateInteraction(ctx, draft); err != nil {
		log.WithError(err).Error("Error creating interaction")
		fmt.Fprintln(os.Stderr, "Failed to create interaction. Run with --log-level debug for details.")
		os.Exit(1)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded interaction for application %s.\n", args[0])
	return nil
}

func printInteractions(out io.Writer, interactions []model.Interaction) {
	if len(interactions) == 0 {
		fmt.Fprintln(out, "No interactions found.")
		return
	}
	for _, i := range interactions {
		fmt.Fprintln(out, i.Line())
		if i.Snippet != "" {
			fmt.Fprintf(out, "  %s\n", i.Snippet)
		}
	}
}
