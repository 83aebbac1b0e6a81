package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-job-tracker/internal/datecalc"
	"github.com/Tiliavir/trivial-job-tracker/internal/model"
	"github.com/Tiliavir/trivial-job-tracker/internal/tracker"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Interactive session: fill in the form and submit applications",
	Long: `Start an interactive session. The current list is loaded and shown first.
Then type one command per line:

  company_name <value>      set the company name
  job_title <value>         set the job title
  application_date <value>  set the date (YYYY-MM-DD, or "today")
  draft                     show the current draft
  submit                    submit the draft and reload the list
  list                      show the list
  refresh                   reload the list from the server
  help                      show this help
  quit                      leave the session`,
	Args: cobra.NoArgs,
	RunE: runForm,
}

func runForm(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	tr := newTracker(ctx)
	out := cmd.OutOrStdout()

	// A failed initial load has been reported; the session still starts.
	_ = tr.Start(ctx)
	tr.List.Render(out)
	fmt.Fprintln(out)

	return runSession(ctx, tr, cmd.InOrStdin(), out, time.Now)
}

const sessionHelp = `commands: company_name|job_title|application_date <value>, draft, submit, list, refresh, help, quit`

// runSession reads commands from in until EOF or quit.
func runSession(ctx context.Context, tr *tracker.Tracker, in io.Reader, out io.Writer, now func() time.Time) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		handleSessionLine(ctx, tr, line, out, now)
		fmt.Fprint(out, "> ")
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func handleSessionLine(ctx context.Context, tr *tracker.Tracker, line string, out io.Writer, now func() time.Time) {
	command, value, _ := strings.Cut(line, " ")
	value = strings.TrimSpace(value)

	switch command {
	case "":
	case "help":
		fmt.Fprintln(out, sessionHelp)
	case "draft":
		printDraft(out, tr.Form.Draft())
	case "list":
		tr.List.Render(out)
	case "refresh":
		if err := tr.List.Refresh(ctx); err == nil {
			tr.List.Render(out)
		}
	case "submit":
		err := tr.Form.Submit(ctx)
		switch {
		case errors.Is(err, tracker.ErrSubmitInFlight):
			fmt.Fprintln(out, "Still submitting, please wait.")
		case err == nil:
			fmt.Fprintln(out, "Application submitted.")
			tr.List.Render(out)
		}
	default:
		if command == model.FieldApplicationDate && value == "today" {
			value = datecalc.Today(now())
		}
		if err := tr.Form.SetField(command, value); err != nil {
			fmt.Fprintf(out, "Unknown command %q. %s\n", command, sessionHelp)
		}
	}
}

func printDraft(out io.Writer, d model.Draft) {
	fmt.Fprintf(out, "  company_name:     %s\n", d.CompanyName)
	fmt.Fprintf(out, "  job_title:        %s\n", d.JobTitle)
	fmt.Fprintf(out, "  application_date: %s\n", d.ApplicationDate)
}
