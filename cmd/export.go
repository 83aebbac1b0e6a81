package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-job-tracker/internal/model"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the server's applications to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	tr := newTracker(ctx)
	if err := tr.Start(ctx); err != nil {
		os.Exit(1)
	}
	apps := tr.List.Applications()
	out := cmd.OutOrStdout()

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(apps, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Fprintln(out, string(data))
	case "md":
		printMarkdown(out, apps)
	default: // csv
		printCSV(out, apps)
	}

	return nil
}

func printMarkdown(out io.Writer, apps []model.Application) {
	fmt.Fprintln(out, "| id | company | job title | applied | status |")
	fmt.Fprintln(out, "|----|---------|-----------|---------|--------|")
	for _, a := range apps {
		fmt.Fprintf(out, "| %s | %s | %s | %s | %s |\n",
			mdEscape(string(a.ID)), mdEscape(a.CompanyName), mdEscape(a.JobTitle),
			mdEscape(a.ApplicationDate), mdEscape(a.Status))
	}
}

// mdEscape keeps a value inside its table cell.
func mdEscape(s string) string {
	escaped := ""
	for _, c := range s {
		switch c {
		case '|':
			escaped += `\|`
		case '\n', '\r':
			escaped += " "
		default:
			escaped += string(c)
		}
	}
	return escaped
}

func printCSV(out io.Writer, apps []model.Application) {
	fmt.Fprintln(out, "id,company_name,job_title,application_date,status,source,job_number")
	for _, a := range apps {
		fmt.Fprintf(out, "%s,%s,%s,%s,%s,%s,%s\n",
			csvEscape(string(a.ID)),
			csvEscape(a.CompanyName),
			csvEscape(a.JobTitle),
			csvEscape(a.ApplicationDate),
			csvEscape(a.Status),
			csvEscape(a.Source),
			csvEscape(a.JobNumber),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
