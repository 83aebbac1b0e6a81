package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-job-tracker/internal/datecalc"
	"github.com/Tiliavir/trivial-job-tracker/internal/model"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show how many applications were sent per ISO week",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	tr := newTracker(ctx)
	if err := tr.Start(ctx); err != nil {
		os.Exit(1)
	}
	printReport(cmd.OutOrStdout(), tr.List.Applications(), reportFormat)
	return nil
}

func printReport(out io.Writer, apps []model.Application, format string) {
	dates := make([]string, len(apps))
	for i, a := range apps {
		dates[i] = a.ApplicationDate
	}
	weeks, undated := datecalc.CountByWeek(dates)

	switch format {
	case "csv":
		fmt.Fprintln(out, "week,applications")
		for _, w := range weeks {
			fmt.Fprintf(out, "%s,%d\n", w.Week, w.Count)
		}
		if undated > 0 {
			fmt.Fprintf(out, "undated,%d\n", undated)
		}
	case "json":
		fmt.Fprintln(out, "{")
		fmt.Fprintln(out, "  \"weeks\": [")
		for i, w := range weeks {
			comma := ","
			if i == len(weeks)-1 {
				comma = ""
			}
			fmt.Fprintf(out, "    {\"week\": %q, \"applications\": %d}%s\n", w.Week, w.Count, comma)
		}
		fmt.Fprintln(out, "  ],")
		fmt.Fprintf(out, "  \"undated\": %d,\n", undated)
		fmt.Fprintf(out, "  \"total\": %d\n", len(apps))
		fmt.Fprintln(out, "}")
	default: // md
		fmt.Fprintln(out, "Applications per week")
		fmt.Fprintln(out, "--------------------------------")
		for _, w := range weeks {
			fmt.Fprintf(out, "%-20s%d\n", w.Week, w.Count)
		}
		if undated > 0 {
			fmt.Fprintf(out, "%-20s%d\n", "Undated", undated)
		}
		fmt.Fprintln(out, "--------------------------------")
		fmt.Fprintf(out, "%-20s%d\n", "Total", len(apps))
	}
}
