// Command lcov-summary prints a per-file and overall coverage table for
// one or more LCOV tracefiles, merging them first if more than one is
// given.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/covtrace/lcov-merge"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lcov-summary trace.lcov...",
		Short: "Print a coverage summary for one or more LCOV tracefiles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := lcov.MergeFiles(context.Background(), args)
			if err != nil {
				return err
			}
			return displaySummary(cmd.OutOrStdout(), report)
		},
	}
	cmd.SilenceUsage = true
	return cmd
}

func displaySummary(w io.Writer, report *lcov.Report) error {
	rows := pterm.TableData{
		{"file", "lines", "functions", "branches"},
	}

	for _, entry := range report.Files.Entries() {
		totals := entry.File.FileCoverage()
		rows = append(rows, []string{
			entry.Source,
			percentCell(totals.LinesHit, totals.LinesFound),
			percentCell(totals.FunctionsHit, totals.FunctionsFound),
			percentCell(totals.BranchesHit, totals.BranchesFound),
		})
	}

	overall := report.Coverage()
	rows = append(rows, []string{
		"TOTAL",
		percentCell(overall.LinesHit, overall.LinesFound),
		percentCell(overall.FunctionsHit, overall.FunctionsFound),
		percentCell(overall.BranchesHit, overall.BranchesFound),
	})

	return pterm.DefaultTable.WithHasHeader().WithData(rows).WithWriter(w).Render()
}

func percentCell(hit, found int) string {
	if found == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", hit, found, float64(hit)/float64(found)*100)
}
