// Command lcov-merge combines several LCOV tracefiles into one, summing
// execution counts and taking the union of every line, function, and
// branch across inputs.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/covtrace/lcov-merge"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var output string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "lcov-merge [flags] trace.lcov...",
		Short: "Merge LCOV tracefiles into one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}

			report, err := lcov.MergeFiles(context.Background(), args)
			if err != nil {
				return err
			}
			return report.SaveAs(output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write merged tracefile here (required)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each input file as it merges")
	cmd.SilenceUsage = true
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
