package cmd

import (
	"github.com/prpulse/prpulse/core"
	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/internal/ghclient"
	"github.com/prpulse/prpulse/internal/outwriter"
	"github.com/spf13/cobra"
)

// leadtimeCmd measures first-commit-to-merge lead times.
var leadtimeCmd = &cobra.Command{
	Use:   "leadtime <owner/repo>",
	Short: "Measure pull request lead times from first commit to merge.",
	Long: `Fetch pull request history and measure how long each change took
from its first unique commit to the merge.

For every merged pull request the first commit that is not already on the
base branch anchors the clock. The report includes summary statistics
(mean, median, P90, P95) and flags delivery bottlenecks such as high
variance or week-plus average lead times.

Examples:
  # Analyze the last 30 days of a repository
  prpulse leadtime golang/go --start "30 days ago"

  # Cap the fetch and export the rows for spreadsheets
  prpulse leadtime octo/widgets --fetch-limit 200 --output csv --output-file leadtimes.csv

  # Produce the JSON report consumed by the reporting notebooks
  prpulse leadtime octo/widgets --output json --output-file report.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := ghclient.New(cfg)
		if err := core.ExecuteLeadTime(rootCtx, cfg, client, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot run leadtime analysis", err)
		}
	},
}
