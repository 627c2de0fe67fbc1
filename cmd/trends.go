package cmd

import (
	"github.com/prpulse/prpulse/core"
	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/internal/ghclient"
	"github.com/prpulse/prpulse/internal/outwriter"
	"github.com/spf13/cobra"
)

// trendsCmd buckets lead times into calendar windows.
var trendsCmd = &cobra.Command{
	Use:   "trends <owner/repo>",
	Short: "Show weekly and monthly lead time trends.",
	Long: `Bucket merged pull requests by their merge week and month and
summarize the lead times inside each bucket. Useful for spotting whether
delivery is speeding up or slowing down over a release cycle.

Examples:
  # Trends over the last quarter
  prpulse trends octo/widgets --start "3 months ago"

  # Flat rows for plotting
  prpulse trends octo/widgets --output csv --output-file trends.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := ghclient.New(cfg)
		if err := core.ExecuteTrends(rootCtx, cfg, client, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot run trends analysis", err)
		}
	},
}
