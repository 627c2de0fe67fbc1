package cmd

import (
	"github.com/prpulse/prpulse/core"
	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/internal/ghclient"
	"github.com/prpulse/prpulse/internal/outwriter"
	"github.com/spf13/cobra"
)

// contributorsCmd rolls lead times up per author.
var contributorsCmd = &cobra.Command{
	Use:   "contributors <owner/repo>",
	Short: "Summarize lead times and review activity per contributor.",
	Long: `Group pull requests by author and summarize each contributor's
delivery profile: how many pull requests they opened, how many reviews
they received, and the statistics of their merged lead times.

Examples:
  # Rank contributors by pull request volume
  prpulse contributors octo/widgets

  # Include review counts (extra API request per pull request)
  prpulse contributors octo/widgets --reviews

  # Export per-contributor statistics
  prpulse contributors octo/widgets --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := ghclient.New(cfg)
		if err := core.ExecuteContributors(rootCtx, cfg, client, outwriter.NewOutWriter()); err != nil {
			contract.LogFatal("Cannot run contributors analysis", err)
		}
	},
}
