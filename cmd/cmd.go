// Package cmd defines the command-line interface for prpulse.
package cmd

import (
	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(leadtimeCmd)
	rootCmd.AddCommand(contributorsCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("token", "t", "", "GitHub API token (or PRPULSE_TOKEN env var)")
	rootCmd.PersistentFlags().String("api-url", contract.DefaultAPIBaseURL, "Base URL of the GitHub API")
	rootCmd.PersistentFlags().String("start", "", "Start date in ISO8601 or time ago")
	rootCmd.PersistentFlags().String("end", "", "End date in ISO8601 or time ago")
	rootCmd.PersistentFlags().IntP("fetch-limit", "l", contract.UnboundedFetch, "Maximum pull requests to fetch (0 = unbounded)")
	rootCmd.PersistentFlags().Int("per-page", contract.DefaultPerPage, "Items requested per API page (max 100)")
	rootCmd.PersistentFlags().Int("max-attempts", contract.DefaultMaxAttempts, "Attempts per request before giving up on transient failures")
	rootCmd.PersistentFlags().String("base-delay", contract.DefaultBaseDelay.String(), "Base retry backoff delay (e.g. 1s, 500ms)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of contributorsCmd to Viper
	contributorsCmd.Flags().Bool("reviews", false, "Also fetch submitted reviews per pull request")
	if err := viper.BindPFlags(contributorsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding contributors flags", err)
	}
}
