package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/internal/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [owner/repo]",
	Short: "Start the PR Pulse MCP server",
	Long: `Launch an MCP server that allows AI agents to run pull request
lead-time analysis via standard tools. The repository argument is optional;
tools supply a repository per request.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The repository is optional here, so this skips the positional
		// validation that the analysis commands require.
		return serverSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

// serverSetup mirrors sharedSetup but tolerates a missing repository.
func serverSetup(_ context.Context, _ *cobra.Command, args []string) error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if len(args) == 1 {
		input.RepoStr = args[0]
	}
	return contract.ProcessAndValidateServer(cfg, input, time.Now())
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
