// Package core has core logic for fetching, enriching and aggregating
// pull request delivery metrics.
package core

import (
	"context"
	"time"

	"github.com/prpulse/prpulse/internal/contract"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, client contract.SourceClient, writer contract.ReportWriter) error

// ExecuteLeadTime runs the full analysis and prints the lead-time report.
// It serves as the main entry point for the 'leadtime' mode.
func ExecuteLeadTime(ctx context.Context, cfg *contract.Config, client contract.SourceClient, writer contract.ReportWriter) error {
	start := time.Now()
	report, err := BuildReport(ctx, cfg, client)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return writer.WriteReport(report, cfg, duration)
}

// ExecuteContributors runs the full analysis and prints the per-contributor
// rollup. It serves as the main entry point for the 'contributors' mode.
func ExecuteContributors(ctx context.Context, cfg *contract.Config, client contract.SourceClient, writer contract.ReportWriter) error {
	start := time.Now()
	report, err := BuildReport(ctx, cfg, client)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return writer.WriteContributors(report, cfg, duration)
}

// ExecuteTrends runs the full analysis and prints the weekly and monthly
// buckets. It serves as the main entry point for the 'trends' mode.
func ExecuteTrends(ctx context.Context, cfg *contract.Config, client contract.SourceClient, writer contract.ReportWriter) error {
	start := time.Now()
	report, err := BuildReport(ctx, cfg, client)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return writer.WriteTrends(report, cfg, duration)
}
