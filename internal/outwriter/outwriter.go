// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.ReportWriter = (*OutWriter)(nil) // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints the full lead-time report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	return PrintReportResults(report, cfg, duration)
}

// WriteContributors prints the per-contributor rollup using the configured output format.
func (ow *OutWriter) WriteContributors(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	return PrintContributorResults(report, cfg, duration)
}

// WriteTrends prints the weekly and monthly buckets using the configured output format.
func (ow *OutWriter) WriteTrends(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	return PrintTrendResults(report, cfg, duration)
}
