package core

import (
	"context"
	"fmt"
	"time"

	"github.com/prpulse/prpulse/core/agg"
	"github.com/prpulse/prpulse/core/detect"
	"github.com/prpulse/prpulse/core/stats"
	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/schema"
)

// BuildReport fetches, filters, and enriches the repository's pull requests,
// then rolls everything up into a single analysis report. Enrichment runs
// sequentially so the rate-limit budget drains predictably.
func BuildReport(ctx context.Context, cfg *contract.Config, client contract.SourceClient) (*schema.AnalysisReport, error) {
	records, err := client.ListPullRequests(ctx, cfg.Owner, cfg.Repo)
	if err != nil {
		return nil, fmt.Errorf("fetch pull requests: %w", err)
	}

	records = filterByDateRange(records, cfg.DateRange)

	for i := range records {
		if records[i].MergedAt == nil {
			continue
		}
		if err := enrichRecord(ctx, cfg, client, &records[i]); err != nil {
			return nil, err
		}
	}

	report := &schema.AnalysisReport{
		Repository:   cfg.Repository(),
		GeneratedAt:  time.Now().UTC(),
		DateRange:    cfg.DateRange,
		PullRequests: records,
		RequestCount: client.RequestCount(),
	}
	report.Summary = stats.Summarize(report.MergedLeadTimeHours())
	report.Contributors = agg.GroupByContributor(records)
	report.WeeklyTrends = agg.BucketBy(records, schema.WeekBucket)
	report.MonthlyTrends = agg.BucketBy(records, schema.MonthBucket)
	report.Bottlenecks = detect.Detect(report.Summary)
	return report, nil
}

// filterByDateRange keeps the records whose anchor instant falls inside the
// configured window. Merged pull requests anchor on the merge instant, the
// rest on creation. Records with neither timestamp pass through.
func filterByDateRange(records []schema.PullRequestRecord, window schema.DateRange) []schema.PullRequestRecord {
	kept := make([]schema.PullRequestRecord, 0, len(records))
	for _, pr := range records {
		anchor := pr.MergedAt
		if anchor == nil {
			anchor = pr.CreatedAt
		}
		if anchor == nil || window.Contains(*anchor) {
			kept = append(kept, pr)
		}
	}
	return kept
}
