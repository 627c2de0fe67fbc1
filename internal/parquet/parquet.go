// Package parquet provides data structures and functions for exporting pull
// request delivery data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/prpulse/prpulse/schema"
)

// PullRequestRow represents one analyzed pull request in the Parquet export.
// Columnar output keeps the dataset friendly to DuckDB and pandas consumers.
type PullRequestRow struct {
	// Number is the pull request number within the repository
	Number int64 `parquet:"pr_number,snappy"`

	// Title is the pull request title
	Title string `parquet:"title,snappy"`

	// Author is the login of the pull request author
	Author string `parquet:"author,snappy"`

	// Repository is the "owner/name" identity of the analyzed repository
	Repository string `parquet:"repository,snappy"`

	// State is the open/closed/merged state at fetch time
	State string `parquet:"state,snappy"`

	// HeadBranch is the source branch of the change
	HeadBranch string `parquet:"head_branch,snappy"`

	// BaseBranch is the merge target branch
	BaseBranch string `parquet:"base_branch,snappy"`

	// FirstCommitAt is when work started, from the first unique commit (nullable)
	FirstCommitAt *time.Time `parquet:"first_commit_timestamp,optional,snappy"`

	// MergedAt is when the pull request merged (nullable)
	MergedAt *time.Time `parquet:"merge_timestamp,optional,snappy"`

	// LeadTimeHours is the first-commit-to-merge interval in hours (nullable)
	LeadTimeHours *float64 `parquet:"lead_time_hours,optional,snappy"`

	// LeadTimeDays is the first-commit-to-merge interval in days (nullable)
	LeadTimeDays *float64 `parquet:"lead_time_days,optional,snappy"`

	// ChurnRate is deletions over additions across the unique commits (nullable)
	ChurnRate *float64 `parquet:"churn_rate,optional,snappy"`

	// ReviewCount is the number of submitted reviews, when fetched
	ReviewCount int32 `parquet:"review_count,snappy"`
}

// WritePullRequestsParquet writes the report's pull request rows to w.
func WritePullRequestsParquet(w io.Writer, report *schema.AnalysisReport) error {
	rows := convertPullRequestRecords(report.PullRequests)

	// The schema is derived from the PullRequestRow struct tags
	writer := parquet.NewGenericWriter[PullRequestRow](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// convertPullRequestRecords converts schema records to Parquet rows.
func convertPullRequestRecords(records []schema.PullRequestRecord) []PullRequestRow {
	rows := make([]PullRequestRow, len(records))
	for i, pr := range records {
		row := PullRequestRow{
			Number:        int64(pr.Number),
			Title:         pr.Title,
			Author:        pr.Author,
			Repository:    pr.Repository,
			State:         string(pr.State),
			HeadBranch:    pr.Head.Branch,
			BaseBranch:    pr.Base.Branch,
			FirstCommitAt: pr.FirstCommitAt,
			MergedAt:      pr.MergedAt,
			ChurnRate:     pr.ChurnRate,
			ReviewCount:   int32(pr.ReviewCount),
		}
		if pr.LeadTime != nil {
			hours, days := pr.LeadTime.Hours, pr.LeadTime.Days
			row.LeadTimeHours = &hours
			row.LeadTimeDays = &days
		}
		rows[i] = row
	}
	return rows
}
