package outwriter

import (
	"time"

	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/schema"
)

// The JSON report keys are uppercase where downstream spreadsheet and
// notebook consumers expect metric columns. Changing them breaks those
// pipelines, so they stay as-is.

// JSONSummary carries the headline lead-time statistics.
type JSONSummary struct {
	TotalPRs            int     `json:"TOTAL_PRS"`
	MergedPRs           int     `json:"MERGED_PRS"`
	AvgLeadTimeHours    float64 `json:"AVG_LEAD_TIME_HOURS"`
	AvgLeadTimeDays     float64 `json:"AVG_LEAD_TIME_DAYS"`
	MedianLeadTimeHours float64 `json:"MEDIAN_LEAD_TIME_HOURS"`
	MedianLeadTimeDays  float64 `json:"MEDIAN_LEAD_TIME_DAYS"`
	MinLeadTimeDays     float64 `json:"MIN_LEAD_TIME_DAYS"`
	MaxLeadTimeDays     float64 `json:"MAX_LEAD_TIME_DAYS"`
	P75LeadTimeDays     float64 `json:"P75_LEAD_TIME_DAYS"`
	P95LeadTimeDays     float64 `json:"P95_LEAD_TIME_DAYS"`
}

// JSONTotals carries the entity counts.
type JSONTotals struct {
	Contributors         int `json:"CONTRIBUTORS"`
	RepositoriesAnalyzed int `json:"REPOSITORIES_ANALYZED"`
}

// JSONDateRange carries the analysis window bounds, empty when unbounded.
type JSONDateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// JSONPullRequest is one row of the detailed analysis.
type JSONPullRequest struct {
	PRNumber             int      `json:"pr_number"`
	Title                string   `json:"title"`
	Author               string   `json:"author"`
	Repository           string   `json:"repository"`
	State                string   `json:"state"`
	FirstCommitTimestamp string   `json:"first_commit_timestamp"`
	MergeTimestamp       string   `json:"merge_timestamp"`
	LeadTimeHours        *float64 `json:"LEAD_TIME_HOURS"`
	LeadTimeDays         *float64 `json:"LEAD_TIME_DAYS"`
	HeadBranch           string   `json:"head_branch"`
	BaseBranch           string   `json:"base_branch"`
}

// JSONDetailedAnalysis wraps the per-pull-request rows.
type JSONDetailedAnalysis struct {
	PullRequests []JSONPullRequest `json:"pull_requests"`
}

// JSONReport is the serialized lead-time report.
type JSONReport struct {
	Summary          JSONSummary          `json:"summary"`
	Total            JSONTotals           `json:"total"`
	DateRange        JSONDateRange        `json:"date_range"`
	DetailedAnalysis JSONDetailedAnalysis `json:"detailed_analysis"`
	Bottlenecks      []schema.Bottleneck  `json:"bottlenecks,omitempty"`
}

// buildJSONReport flattens the analysis report into the export shape.
func buildJSONReport(report *schema.AnalysisReport) *JSONReport {
	s := report.Summary
	out := &JSONReport{
		Summary: JSONSummary{
			TotalPRs:            len(report.PullRequests),
			MergedPRs:           countMerged(report.PullRequests),
			AvgLeadTimeHours:    s.Mean,
			AvgLeadTimeDays:     schema.Round2(s.Mean / 24),
			MedianLeadTimeHours: s.Median,
			MedianLeadTimeDays:  schema.Round2(s.Median / 24),
			MinLeadTimeDays:     schema.Round2(s.Min / 24),
			MaxLeadTimeDays:     schema.Round2(s.Max / 24),
			P75LeadTimeDays:     schema.Round2(s.P75 / 24),
			P95LeadTimeDays:     schema.Round2(s.P95 / 24),
		},
		Total: JSONTotals{
			Contributors:         len(report.Contributors),
			RepositoriesAnalyzed: 1,
		},
		DateRange: JSONDateRange{
			StartDate: formatDateBound(report.DateRange.Start),
			EndDate:   formatDateBound(report.DateRange.End),
		},
		Bottlenecks: report.Bottlenecks,
	}

	rows := make([]JSONPullRequest, 0, len(report.PullRequests))
	for _, pr := range report.PullRequests {
		row := JSONPullRequest{
			PRNumber:             pr.Number,
			Title:                pr.Title,
			Author:               pr.Author,
			Repository:           pr.Repository,
			State:                string(pr.State),
			FirstCommitTimestamp: formatOptionalTime(pr.FirstCommitAt),
			MergeTimestamp:       formatOptionalTime(pr.MergedAt),
			HeadBranch:           pr.Head.Branch,
			BaseBranch:           pr.Base.Branch,
		}
		if pr.LeadTime != nil {
			hours, days := pr.LeadTime.Hours, pr.LeadTime.Days
			row.LeadTimeHours = &hours
			row.LeadTimeDays = &days
		}
		rows = append(rows, row)
	}
	out.DetailedAnalysis.PullRequests = rows
	return out
}

// formatDateBound renders a window bound, empty when the bound is open.
func formatDateBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(contract.DateTimeFormat)
}
