package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/internal/parquet"
	"github.com/prpulse/prpulse/schema"
)

// PrintReportResults outputs the lead-time report, dispatching based on the output format configured.
func PrintReportResults(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, buildJSONReport(report))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForReport(csvWriter, report, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WritePullRequestsParquet(w, report)
		}, "Wrote Parquet")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(report, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
}

// writeReportTable generates and writes the human-readable table.
func writeReportTable(report *schema.AnalysisReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Rank", "PR", "Title", "Author", "Lead (h)", "Lead (d)", "Label"})

	// 2. Configure alignment to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	titleWidth := getMaxTableTitleWidth(cfg)
	var data [][]string
	rank := 0
	for _, pr := range report.PullRequests {
		leadHours, leadDays, label := "-", "-", "-"
		if pr.LeadTime != nil {
			leadHours = fmtFloat(pr.LeadTime.Hours)
			leadDays = fmtFloat(pr.LeadTime.Days)
			label = labelFor(cfg, pr.LeadTime.Hours)
		}
		rank++
		data = append(data, []string{
			strconv.Itoa(rank),
			fmt.Sprintf("#%d", pr.Number),
			contract.TruncateTitle(pr.Title, titleWidth),
			pr.Author,
			leadHours,
			leadDays,
			label,
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Summary footer
	merged := countMerged(report.PullRequests)
	if _, err := fmt.Fprintf(writer, "Analyzed %d pull requests (%d merged) in %s\n",
		len(report.PullRequests), merged, report.Repository); err != nil {
		return err
	}
	if report.Summary.Count > 0 {
		if _, err := fmt.Fprintf(writer, "Lead time hours: mean %s, median %s, p90 %s, p95 %s\n",
			fmtFloat(report.Summary.Mean), fmtFloat(report.Summary.Median),
			fmtFloat(report.Summary.P90), fmtFloat(report.Summary.P95)); err != nil {
			return err
		}
	}
	for _, b := range report.Bottlenecks {
		if _, err := fmt.Fprintf(writer, "⚠️  %s: %s\n", b.Type, b.Description); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d API requests\n", duration, report.RequestCount); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForReport writes the per-pull-request rows in CSV format.
func writeCSVResultsForReport(w *csv.Writer, report *schema.AnalysisReport, fmtFloat func(float64) string) error {
	header := []string{
		"pr_number",
		"title",
		"author",
		"repository",
		"state",
		"first_commit_timestamp",
		"merge_timestamp",
		"lead_time_hours",
		"lead_time_days",
		"head_branch",
		"base_branch",
		"label",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, pr := range report.PullRequests {
		leadHours, leadDays, label := "", "", ""
		if pr.LeadTime != nil {
			leadHours = fmtFloat(pr.LeadTime.Hours)
			leadDays = fmtFloat(pr.LeadTime.Days)
			label = contract.GetPlainLabel(pr.LeadTime.Hours)
		}
		rec := []string{
			strconv.Itoa(pr.Number),
			pr.Title,
			pr.Author,
			pr.Repository,
			string(pr.State),
			formatOptionalTime(pr.FirstCommitAt),
			formatOptionalTime(pr.MergedAt),
			leadHours,
			leadDays,
			pr.Head.Branch,
			pr.Base.Branch,
			label,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// countMerged counts records that carry a merge timestamp.
func countMerged(records []schema.PullRequestRecord) int {
	n := 0
	for _, pr := range records {
		if pr.MergedAt != nil {
			n++
		}
	}
	return n
}

// formatOptionalTime renders a timestamp pointer, empty when absent.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(contract.DateTimeFormat)
}
