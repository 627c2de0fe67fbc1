package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/schema"
)

// PrintTrendResults outputs the weekly and monthly buckets, dispatching based on the output format configured.
func PrintTrendResults(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, map[string][]schema.TrendBucket{
				"weekly":  report.WeeklyTrends,
				"monthly": report.MonthlyTrends,
			})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForTrends(csvWriter, report, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTables(report, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writeTrendTables generates and writes one table per bucket kind.
func writeTrendTables(report *schema.AnalysisReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	sections := []struct {
		title   string
		buckets []schema.TrendBucket
	}{
		{title: "Weekly lead time", buckets: report.WeeklyTrends},
		{title: "Monthly lead time", buckets: report.MonthlyTrends},
	}

	for _, section := range sections {
		if _, err := fmt.Fprintf(writer, "%s\n", section.title); err != nil {
			return err
		}
		if err := writeTrendTable(section.buckets, cfg, fmtFloat, intFmt, writer); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d API requests\n", duration, report.RequestCount); err != nil {
		return err
	}
	return nil
}

// writeTrendTable renders one bucket table.
func writeTrendTable(buckets []schema.TrendBucket, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Bucket", "PRs", "Mean (h)", "Median (h)", "P90 (h)", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, b := range buckets {
		data = append(data, []string{
			b.Key,
			fmt.Sprintf(intFmt, b.Count),
			fmtFloat(b.Stats.Mean),
			fmtFloat(b.Stats.Median),
			fmtFloat(b.Stats.P90),
			labelFor(cfg, b.Stats.Mean),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForTrends writes both bucket kinds as flat rows.
func writeCSVResultsForTrends(w *csv.Writer, report *schema.AnalysisReport, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"kind",
		"bucket",
		"prs",
		"mean_hours",
		"median_hours",
		"p90_hours",
		"label",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, buckets := range [][]schema.TrendBucket{report.WeeklyTrends, report.MonthlyTrends} {
		for _, b := range buckets {
			rec := []string{
				string(b.Kind),
				b.Key,
				fmt.Sprintf(intFmt, b.Count),
				fmtFloat(b.Stats.Mean),
				fmtFloat(b.Stats.Median),
				fmtFloat(b.Stats.P90),
				contract.GetPlainLabel(b.Stats.Mean),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
