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
	"github.com/prpulse/prpulse/schema"
)

// PrintContributorResults outputs the per-contributor rollup, dispatching based on the output format configured.
func PrintContributorResults(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForContributors(w, report.Contributors)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeCSVResultsForContributors(csvWriter, report.Contributors, fmtFloat, intFmt)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeContributorTable(report, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writeContributorTable generates and writes the human-readable table.
func writeContributorTable(report *schema.AnalysisReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Contributor", "PRs", "Reviews", "Mean (h)", "Median (h)", "P90 (h)", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, c := range report.Contributors {
		mean, median, p90, label := "-", "-", "-", "-"
		if c.Stats.Count > 0 {
			mean = fmtFloat(c.Stats.Mean)
			median = fmtFloat(c.Stats.Median)
			p90 = fmtFloat(c.Stats.P90)
			label = labelFor(cfg, c.Stats.Mean)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			c.Contributor,
			fmt.Sprintf(intFmt, c.Count),
			fmt.Sprintf(intFmt, c.Reviews),
			mean,
			median,
			p90,
			label,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d contributors for %s\n", len(report.Contributors), report.Repository); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d API requests\n", duration, report.RequestCount); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForContributors writes the rollup in CSV format.
func writeCSVResultsForContributors(w *csv.Writer, rollups []schema.ContributorRollup, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"contributor",
		"prs",
		"reviews",
		"merged_with_metric",
		"mean_hours",
		"median_hours",
		"p90_hours",
		"label",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, c := range rollups {
		rec := []string{
			strconv.Itoa(i + 1),
			c.Contributor,
			fmt.Sprintf(intFmt, c.Count),
			fmt.Sprintf(intFmt, c.Reviews),
			fmt.Sprintf(intFmt, c.Stats.Count),
			fmtFloat(c.Stats.Mean),
			fmtFloat(c.Stats.Median),
			fmtFloat(c.Stats.P90),
			contract.GetPlainLabel(c.Stats.Mean),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForContributors writes the rollup in JSON format.
func writeJSONResultsForContributors(w io.Writer, rollups []schema.ContributorRollup) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONContributorRollup struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.ContributorRollup
	}

	output := make([]JSONContributorRollup, len(rollups))
	for i, c := range rollups {
		output[i] = JSONContributorRollup{
			Rank:              i + 1,
			Label:             contract.GetPlainLabel(c.Stats.Mean),
			ContributorRollup: c,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
