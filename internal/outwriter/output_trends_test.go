package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/prpulse/prpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trendReport() *schema.AnalysisReport {
	return &schema.AnalysisReport{
		Repository: "octo/widgets",
		WeeklyTrends: []schema.TrendBucket{
			{
				Key:    "2024-W01",
				Kind:   schema.WeekBucket,
				Count:  2,
				Values: []float64{10, 20},
				Stats:  schema.StatsSummary{Count: 2, Mean: 15, Median: 15, P90: 20},
			},
		},
		MonthlyTrends: []schema.TrendBucket{
			{
				Key:    "2024-01",
				Kind:   schema.MonthBucket,
				Count:  2,
				Values: []float64{10, 20},
				Stats:  schema.StatsSummary{Count: 2, Mean: 15, Median: 15, P90: 20},
			},
		},
		RequestCount: 4,
	}
}

// TestWriteTrendTables checks both sections render with their keys.
func TestWriteTrendTables(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(2)

	err := writeTrendTables(trendReport(), tableConfig(), fmtFloat, intFmt, time.Second, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Weekly lead time")
	assert.Contains(t, out, "Monthly lead time")
	assert.Contains(t, out, "2024-W01")
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "4 API requests")
}

// TestWriteCSVResultsForTrends checks the flattened rows carry both kinds.
func TestWriteCSVResultsForTrends(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(2)

	w := csv.NewWriter(&buf)
	require.NoError(t, writeCSVResultsForTrends(w, trendReport(), fmtFloat, intFmt))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"week", "2024-W01", "2", "15.00", "15.00", "20.00", "Fast"}, records[1])
	assert.Equal(t, "month", records[2][0])
}

// TestPrintTrendResultsJSON checks the keyed JSON payload.
func TestPrintTrendResultsJSON(t *testing.T) {
	path := t.TempDir() + "/trends.json"
	cfg := tableConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = path

	require.NoError(t, PrintTrendResults(trendReport(), cfg, time.Second))

	var decoded map[string][]schema.TrendBucket
	require.NoError(t, json.Unmarshal(readFile(t, path), &decoded))
	require.Len(t, decoded["weekly"], 1)
	assert.Equal(t, "2024-W01", decoded["weekly"][0].Key)
	require.Len(t, decoded["monthly"], 1)
}
