package detect

import (
	"testing"

	"github.com/prpulse/prpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typesOf(found []schema.Bottleneck) []schema.BottleneckType {
	var out []schema.BottleneckType
	for _, b := range found {
		out = append(out, b.Type)
	}
	return out
}

// TestDetect checks each rule's trigger against representative summaries.
func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		summary  schema.StatsSummary
		expected []schema.BottleneckType
	}{
		{
			name:     "tail runs past the median",
			summary:  schema.StatsSummary{Median: 50, P90: 300, Mean: 40},
			expected: []schema.BottleneckType{schema.HighVarianceBottleneck},
		},
		{
			name:     "slow on average but tight spread",
			summary:  schema.StatsSummary{Median: 100, P90: 150, Mean: 200},
			expected: []schema.BottleneckType{schema.LongLeadTimesBottleneck},
		},
		{
			name:     "both fire together",
			summary:  schema.StatsSummary{Median: 50, P90: 400, Mean: 300},
			expected: []schema.BottleneckType{schema.HighVarianceBottleneck, schema.LongLeadTimesBottleneck},
		},
		{
			name:     "healthy distribution",
			summary:  schema.StatsSummary{Median: 20, P90: 40, Mean: 24},
			expected: nil,
		},
		{
			name:     "zero median never counts as high variance",
			summary:  schema.StatsSummary{Median: 0, P90: 500, Mean: 10},
			expected: nil,
		},
		{
			name:     "boundary values do not fire",
			summary:  schema.StatsSummary{Median: 50, P90: 150, Mean: 168},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, typesOf(Detect(tt.summary)))
		})
	}
}

// TestDetectExtraRules verifies caller-supplied rules run after the
// built-in ones.
func TestDetectExtraRules(t *testing.T) {
	custom := func(summary schema.StatsSummary) *schema.Bottleneck {
		if summary.Count < 5 {
			return &schema.Bottleneck{Type: "small_sample"}
		}
		return nil
	}

	found := Detect(schema.StatsSummary{Count: 2, Median: 10, P90: 12, Mean: 11}, custom)
	require.Len(t, found, 1)
	assert.Equal(t, schema.BottleneckType("small_sample"), found[0].Type)
}

// TestDetectFindingText makes sure descriptions carry the observed numbers.
func TestDetectFindingText(t *testing.T) {
	found := Detect(schema.StatsSummary{Median: 50, P90: 300, Mean: 40})
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Description, "300.0h")
	assert.Contains(t, found[0].Description, "50.0h")
	assert.NotEmpty(t, found[0].Impact)
}
