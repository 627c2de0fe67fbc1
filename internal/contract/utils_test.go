package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetPlainLabel checks the lead-time bin boundaries.
func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		hours    float64
		expected string
	}{
		{name: "fast", hours: 5, expected: FastValue},
		{name: "just under a day", hours: 23.99, expected: FastValue},
		{name: "exactly a day", hours: 24, expected: ModerateValue},
		{name: "three days boundary", hours: 72, expected: SlowValue},
		{name: "under a week", hours: 167.99, expected: SlowValue},
		{name: "a week", hours: 168, expected: CriticalValue},
		{name: "negative anomaly stays fast bin", hours: -3, expected: FastValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.hours))
		})
	}
}

// TestTruncateTitle checks width handling including tiny widths.
func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "short", TruncateTitle("short", 20))
	assert.Equal(t, "a long ti...", TruncateTitle("a long title indeed", 12))
	assert.Equal(t, "ab", TruncateTitle("abcdef", 2))
	assert.Equal(t, "untouched", TruncateTitle("untouched", 0))
}

// TestParseTimeInput covers the accepted formats.
func TestParseTimeInput(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("rfc3339", func(t *testing.T) {
		got, err := ParseTimeInput("2024-01-02T03:04:05Z", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), got)
	})

	t.Run("bare date", func(t *testing.T) {
		got, err := ParseTimeInput("2024-01-02", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("relative months", func(t *testing.T) {
		got, err := ParseTimeInput("3 months ago", now)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, -3, 0), got)
	})

	t.Run("relative singular", func(t *testing.T) {
		got, err := ParseTimeInput("1 hour ago", now)
		require.NoError(t, err)
		assert.Equal(t, now.Add(-time.Hour), got)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseTimeInput("soon", now)
		assert.Error(t, err)
	})
}
