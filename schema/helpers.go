package schema

import (
	"math"
	"time"
)

// Round2 rounds a value to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NewLeadTimeMetric computes the elapsed time between two instants. It
// returns nil when either endpoint is missing; callers treat a nil metric as
// "incomplete" rather than substituting a sentinel zero. A negative delta is
// preserved as-is since it signals inconsistent source data.
func NewLeadTimeMetric(start, end *time.Time) *LeadTimeMetric {
	if start == nil || end == nil {
		return nil
	}
	ms := end.Sub(*start).Milliseconds()
	return &LeadTimeMetric{
		Ms:    ms,
		Hours: Round2(float64(ms) / MsPerHour),
		Days:  Round2(float64(ms) / MsPerDay),
	}
}

// ChurnRate computes the deleted/added line ratio over a commit set. It
// returns nil when no commit carries change stats or when no lines were added.
func ChurnRate(commits []CommitRecord) *float64 {
	var additions, deletions int
	var seen bool
	for _, c := range commits {
		if c.Additions == nil && c.Deletions == nil {
			continue
		}
		seen = true
		if c.Additions != nil {
			additions += *c.Additions
		}
		if c.Deletions != nil {
			deletions += *c.Deletions
		}
	}
	if !seen || additions == 0 {
		return nil
	}
	rate := Round2(float64(deletions) / float64(additions))
	return &rate
}
