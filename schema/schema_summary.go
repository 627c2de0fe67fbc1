package schema

import "time"

// StatsSummary holds the summary statistics for a sequence of metric values.
// The zero value is the summary of an empty sequence.
type StatsSummary struct {
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
	P95    float64 `json:"p95"`
}

// ContributorRollup groups the lead-time values observed for one contributor.
type ContributorRollup struct {
	Contributor string       `json:"contributor"`
	Count       int          `json:"count"`
	Values      []float64    `json:"values"`
	Reviews     int          `json:"reviews"`
	Stats       StatsSummary `json:"stats"`
}

// TrendBucket groups the lead-time values that fall into one calendar bucket.
// The key is "YYYY-W%02d" for weeks and "YYYY-MM" for months.
type TrendBucket struct {
	Key    string       `json:"key"`
	Kind   BucketKind   `json:"kind"`
	Count  int          `json:"count"`
	Values []float64    `json:"values"`
	Stats  StatsSummary `json:"stats"`
}

// Bottleneck is a rule-triggered flag produced by the detector. It is never
// mutated after creation.
type Bottleneck struct {
	Type        BottleneckType `json:"type"`
	Description string         `json:"description"`
	Impact      string         `json:"impact"`
}

// DateRange bounds an analysis window. Zero times mean unbounded.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range. Zero bounds are open.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// AnalysisReport is the full output of one run: enriched records plus the
// derived summaries. The report writer owns serialization.
type AnalysisReport struct {
	Repository    string
	GeneratedAt   time.Time
	DateRange     DateRange
	PullRequests  []PullRequestRecord
	Summary       StatsSummary // lead times in hours
	Contributors  []ContributorRollup
	WeeklyTrends  []TrendBucket
	MonthlyTrends []TrendBucket
	Bottlenecks   []Bottleneck

	// RequestCount is the number of API requests the run issued, for diagnostics.
	RequestCount int64
}

// MergedLeadTimeHours collects the lead times, in hours, of all pull requests
// that have a resolved metric. Order follows the fetch order of the records.
func (r *AnalysisReport) MergedLeadTimeHours() []float64 {
	values := make([]float64, 0, len(r.PullRequests))
	for _, pr := range r.PullRequests {
		if pr.LeadTime != nil {
			values = append(values, pr.LeadTime.Hours)
		}
	}
	return values
}
