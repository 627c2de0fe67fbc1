// Package agg has contributor and calendar-bucket aggregation logic.
package agg

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/prpulse/prpulse/core/stats"
	"github.com/prpulse/prpulse/schema"
)

// GroupByContributor groups pull requests by author identity. Count covers
// all of a contributor's records; the value list and statistics cover only
// the records with a resolved lead-time metric. The result is sorted by
// count descending, then identity, so display order is stable.
func GroupByContributor(records []schema.PullRequestRecord) []schema.ContributorRollup {
	groups := make(map[string]*schema.ContributorRollup)
	for _, pr := range records {
		key := pr.Author
		if key == "" {
			key = "unknown"
		}
		rollup, ok := groups[key]
		if !ok {
			rollup = &schema.ContributorRollup{Contributor: key}
			groups[key] = rollup
		}
		rollup.Count++
		rollup.Reviews += pr.ReviewCount
		if pr.LeadTime != nil {
			rollup.Values = append(rollup.Values, pr.LeadTime.Hours)
		}
	}

	results := make([]schema.ContributorRollup, 0, len(groups))
	for _, rollup := range groups {
		rollup.Stats = stats.Summarize(rollup.Values)
		results = append(results, *rollup)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Contributor < results[j].Contributor
	})
	return results
}

// BucketBy groups pull requests into calendar buckets keyed from their merge
// instant. Records without a merge timestamp or lead-time metric are skipped:
// a bucket holds observed delivery intervals only. The result is sorted by
// bucket key ascending.
func BucketBy(records []schema.PullRequestRecord, kind schema.BucketKind) []schema.TrendBucket {
	groups := make(map[string]*schema.TrendBucket)
	for _, pr := range records {
		if pr.MergedAt == nil || pr.LeadTime == nil {
			continue
		}
		var key string
		switch kind {
		case schema.MonthBucket:
			key = MonthKey(*pr.MergedAt)
		default:
			key = WeekKey(*pr.MergedAt)
		}
		bucket, ok := groups[key]
		if !ok {
			bucket = &schema.TrendBucket{Key: key, Kind: kind}
			groups[key] = bucket
		}
		bucket.Count++
		bucket.Values = append(bucket.Values, pr.LeadTime.Hours)
	}

	results := make([]schema.TrendBucket, 0, len(groups))
	for _, bucket := range groups {
		bucket.Stats = stats.Summarize(bucket.Values)
		results = append(results, *bucket)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Key < results[j].Key })
	return results
}

// WeekKey derives a "YYYY-W%02d" bucket key from an instant, in UTC.
// The week number is ceil((dayOfYear + weekdayOfJan1 + 1) / 7) with Sunday as
// weekday 0. This is not strict ISO-8601 numbering; it is kept as-is because
// downstream trend comparisons depend on the bucketing staying consistent,
// not on calendar-standard week numbers.
func WeekKey(t time.Time) string {
	t = t.UTC()
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	week := int(math.Ceil(float64(t.YearDay()+int(jan1.Weekday())+1) / 7))
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}

// MonthKey derives a "YYYY-MM" bucket key from an instant, in UTC.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
