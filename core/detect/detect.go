// Package detect has heuristics that flag delivery bottlenecks
// from lead time statistics.
package detect

import (
	"fmt"

	"github.com/prpulse/prpulse/schema"
)

// Thresholds for the built-in rules, expressed against lead time hours.
const (
	// VarianceFactor is how far P90 may exceed the median before the
	// distribution is considered high variance.
	VarianceFactor = 3.0

	// LongLeadHours is one week. A mean beyond it flags slow delivery.
	LongLeadHours = 168.0
)

// Rule evaluates one heuristic against a summary and reports a finding,
// or nil when the heuristic does not apply.
type Rule func(summary schema.StatsSummary) *schema.Bottleneck

// Detect runs the built-in rules plus any extras against the merged
// lead time summary and collects the findings in rule order.
func Detect(summary schema.StatsSummary, extra ...Rule) []schema.Bottleneck {
	rules := append([]Rule{highVariance, longLeadTimes}, extra...)

	var found []schema.Bottleneck
	for _, rule := range rules {
		if b := rule(summary); b != nil {
			found = append(found, *b)
		}
	}
	return found
}

// highVariance fires when the tail of the distribution runs far past
// its center. A zero median never fires, so tiny samples stay quiet.
func highVariance(summary schema.StatsSummary) *schema.Bottleneck {
	if summary.Median <= 0 || summary.P90 <= summary.Median*VarianceFactor {
		return nil
	}
	return &schema.Bottleneck{
		Type: schema.HighVarianceBottleneck,
		Description: fmt.Sprintf(
			"P90 lead time (%.1fh) is more than %.0fx the median (%.1fh)",
			summary.P90, VarianceFactor, summary.Median),
		Impact: "A few pull requests stall far longer than typical ones",
	}
}

// longLeadTimes fires when the average merged pull request takes over
// a week from first commit to merge.
func longLeadTimes(summary schema.StatsSummary) *schema.Bottleneck {
	if summary.Mean <= LongLeadHours {
		return nil
	}
	return &schema.Bottleneck{
		Type: schema.LongLeadTimesBottleneck,
		Description: fmt.Sprintf(
			"Mean lead time (%.1fh) exceeds one week (%.0fh)",
			summary.Mean, LongLeadHours),
		Impact: "Changes sit unmerged long enough to go stale",
	}
}
