// Package stats has pure numeric summary functions over metric sequences.
package stats

import (
	"math"
	"sort"

	"github.com/prpulse/prpulse/schema"
)

// Summarize computes the summary statistics of a value sequence. An empty
// input yields the zero summary; it never panics. All derived fields except
// Count, Min and Max are rounded to two decimal places.
func Summarize(values []float64) schema.StatsSummary {
	if len(values) == 0 {
		return schema.StatsSummary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}

	return schema.StatsSummary{
		Count:  len(sorted),
		Sum:    schema.Round2(sum),
		Mean:   schema.Round2(sum / float64(len(sorted))),
		Median: schema.Round2(medianOfSorted(sorted)),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P75:    schema.Round2(PercentileOfSorted(sorted, 75)),
		P90:    schema.Round2(PercentileOfSorted(sorted, 90)),
		P95:    schema.Round2(PercentileOfSorted(sorted, 95)),
	}
}

// Mean returns the arithmetic mean, or 0 for an empty sequence.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value of a sequence, averaging the middle pair
// when the count is even. It returns 0 for an empty sequence.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return medianOfSorted(sorted)
}

// Variance returns the population variance, or 0 for an empty sequence.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}

// PercentileOfSorted returns the nearest-rank percentile of an ascending
// sequence: the element at zero-based index floor(count * pct / 100), with no
// interpolation. This exact indexing rule is the contract; trend comparisons
// downstream depend on it staying put.
func PercentileOfSorted(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Floor(float64(len(sorted)) * pct / 100))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// medianOfSorted assumes a non-empty ascending sequence.
func medianOfSorted(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
