package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// PullState represents the lifecycle state of a pull request.
	PullState string

	// BottleneckType identifies a detection rule.
	BottleneckType string

	// BucketKind represents the calendar granularity of a trend bucket.
	BucketKind string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All pull request states supported.
const (
	OpenState   PullState = "open"
	ClosedState PullState = "closed"
	MergedState PullState = "merged"
)

// Bottleneck types emitted by the detector.
const (
	HighVarianceBottleneck  BottleneckType = "high_variance"
	LongLeadTimesBottleneck BottleneckType = "long_lead_times"
)

// Trend bucket granularities.
const (
	WeekBucket  BucketKind = "week"
	MonthBucket BucketKind = "month"
)

// ValidOutputModes is the set of accepted output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// Conversion factors between milliseconds and coarser units.
const (
	MsPerHour = 3_600_000
	MsPerDay  = 86_400_000
)
