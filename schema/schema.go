// Package schema has the data model, constants and helpers shared by all parts of prpulse.
package schema

import "time"

// RefPointer identifies one side of a pull request: a branch name plus the
// commit SHA it pointed at when the pull request was fetched.
type RefPointer struct {
	Branch string `json:"branch"`
	SHA    string `json:"sha"`
}

// PullRequestRecord represents a single pull request as fetched from the
// source API. The record itself is immutable after fetch; enrichment attaches
// a LeadTimeMetric without touching the fetched fields.
type PullRequestRecord struct {
	Number     int        `json:"pr_number"`
	Title      string     `json:"title"`
	Author     string     `json:"author"` // login, or author email when no login exists
	Repository string     `json:"repository"`
	State      PullState  `json:"state"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	MergedAt   *time.Time `json:"merge_timestamp,omitempty"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	Head       RefPointer `json:"head"`
	Base       RefPointer `json:"base"`

	// FirstCommitAt is the author timestamp of the oldest commit unique to
	// the head branch, resolved during enrichment. Nil when resolution fails.
	FirstCommitAt *time.Time `json:"first_commit_timestamp,omitempty"`

	// LeadTime is nil when either endpoint of the interval is missing.
	LeadTime *LeadTimeMetric `json:"lead_time,omitempty"`

	// Churn rate across the PR's unique commits, when change stats were
	// available: deleted lines / added lines. Nil otherwise.
	ChurnRate *float64 `json:"churn_rate,omitempty"`

	// ReviewCount is the number of submitted reviews, when reviews were fetched.
	ReviewCount int `json:"review_count"`
}

// CommitRecord represents a single commit. Additions and Deletions are nil
// when the source endpoint does not include change stats.
type CommitRecord struct {
	SHA        string    `json:"sha"`
	Author     string    `json:"author"`
	AuthoredAt time.Time `json:"authored_at"`
	Additions  *int      `json:"additions,omitempty"`
	Deletions  *int      `json:"deletions,omitempty"`
}

// LeadTimeMetric is the elapsed time between two instants in multiple units.
// Hours and Days are rounded to two decimal places. A negative value means
// the inputs were inconsistent; it is preserved, not clamped.
type LeadTimeMetric struct {
	Ms    int64   `json:"ms"`
	Hours float64 `json:"hours"`
	Days  float64 `json:"days"`
}

// ReviewRecord represents a submitted pull request review.
type ReviewRecord struct {
	Reviewer    string     `json:"reviewer"`
	State       string     `json:"state"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// RateLimitState is the quota window reported by the source API. Remaining
// never goes negative; the client clamps it to 0.
type RateLimitState struct {
	Remaining int
	ResetAt   time.Time
}
