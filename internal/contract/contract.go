// Package contract provides interfaces and shared utilities for the prpulse CLI's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/prpulse/prpulse/schema"
)

// SourceClient defines the collections the analysis core consumes from the
// source API. This allows the fetch layer to be mocked for testing.
type SourceClient interface {
	// ListPullRequests fetches pull requests for a repository, most recently
	// updated first, honoring the configured fetch ceiling.
	ListPullRequests(ctx context.Context, owner, repo string) ([]schema.PullRequestRecord, error)

	// ListPullCommits fetches the commits on a pull request's head branch,
	// ordered newest first.
	ListPullCommits(ctx context.Context, owner, repo string, number int) ([]schema.CommitRecord, error)

	// ListBranchCommits fetches the commits reachable from a branch, ordered
	// newest first.
	ListBranchCommits(ctx context.Context, owner, repo, branch string) ([]schema.CommitRecord, error)

	// ListReviews fetches the submitted reviews of a pull request.
	ListReviews(ctx context.Context, owner, repo string, number int) ([]schema.ReviewRecord, error)

	// RequestCount returns the number of HTTP requests issued so far.
	RequestCount() int64
}

// ReportWriter serializes an analysis report. Implementations own the output
// format; the core only hands over the enriched records and summaries.
type ReportWriter interface {
	// WriteReport emits the full lead-time report with summary and findings.
	WriteReport(report *schema.AnalysisReport, cfg *Config, duration time.Duration) error

	// WriteContributors emits the per-contributor rollup view.
	WriteContributors(report *schema.AnalysisReport, cfg *Config, duration time.Duration) error

	// WriteTrends emits the weekly and monthly trend view.
	WriteTrends(report *schema.AnalysisReport, cfg *Config, duration time.Duration) error
}

// Clock abstracts wall-clock reads and sleeps so rate-limit waits and retry
// backoff are observable in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the real clock used outside of tests.
type SystemClock struct{}

var _ Clock = SystemClock{} // Compile-time check

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep pauses the calling goroutine.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
