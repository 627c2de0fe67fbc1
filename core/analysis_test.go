package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/internal/ghclient"
	"github.com/prpulse/prpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource is an in-memory SourceClient for orchestration tests.
type stubSource struct {
	pulls         []schema.PullRequestRecord
	pullsErr      error
	pullCommits   map[int][]schema.CommitRecord
	branchCommits map[string][]schema.CommitRecord
	branchErr     map[string]error
	reviews       map[int][]schema.ReviewRecord
	requests      int64
}

var _ contract.SourceClient = (*stubSource)(nil)

func (s *stubSource) ListPullRequests(ctx context.Context, owner, repo string) ([]schema.PullRequestRecord, error) {
	s.requests++
	return s.pulls, s.pullsErr
}

func (s *stubSource) ListPullCommits(ctx context.Context, owner, repo string, number int) ([]schema.CommitRecord, error) {
	s.requests++
	return s.pullCommits[number], nil
}

func (s *stubSource) ListBranchCommits(ctx context.Context, owner, repo, branch string) ([]schema.CommitRecord, error) {
	s.requests++
	if err, ok := s.branchErr[branch]; ok {
		return nil, err
	}
	return s.branchCommits[branch], nil
}

func (s *stubSource) ListReviews(ctx context.Context, owner, repo string, number int) ([]schema.ReviewRecord, error) {
	s.requests++
	return s.reviews[number], nil
}

func (s *stubSource) RequestCount() int64 { return s.requests }

func testAnalysisConfig() *contract.Config {
	return &contract.Config{
		Owner:     "octo",
		Repo:      "widgets",
		PerPage:   100,
		Precision: 2,
	}
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// TestBuildReport walks one merged and one open pull request through the
// whole pipeline and checks the rollups line up.
func TestBuildReport(t *testing.T) {
	source := &stubSource{
		pulls: []schema.PullRequestRecord{
			{
				Number:    42,
				Author:    "octocat",
				State:     schema.MergedState,
				CreatedAt: ts("2024-01-02T00:00:00Z"),
				MergedAt:  ts("2024-01-03T12:00:00Z"),
				Base:      schema.RefPointer{Branch: "main", SHA: "b1"},
			},
			{
				Number:    43,
				Author:    "hubot",
				State:     schema.OpenState,
				CreatedAt: ts("2024-01-04T00:00:00Z"),
			},
		},
		pullCommits: map[int][]schema.CommitRecord{
			42: {
				commitAt("c3", time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)),
				commitAt("c2", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
				commitAt("c1", time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)),
			},
		},
		branchCommits: map[string][]schema.CommitRecord{
			"main": {commitAt("c1", time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC))},
		},
	}

	report, err := BuildReport(context.Background(), testAnalysisConfig(), source)
	require.NoError(t, err)

	assert.Equal(t, "octo/widgets", report.Repository)
	require.Len(t, report.PullRequests, 2)

	merged := report.PullRequests[0]
	require.NotNil(t, merged.FirstCommitAt)
	assert.Equal(t, "2024-01-01T00:00:00Z", merged.FirstCommitAt.Format(time.RFC3339))
	require.NotNil(t, merged.LeadTime)
	assert.InDelta(t, 60.0, merged.LeadTime.Hours, 0.001)
	assert.InDelta(t, 2.5, merged.LeadTime.Days, 0.001)

	// Open PR stays unenriched.
	assert.Nil(t, report.PullRequests[1].LeadTime)

	assert.Equal(t, 1, report.Summary.Count)
	assert.InDelta(t, 60.0, report.Summary.Mean, 0.001)
	require.Len(t, report.Contributors, 2)
	require.Len(t, report.WeeklyTrends, 1)
	require.Len(t, report.MonthlyTrends, 1)
	assert.Equal(t, "2024-01", report.MonthlyTrends[0].Key)
	assert.Equal(t, source.requests, report.RequestCount)
}

// TestBuildReportMissingBaseBranch verifies a deleted base branch degrades
// to an empty comparison set instead of failing the run.
func TestBuildReportMissingBaseBranch(t *testing.T) {
	source := &stubSource{
		pulls: []schema.PullRequestRecord{{
			Number:   7,
			Author:   "octocat",
			State:    schema.MergedState,
			MergedAt: ts("2024-02-01T00:00:00Z"),
			Base:     schema.RefPointer{Branch: "release/old"},
		}},
		pullCommits: map[int][]schema.CommitRecord{
			7: {commitAt("c1", time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC))},
		},
		branchErr: map[string]error{
			"release/old": &ghclient.APIError{Kind: ghclient.ErrKindNotFound, Endpoint: "/commits"},
		},
	}

	report, err := BuildReport(context.Background(), testAnalysisConfig(), source)
	require.NoError(t, err)
	require.NotNil(t, report.PullRequests[0].LeadTime)
	assert.InDelta(t, 48.0, report.PullRequests[0].LeadTime.Hours, 0.001)
}

// TestBuildReportFetchError checks the first fetch failure propagates.
func TestBuildReportFetchError(t *testing.T) {
	source := &stubSource{pullsErr: errors.New("boom")}
	_, err := BuildReport(context.Background(), testAnalysisConfig(), source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch pull requests")
}

// TestBuildReportReviewCounts checks review fetches happen only when asked.
func TestBuildReportReviewCounts(t *testing.T) {
	source := &stubSource{
		pulls: []schema.PullRequestRecord{{
			Number:   9,
			Author:   "octocat",
			State:    schema.MergedState,
			MergedAt: ts("2024-02-01T00:00:00Z"),
			Base:     schema.RefPointer{Branch: "main"},
		}},
		pullCommits: map[int][]schema.CommitRecord{
			9: {commitAt("c1", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))},
		},
		reviews: map[int][]schema.ReviewRecord{
			9: {{Reviewer: "hubot", State: "APPROVED"}, {Reviewer: "mona", State: "COMMENTED"}},
		},
	}

	cfg := testAnalysisConfig()
	cfg.WithReviews = true
	report, err := BuildReport(context.Background(), cfg, source)
	require.NoError(t, err)
	assert.Equal(t, 2, report.PullRequests[0].ReviewCount)
	assert.Equal(t, 2, report.Contributors[0].Reviews)
}

// TestFilterByDateRange checks window anchoring on merge then creation.
func TestFilterByDateRange(t *testing.T) {
	window := schema.DateRange{
		Start: *ts("2024-01-01T00:00:00Z"),
		End:   *ts("2024-02-01T00:00:00Z"),
	}
	records := []schema.PullRequestRecord{
		{Number: 1, MergedAt: ts("2024-01-15T00:00:00Z")},                                        // in by merge
		{Number: 2, MergedAt: ts("2024-03-01T00:00:00Z"), CreatedAt: ts("2024-01-20T00:00:00Z")}, // merge anchor wins
		{Number: 3, CreatedAt: ts("2024-01-20T00:00:00Z")},                                       // in by creation
		{Number: 4, CreatedAt: ts("2023-12-01T00:00:00Z")},                                       // out
		{Number: 5}, // no anchor passes through
	}

	kept := filterByDateRange(records, window)
	numbers := make([]int, 0, len(kept))
	for _, pr := range kept {
		numbers = append(numbers, pr.Number)
	}
	assert.Equal(t, []int{1, 3, 5}, numbers)
}
