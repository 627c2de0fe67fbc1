package core

import (
	"context"
	"fmt"

	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/internal/ghclient"
	"github.com/prpulse/prpulse/schema"
)

// FirstUniqueCommit returns the oldest head-branch commit that is not
// reachable from the base branch, or nil when every head commit is shared.
// head is ordered newest first, so the oldest unique commit is the last
// unique one encountered.
func FirstUniqueCommit(head, base []schema.CommitRecord) *schema.CommitRecord {
	baseSHAs := make(map[string]struct{}, len(base))
	for _, c := range base {
		baseSHAs[c.SHA] = struct{}{}
	}

	var oldest *schema.CommitRecord
	for i := range head {
		if _, shared := baseSHAs[head[i].SHA]; !shared {
			oldest = &head[i]
		}
	}
	return oldest
}

// uniqueCommits filters head commits down to the ones absent from base,
// preserving the newest-first order.
func uniqueCommits(head, base []schema.CommitRecord) []schema.CommitRecord {
	baseSHAs := make(map[string]struct{}, len(base))
	for _, c := range base {
		baseSHAs[c.SHA] = struct{}{}
	}

	var unique []schema.CommitRecord
	for _, c := range head {
		if _, shared := baseSHAs[c.SHA]; !shared {
			unique = append(unique, c)
		}
	}
	return unique
}

// enrichRecord resolves the first unique commit of one merged pull request
// and derives its lead time, churn rate, and optionally its review count.
// A missing base branch downgrades to a warning and leaves the lead-time
// metric unset rather than failing the whole run.
func enrichRecord(ctx context.Context, cfg *contract.Config, client contract.SourceClient, pr *schema.PullRequestRecord) error {
	headCommits, err := client.ListPullCommits(ctx, cfg.Owner, cfg.Repo, pr.Number)
	if err != nil {
		return fmt.Errorf("fetch commits for #%d: %w", pr.Number, err)
	}

	baseCommits, err := client.ListBranchCommits(ctx, cfg.Owner, cfg.Repo, pr.Base.Branch)
	if err != nil {
		if ghclient.IsKind(err, ghclient.ErrKindNotFound) {
			// Base branch deleted since the merge. Compare against nothing
			// so every head commit counts as unique.
			contract.LogWarn(fmt.Sprintf("Base branch %q missing for #%d", pr.Base.Branch, pr.Number), err)
			baseCommits = nil
		} else {
			return fmt.Errorf("fetch base branch %q for #%d: %w", pr.Base.Branch, pr.Number, err)
		}
	}

	if first := FirstUniqueCommit(headCommits, baseCommits); first != nil {
		at := first.AuthoredAt
		pr.FirstCommitAt = &at
	}
	pr.LeadTime = schema.NewLeadTimeMetric(pr.FirstCommitAt, pr.MergedAt)
	pr.ChurnRate = schema.ChurnRate(uniqueCommits(headCommits, baseCommits))

	if cfg.WithReviews {
		reviews, err := client.ListReviews(ctx, cfg.Owner, cfg.Repo, pr.Number)
		if err != nil {
			return fmt.Errorf("fetch reviews for #%d: %w", pr.Number, err)
		}
		pr.ReviewCount = len(reviews)
	}
	return nil
}
