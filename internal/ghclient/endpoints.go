package ghclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/prpulse/prpulse/schema"
)

// Wire shapes for the subset of the REST payloads the analysis consumes.

type refWire struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

type userWire struct {
	Login string `json:"login"`
}

type pullRequestWire struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	User      *userWire  `json:"user"`
	CreatedAt *time.Time `json:"created_at"`
	MergedAt  *time.Time `json:"merged_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	Head      refWire    `json:"head"`
	Base      refWire    `json:"base"`
}

type commitWire struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Author *userWire `json:"author"`
	Stats  *struct {
		Additions int `json:"additions"`
		Deletions int `json:"deletions"`
	} `json:"stats"`
}

type reviewWire struct {
	User        *userWire  `json:"user"`
	State       string     `json:"state"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

// ListPullRequests fetches pull requests across all states, most recently
// updated first, honoring the configured fetch ceiling.
func (c *Client) ListPullRequests(ctx context.Context, owner, repo string) ([]schema.PullRequestRecord, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/pulls", owner, repo)
	params := url.Values{}
	params.Set("state", "all")
	params.Set("sort", "updated")
	params.Set("direction", "desc")

	raw, err := c.FetchAll(ctx, endpoint, FetchOptions{
		PerPage:    c.cfg.PerPage,
		FetchLimit: c.cfg.FetchLimit,
		Params:     params,
	})
	if err != nil {
		return nil, err
	}

	records := make([]schema.PullRequestRecord, 0, len(raw))
	for _, item := range raw {
		var wire pullRequestWire
		if err := json.Unmarshal(item, &wire); err != nil {
			return nil, &APIError{Kind: ErrKindMalformed, Endpoint: endpoint, Err: err}
		}
		records = append(records, wire.toRecord(owner+"/"+repo))
	}
	return records, nil
}

// ListPullCommits fetches the commits on a pull request, reordered newest
// first. The REST endpoint returns them oldest first; the resolver contract
// wants newest-first head sequences.
func (c *Client) ListPullCommits(ctx context.Context, owner, repo string, number int) ([]schema.CommitRecord, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/pulls/%d/commits", owner, repo, number)
	commits, err := c.listCommits(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	reverse(commits)
	return commits, nil
}

// ListBranchCommits fetches the commits reachable from a branch. The REST
// endpoint already returns them newest first.
func (c *Client) ListBranchCommits(ctx context.Context, owner, repo, branch string) ([]schema.CommitRecord, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/commits", owner, repo)
	params := url.Values{}
	params.Set("sha", branch)
	return c.listCommits(ctx, endpoint, params)
}

// ListReviews fetches the submitted reviews of a pull request.
func (c *Client) ListReviews(ctx context.Context, owner, repo string, number int) ([]schema.ReviewRecord, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/pulls/%d/reviews", owner, repo, number)
	raw, err := c.FetchAll(ctx, endpoint, FetchOptions{PerPage: c.cfg.PerPage})
	if err != nil {
		return nil, err
	}

	reviews := make([]schema.ReviewRecord, 0, len(raw))
	for _, item := range raw {
		var wire reviewWire
		if err := json.Unmarshal(item, &wire); err != nil {
			return nil, &APIError{Kind: ErrKindMalformed, Endpoint: endpoint, Err: err}
		}
		review := schema.ReviewRecord{State: wire.State, SubmittedAt: wire.SubmittedAt}
		if wire.User != nil {
			review.Reviewer = wire.User.Login
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

// listCommits fetches and decodes a commit collection endpoint.
func (c *Client) listCommits(ctx context.Context, endpoint string, params url.Values) ([]schema.CommitRecord, error) {
	raw, err := c.FetchAll(ctx, endpoint, FetchOptions{PerPage: c.cfg.PerPage, Params: params})
	if err != nil {
		return nil, err
	}

	commits := make([]schema.CommitRecord, 0, len(raw))
	for _, item := range raw {
		var wire commitWire
		if err := json.Unmarshal(item, &wire); err != nil {
			return nil, &APIError{Kind: ErrKindMalformed, Endpoint: endpoint, Err: err}
		}
		commits = append(commits, wire.toRecord())
	}
	return commits, nil
}

// toRecord maps a pull request wire payload to the analysis record. The state
// is derived: a non-nil merge timestamp wins over the raw state string.
func (w pullRequestWire) toRecord(repository string) schema.PullRequestRecord {
	record := schema.PullRequestRecord{
		Number:     w.Number,
		Title:      w.Title,
		Repository: repository,
		CreatedAt:  w.CreatedAt,
		MergedAt:   w.MergedAt,
		ClosedAt:   w.ClosedAt,
		Head:       schema.RefPointer{Branch: w.Head.Ref, SHA: w.Head.SHA},
		Base:       schema.RefPointer{Branch: w.Base.Ref, SHA: w.Base.SHA},
	}
	if w.User != nil {
		record.Author = w.User.Login
	}
	switch {
	case w.MergedAt != nil:
		record.State = schema.MergedState
	case w.State == string(schema.ClosedState):
		record.State = schema.ClosedState
	default:
		record.State = schema.OpenState
	}
	return record
}

// toRecord maps a commit wire payload to the analysis record. The author
// identity is the login when present, otherwise the commit author email.
func (w commitWire) toRecord() schema.CommitRecord {
	record := schema.CommitRecord{
		SHA:        w.SHA,
		Author:     w.Commit.Author.Email,
		AuthoredAt: w.Commit.Author.Date,
	}
	if w.Author != nil && w.Author.Login != "" {
		record.Author = w.Author.Login
	}
	if w.Stats != nil {
		additions, deletions := w.Stats.Additions, w.Stats.Deletions
		record.Additions = &additions
		record.Deletions = &deletions
	}
	return record
}

// reverse flips a commit slice in place.
func reverse(commits []schema.CommitRecord) {
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
}
