package mcp_test

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prpulse/prpulse/internal/contract"
	mcp_internal "github.com/prpulse/prpulse/internal/mcp"
	"github.com/prpulse/prpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves one merged pull request for handler tests.
type fakeSource struct{}

var _ contract.SourceClient = fakeSource{}

func (fakeSource) ListPullRequests(ctx context.Context, owner, repo string) ([]schema.PullRequestRecord, error) {
	merged := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	return []schema.PullRequestRecord{{
		Number:     42,
		Title:      "Add retry budget",
		Author:     "octocat",
		Repository: owner + "/" + repo,
		State:      schema.MergedState,
		MergedAt:   &merged,
		Base:       schema.RefPointer{Branch: "main"},
	}}, nil
}

func (fakeSource) ListPullCommits(ctx context.Context, owner, repo string, number int) ([]schema.CommitRecord, error) {
	return []schema.CommitRecord{{
		SHA:        "c1",
		Author:     "octocat",
		AuthoredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}}, nil
}

func (fakeSource) ListBranchCommits(ctx context.Context, owner, repo, branch string) ([]schema.CommitRecord, error) {
	return nil, nil
}

func (fakeSource) ListReviews(ctx context.Context, owner, repo string, number int) ([]schema.ReviewRecord, error) {
	return []schema.ReviewRecord{{Reviewer: "hubot", State: "APPROVED"}}, nil
}

func (fakeSource) RequestCount() int64 { return 3 }

func testServer() (*contract.Config, mcp_internal.ClientFactory) {
	baseCfg := &contract.Config{
		Owner:     "octo",
		Repo:      "widgets",
		PerPage:   100,
		Precision: 2,
	}
	factory := func(cfg *contract.Config) (contract.SourceClient, error) {
		return fakeSource{}, nil
	}
	return baseCfg, factory
}

func TestMCPServerHandlers(t *testing.T) {
	baseCfg, factory := testServer()
	s := mcp_internal.NewMCPServer(baseCfg, factory)
	ctx := context.Background()

	t.Run("get_lead_times invalid repo", func(t *testing.T) {
		tool := s.GetTool("get_lead_times")
		require.NotNil(t, tool, "Tool get_lead_times should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_lead_times",
				Arguments: map[string]any{"repo": "not-a-repo"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "owner/name")
	})

	t.Run("get_lead_times invalid start", func(t *testing.T) {
		tool := s.GetTool("get_lead_times")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_lead_times",
				Arguments: map[string]any{
					"repo":  "octo/widgets",
					"start": "not a date",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid start")
	})

	t.Run("get_lead_times success", func(t *testing.T) {
		tool := s.GetTool("get_lead_times")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_lead_times",
				Arguments: map[string]any{"repo": "octo/widgets"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"pr_number": 42`)
		assert.Contains(t, text, "summary")
	})

	t.Run("get_contributor_stats success", func(t *testing.T) {
		tool := s.GetTool("get_contributor_stats")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_contributor_stats",
				Arguments: map[string]any{
					"repo":    "octo/widgets",
					"reviews": true,
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "octocat")
		assert.Contains(t, text, `"reviews": 1`)
	})

	t.Run("get_trends week only", func(t *testing.T) {
		tool := s.GetTool("get_trends")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_trends",
				Arguments: map[string]any{
					"repo":   "octo/widgets",
					"bucket": "week",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, "weekly")
		assert.NotContains(t, text, "monthly")
	})
}
