// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/internal/ghclient"
)

// ClientFactory builds a source client for one tool invocation. It is a
// variable so tests can substitute an in-memory client.
type ClientFactory func(cfg *contract.Config) (contract.SourceClient, error)

// defaultClientFactory builds the real API client.
func defaultClientFactory(cfg *contract.Config) (contract.SourceClient, error) {
	return ghclient.New(cfg), nil
}

// NewMCPServer initializes and configures the PR Pulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, factory ClientFactory) *server.MCPServer {
	s := server.NewMCPServer(
		"PR Pulse Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	if factory == nil {
		factory = defaultClientFactory
	}
	h := &toolHandler{
		baseCfg: baseCfg,
		factory: factory,
	}

	// --- 1. Tool: get_lead_times ---
	s.AddTool(mcp.NewTool("get_lead_times",
		mcp.WithDescription("Analyze pull request history to measure first-commit-to-merge lead times."),
		mcp.WithString("repo", mcp.Description("Repository in 'owner/name' form (defaults to the configured repository)."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Window start (ISO8601, YYYY-MM-DD, or relative like '2 weeks ago').")),
		mcp.WithString("end", mcp.Description("Window end (same formats as start).")),
		mcp.WithNumber("fetch_limit", mcp.Description("Limit the number of pull requests fetched.")),
	), h.handleGetLeadTimes)

	// --- 2. Tool: get_contributor_stats ---
	s.AddTool(mcp.NewTool("get_contributor_stats",
		mcp.WithDescription("Summarize pull request lead times and review counts per contributor."),
		mcp.WithString("repo", mcp.Description("Repository in 'owner/name' form."), mcp.Required()),
		mcp.WithBoolean("reviews", mcp.Description("Also fetch submitted reviews per pull request.")),
		mcp.WithNumber("fetch_limit", mcp.Description("Limit the number of pull requests fetched.")),
	), h.handleGetContributorStats)

	// --- 3. Tool: get_trends ---
	s.AddTool(mcp.NewTool("get_trends",
		mcp.WithDescription("Bucket merged pull request lead times into weekly and monthly trends."),
		mcp.WithString("repo", mcp.Description("Repository in 'owner/name' form."), mcp.Required()),
		mcp.WithString("bucket", mcp.Description("Bucket granularity. Defaults to both."), mcp.Enum("week", "month")),
		mcp.WithNumber("fetch_limit", mcp.Description("Limit the number of pull requests fetched.")),
	), h.handleGetTrends)

	return s
}

// StartMCPServer starts the PR Pulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg, nil)
	return server.ServeStdio(s)
}
