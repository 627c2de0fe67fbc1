package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prpulse/prpulse/core"
	"github.com/prpulse/prpulse/internal/contract"
	"github.com/prpulse/prpulse/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	factory ClientFactory
}

// configForRequest clones the base config and applies shared request params.
func (h *toolHandler) configForRequest(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if repo := request.GetString("repo", ""); repo != "" {
		if err := cfg.SetRepository(repo); err != nil {
			return nil, err
		}
	}
	if limit := request.GetInt("fetch_limit", 0); limit > 0 {
		cfg.FetchLimit = limit
	}
	return cfg, nil
}

// buildReport runs the analysis pipeline for one tool invocation.
func (h *toolHandler) buildReport(ctx context.Context, cfg *contract.Config) (*schema.AnalysisReport, error) {
	client, err := h.factory(cfg)
	if err != nil {
		return nil, err
	}
	return core.BuildReport(ctx, cfg, client)
}

func (h *toolHandler) handleGetLeadTimes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	now := time.Now()
	if start := request.GetString("start", ""); start != "" {
		t, err := contract.ParseTimeInput(start, now)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start: %v", err)), nil
		}
		cfg.DateRange.Start = t
	}
	if end := request.GetString("end", ""); end != "" {
		t, err := contract.ParseTimeInput(end, now)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end: %v", err)), nil
		}
		cfg.DateRange.End = t
	}

	report, err := h.buildReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(map[string]any{
		"repository":    report.Repository,
		"summary":       report.Summary,
		"bottlenecks":   report.Bottlenecks,
		"pull_requests": report.PullRequests,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetContributorStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	cfg.WithReviews = request.GetBool("reviews", cfg.WithReviews)

	report, err := h.buildReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(map[string]any{
		"repository":   report.Repository,
		"contributors": report.Contributors,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configForRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := h.buildReport(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	payload := map[string]any{"repository": report.Repository}
	switch schema.BucketKind(request.GetString("bucket", "")) {
	case schema.WeekBucket:
		payload["weekly"] = report.WeeklyTrends
	case schema.MonthBucket:
		payload["monthly"] = report.MonthlyTrends
	default:
		payload["weekly"] = report.WeeklyTrends
		payload["monthly"] = report.MonthlyTrends
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
