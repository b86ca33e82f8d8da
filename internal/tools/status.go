package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusTool handles the pulse_status MCP tool.
type StatusTool struct{}

// NewStatusTool creates a StatusTool.
func NewStatusTool() *StatusTool {
	return &StatusTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_status",
		mcp.WithDescription(
			"Report progress for the active feature: latest spec and plan, task counts "+
				"per status, and completion percentage. Always recomputed from the files "+
				"on disk — there is no cached state to go stale. Malformed task files are "+
				"reported as warnings, never hidden.",
		),
		mcp.WithString("feature",
			mcp.Description("Feature directory to report on. Defaults to the active feature."),
		),
	)
}

// Handle processes the pulse_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := newService()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := s.Status(req.GetString("feature", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	latestSpec := report.LatestSpec
	if latestSpec == "" {
		latestSpec = "(none)"
	}
	latestPlan := report.LatestPlan
	if latestPlan == "" {
		latestPlan = "(none)"
	}

	snap := report.Snapshot
	body := fmt.Sprintf(
		"# Status: %s\n\n"+
			"- Latest spec: %s\n"+
			"- Latest plan: %s\n\n"+
			"## Tasks\n\n"+
			"| Total | Done | In Progress | Blocked | Pending |\n"+
			"|------:|-----:|------------:|--------:|--------:|\n"+
			"| %d | %d | %d | %d | %d |\n\n"+
			"**%.1f%% complete**",
		report.FeatureDir, latestSpec, latestPlan,
		snap.Total, snap.Completed, snap.InProgress, snap.Blocked, snap.Pending,
		snap.Percentage,
	)

	return mcp.NewToolResultText(body + renderWarnings(report.Warnings)), nil
}
