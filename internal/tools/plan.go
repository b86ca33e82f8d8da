package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// PlanTool handles the pulse_plan MCP tool.
type PlanTool struct{}

// NewPlanTool creates a PlanTool.
func NewPlanTool() *PlanTool {
	return &PlanTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *PlanTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_plan",
		mcp.WithDescription(
			"Create the next numbered implementation plan (plan-001.md, ...) for the "+
				"active feature, linked to the latest specification. The AI completes the "+
				"Architecture, Technology Stack, Implementation Phases, Testing Strategy, "+
				"and Risks sections based on that spec.",
		),
		mcp.WithString("feature",
			mcp.Description("Feature directory to target. Defaults to the active feature."),
		),
		mcp.WithNumber("number",
			mcp.Description("Explicit plan number to claim instead of the next free one"),
		),
	)
}

// Handle processes the pulse_plan tool call.
func (t *PlanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := newService()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.CreatePlan(req.GetString("feature", ""), req.GetInt("number", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Plan Created\n\n"+
			"`%s` written for feature **%s**.\n\n"+
			"## Next Step\n\n"+
			"Break the plan into tasks with `pulse_tasks`.",
		res.Name, res.FeatureDir,
	)), nil
}
