package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// SpecTool handles the pulse_spec MCP tool.
type SpecTool struct{}

// NewSpecTool creates a SpecTool.
func NewSpecTool() *SpecTool {
	return &SpecTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *SpecTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_spec",
		mcp.WithDescription(
			"Create the next numbered specification file (spec-001.md, spec-002.md, ...) "+
				"for the active feature and fill in its section skeleton. The AI then "+
				"completes the Overview, User Stories, Functional Requirements, Acceptance "+
				"Criteria, Edge Cases, and Out of Scope sections with real content, "+
				"replacing every [NEEDS CLARIFICATION] placeholder.",
		),
		mcp.WithString("feature",
			mcp.Description("Feature directory to target, e.g. '007-user-auth'. Defaults to the active feature."),
		),
		mcp.WithNumber("number",
			mcp.Description("Explicit spec number to claim instead of the next free one"),
		),
	)
}

// Handle processes the pulse_spec tool call.
func (t *SpecTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := newService()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.CreateSpec(req.GetString("feature", ""), req.GetInt("number", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Specification Created\n\n"+
			"`%s` written for feature **%s**.\n\n"+
			"## Next Step\n\n"+
			"Fill in every section, then run `pulse_validate` to confirm nothing is "+
			"missing before moving on to `pulse_plan`.",
		res.Name, res.FeatureDir,
	)), nil
}
