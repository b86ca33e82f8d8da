package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// FeatureTool handles the pulse_feature MCP tool: create a new feature
// or switch the active-feature context to an existing one.
type FeatureTool struct{}

// NewFeatureTool creates a FeatureTool.
func NewFeatureTool() *FeatureTool {
	return &FeatureTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *FeatureTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_feature",
		mcp.WithDescription(
			"Create a new feature or switch to an existing one. Creating allocates the "+
				"next feature number (001, 002, ...), makes the specs/plans/tasks "+
				"directories, updates the active-feature context, and — when the project "+
				"is a git repository — creates a branch named after the feature directory. "+
				"Pass 'switch_to' instead of 'name' to repoint the context at an existing "+
				"feature number.",
		),
		mcp.WithString("name",
			mcp.Description("Feature name to create, e.g. 'User Authentication'. Sanitized to a slug."),
		),
		mcp.WithNumber("switch_to",
			mcp.Description("Existing feature number to switch the active context to"),
		),
		mcp.WithNumber("number",
			mcp.Description("Explicit feature number to claim instead of the next free one"),
		),
	)
}

// Handle processes the pulse_feature tool call.
func (t *FeatureTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := newService()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if switchTo := req.GetInt("switch_to", 0); switchTo > 0 {
		ref, err := s.SwitchFeature(switchTo)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"Active feature is now **%s**.", ref.Dir,
		)), nil
	}

	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required (or pass 'switch_to')"), nil
	}

	res, err := s.CreateFeature(name, req.GetInt("number", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	branchNote := "No git repository detected; branch creation skipped."
	if res.Branched {
		branchNote = fmt.Sprintf("Branch `%s` created and checked out.", res.Ref.Branch)
	} else if res.BranchWarning != "" {
		branchNote = "Branch creation failed: " + res.BranchWarning
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Feature Created: %s\n\n"+
			"Directories created under `specs/`, `plans/`, and `tasks/`.\n\n%s\n\n"+
			"## Next Step\n\n"+
			"Write the specification with `pulse_spec`. It allocates `spec-001.md` "+
			"and fills in the section skeleton for you to complete.",
		res.Ref.Dir, branchNote,
	)), nil
}
