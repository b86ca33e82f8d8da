package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/specpulse/specpulse/internal/pulse"
	"github.com/specpulse/specpulse/internal/workspace"
)

// InitTool handles the pulse_init MCP tool.
type InitTool struct{}

// NewInitTool creates an InitTool.
func NewInitTool() *InitTool {
	return &InitTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *InitTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_init",
		mcp.WithDescription(
			"Initialize a SpecPulse workspace in the current project: creates the "+
				"specs/, plans/, tasks/ and memory/ directories, the .specpulse/config.toml, "+
				"and a seed memory note. Safe to run once per project; fails if a workspace "+
				"already exists.",
		),
		mcp.WithString("project_name",
			mcp.Required(),
			mcp.Description("Human-readable project name"),
		),
	)
}

// Handle processes the pulse_init tool call.
func (t *InitTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("project_name", "")
	if name == "" {
		return mcp.NewToolResultError("'project_name' is required"), nil
	}

	root, err := workspace.FindRoot()
	if err != nil {
		return nil, fmt.Errorf("finding workspace root: %w", err)
	}

	if err := pulse.Init(root, name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Workspace Initialized\n\n"+
			"Project **%s** is ready at `%s`.\n\n"+
			"## Next Step\n\n"+
			"Create your first feature with `pulse_feature` — it allocates the next "+
			"feature number, creates the specs/plans/tasks mirrors, and points the "+
			"active-feature context at it.",
		name, root,
	)), nil
}
