package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// TasksTool handles the pulse_tasks MCP tool.
type TasksTool struct{}

// NewTasksTool creates a TasksTool.
func NewTasksTool() *TasksTool {
	return &TasksTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *TasksTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_tasks",
		mcp.WithDescription(
			"Create the next numbered task breakdown (task-001.md, ...) for the active "+
				"feature, linked to the latest plan. Tasks use checkbox status markers: "+
				"[ ] pending, [>] in progress, [x] done, [!] blocked — plus [P]/[S] tags "+
				"for parallel/sequential hints. Service-scoped task files (AUTH-T001.md) "+
				"can be created by passing 'service'.",
		),
		mcp.WithString("feature",
			mcp.Description("Feature directory to target. Defaults to the active feature."),
		),
		mcp.WithString("service",
			mcp.Description("Service code for a service-scoped task file, e.g. 'auth' produces AUTH-T001.md"),
		),
		mcp.WithNumber("number",
			mcp.Description("Explicit task number to claim instead of the next free one"),
		),
	)
}

// Handle processes the pulse_tasks tool call.
func (t *TasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := newService()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	feature := req.GetString("feature", "")
	number := req.GetInt("number", 0)

	var name, featureDir string
	if service := req.GetString("service", ""); service != "" {
		res, err := s.CreateServiceTask(feature, service, number)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		name, featureDir = res.Name, res.FeatureDir
	} else {
		res, err := s.CreateTasks(feature, number)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		name, featureDir = res.Name, res.FeatureDir
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# Task Breakdown Created\n\n"+
			"`%s` written for feature **%s**.\n\n"+
			"## Next Step\n\n"+
			"List the implementation tasks as `- [ ] T00N: description` lines, then "+
			"track progress with `pulse_status` as you flip markers to [>] and [x].",
		name, featureDir,
	)), nil
}
