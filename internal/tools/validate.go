package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ValidateTool handles the pulse_validate MCP tool.
type ValidateTool struct{}

// NewValidateTool creates a ValidateTool.
func NewValidateTool() *ValidateTool {
	return &ValidateTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ValidateTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_validate",
		mcp.WithDescription(
			"Heuristically validate the active feature's artifacts: checks that every "+
				"required section heading is present in each spec, plan, and task file, "+
				"and that no [NEEDS CLARIFICATION] placeholders remain. A section being "+
				"present says nothing about its quality — this catches skipped sections, "+
				"not bad content.",
		),
		mcp.WithString("feature",
			mcp.Description("Feature directory to validate. Defaults to the active feature."),
		),
	)
}

// Handle processes the pulse_validate tool call.
func (t *ValidateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := newService()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := s.Validate(req.GetString("feature", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(report.Artifacts) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Feature **%s** has no artifacts to validate yet.", report.FeatureDir,
		)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Validation: %s\n\n", report.FeatureDir)
	for _, av := range report.Artifacts {
		marker := "PASS"
		if !av.Report.Complete {
			marker = "FAIL"
		}
		fmt.Fprintf(&b, "- **%s** — %s: %s\n", av.Name, marker, av.Report.Summary())
	}

	return mcp.NewToolResultText(b.String()), nil
}
