package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the pulse-status MCP prompt.
// It instructs the AI to read and present the active feature's state.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("pulse-status",
		mcp.WithPromptDescription(
			"Check where the active feature stands. "+
				"Shows the latest spec and plan, task progress, and "+
				"anything that needs attention.",
		),
	)
}

// Handle processes the pulse-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "SpecPulse Feature Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `pulse_status` for the active feature.\n\n" +
						"Then:\n" +
						"1. Present the task counts and completion percentage clearly\n" +
						"2. Call out any warnings (malformed task files, ambiguous numbering, dangling dependencies) and how to fix them\n" +
						"3. Run `pulse_validate` and summarize anything incomplete\n" +
						"4. Tell me exactly what to work on next",
				),
			},
		},
	}, nil
}
