// Package prompts implements the MCP prompt handlers for SpecPulse.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the pulse-start MCP prompt.
// It guides the AI through initializing a workspace and creating the
// first feature with its specification.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("pulse-start",
		mcp.WithPromptDescription(
			"Start spec-driven development on this project. "+
				"Initializes the SpecPulse workspace if needed, then walks "+
				"through creating the first feature and its specification.",
		),
		mcp.WithArgument("feature",
			mcp.ArgumentDescription("Name of the first feature to create, e.g. 'user auth'"),
		),
	)
}

// Handle processes the pulse-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	feature := "my first feature"
	if args := req.Params.Arguments; args != nil {
		if f, ok := args["feature"]; ok && f != "" {
			feature = f
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Start SpecPulse work: %s", feature),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to work spec-first on '%s' with SpecPulse.\n\n"+
						"Please:\n"+
						"1. If the workspace is not initialized yet, run `pulse_init` (ask me for the project name)\n"+
						"2. Run `pulse_feature` with name='%s' to allocate the feature directory\n"+
						"3. Run `pulse_spec` to create the specification skeleton, then fill in every section with me — replace all [NEEDS CLARIFICATION] placeholders before moving on\n"+
						"4. Run `pulse_validate` and fix whatever it flags\n"+
						"5. Continue with `pulse_plan` and `pulse_tasks` once the spec is complete\n\n"+
						"Record any decisions we make along the way with `pulse_memory`.",
					feature, feature,
				)),
			},
		},
	}, nil
}
