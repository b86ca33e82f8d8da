// Package tools implements the MCP tool handlers for the SpecPulse
// workflow. Each tool is a struct receiving its dependencies, exposing
// a Definition for registration and a Handle compatible with mcp-go's
// CallToolRequest signature. All workflow logic lives in the pulse
// package — these handlers only translate between MCP and it.
package tools

import (
	"fmt"
	"strings"

	"github.com/specpulse/specpulse/internal/pulse"
	"github.com/specpulse/specpulse/internal/workspace"
)

// newService resolves the workspace root and builds a pulse.Service.
// Config is re-read per call so edits to config.toml take effect
// without restarting the server.
func newService() (*pulse.Service, error) {
	root, err := workspace.FindRoot()
	if err != nil {
		return nil, fmt.Errorf("finding workspace root: %w", err)
	}
	return pulse.NewService(root)
}

// renderWarnings formats soft warnings as a markdown block, or returns
// the empty string when there are none.
func renderWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\n## Warnings\n\n")
	for _, w := range warnings {
		fmt.Fprintf(&b, "- %s\n", w)
	}
	return b.String()
}
