package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/specpulse/specpulse/internal/memory"
)

// MemoryTool handles the pulse_memory MCP tool.
type MemoryTool struct {
	store *memory.Store
}

// NewMemoryTool creates a MemoryTool with the given note store.
func NewMemoryTool(store *memory.Store) *MemoryTool {
	return &MemoryTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *MemoryTool) Definition() mcp.Tool {
	return mcp.NewTool("pulse_memory",
		mcp.WithDescription(
			"Record or retrieve project memory. Save decisions, conventions, and "+
				"constraints as you make them so later sessions inherit the context "+
				"instead of rediscovering it. Actions: add, search, recent.",
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("One of: add, search, recent"),
		),
		mcp.WithString("title",
			mcp.Description("Note title (required for add)"),
		),
		mcp.WithString("content",
			mcp.Description("Note body (required for add)"),
		),
		mcp.WithString("kind",
			mcp.Description("Category: decision, convention, constraint, note (default: note)"),
		),
		mcp.WithString("feature",
			mcp.Description("Feature directory the note belongs to, empty for project-wide"),
		),
		mcp.WithString("query",
			mcp.Description("Full-text search query (required for search)"),
		),
	)
}

// Handle processes the pulse_memory tool call.
func (t *MemoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.store == nil {
		return mcp.NewToolResultError("memory store unavailable — was the workspace initialized with `specpulse init`?"), nil
	}

	switch action := req.GetString("action", ""); action {
	case "add":
		return t.add(req)
	case "search":
		return t.search(req)
	case "recent":
		return t.recent()
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown action %q: use add, search, or recent", action)), nil
	}
}

func (t *MemoryTool) add(req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	content := req.GetString("content", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required for add"), nil
	}
	if content == "" {
		return mcp.NewToolResultError("'content' is required for add"), nil
	}

	id, err := t.store.Add(memory.AddParams{
		Feature: req.GetString("feature", ""),
		Kind:    req.GetString("kind", ""),
		Title:   title,
		Content: content,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save note: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Note saved: %q (ID: %d)", title, id)), nil
}

func (t *MemoryTool) search(req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required for search"), nil
	}

	notes, err := t.store.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(notes) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No notes match %q.", query)), nil
	}

	return mcp.NewToolResultText(renderNotes(notes)), nil
}

func (t *MemoryTool) recent() (*mcp.CallToolResult, error) {
	notes, err := t.store.Recent(10)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list notes: %v", err)), nil
	}
	if len(notes) == 0 {
		return mcp.NewToolResultText("No notes recorded yet."), nil
	}

	return mcp.NewToolResultText(renderNotes(notes)), nil
}

func renderNotes(notes []memory.Note) string {
	var b strings.Builder
	for _, n := range notes {
		scope := n.Feature
		if scope == "" {
			scope = "project"
		}
		fmt.Fprintf(&b, "## [%s] %s (%s, %s)\n\n%s\n\n", n.Kind, n.Title, scope, n.CreatedAt, n.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
