// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it resolves the workspace, opens the
// shared memory store, and registers every tool and prompt. No workflow
// logic lives here — only wiring.
package server

import (
	"log"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/specpulse/specpulse/internal/memory"
	"github.com/specpulse/specpulse/internal/prompts"
	"github.com/specpulse/specpulse/internal/tools"
	"github.com/specpulse/specpulse/internal/workspace"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with all tools and prompts registered.
//
// The returned cleanup function closes the memory store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if memory init failed.
func New() (*server.MCPServer, func(), error) {
	s := server.NewMCPServer(
		"specpulse",
		Version,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register workflow tools ---
	//
	// These resolve the workspace per call, so the server can be started
	// before `pulse_init` has ever run.

	initTool := tools.NewInitTool()
	s.AddTool(initTool.Definition(), initTool.Handle)

	featureTool := tools.NewFeatureTool()
	s.AddTool(featureTool.Definition(), featureTool.Handle)

	specTool := tools.NewSpecTool()
	s.AddTool(specTool.Definition(), specTool.Handle)

	planTool := tools.NewPlanTool()
	s.AddTool(planTool.Definition(), planTool.Handle)

	tasksTool := tools.NewTasksTool()
	s.AddTool(tasksTool.Definition(), tasksTool.Handle)

	statusTool := tools.NewStatusTool()
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	validateTool := tools.NewValidateTool()
	s.AddTool(validateTool.Definition(), validateTool.Handle)

	// --- Register the memory tool ---
	//
	// Memory is an independent subsystem: if the store fails to open,
	// the workflow tools keep working and pulse_memory reports the
	// problem per call instead of taking the server down.

	cleanup := noop
	var memStore *memory.Store
	if root, err := workspace.FindRoot(); err == nil {
		memStore, err = memory.Open(filepath.Join(root, workspace.MemoryDir))
		if err != nil {
			log.Printf("WARNING: memory subsystem disabled: %v", err)
			memStore = nil
		} else {
			cleanup = func() {
				if err := memStore.Close(); err != nil {
					log.Printf("WARNING: memory store close: %v", err)
				}
			}
		}
	}

	memoryTool := tools.NewMemoryTool(memStore)
	s.AddTool(memoryTool.Definition(), memoryTool.Handle)

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	return s, cleanup, nil
}

// noop is the default cleanup when the memory store never opened.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use SpecPulse effectively.
func serverInstructions() string {
	return `You have access to SpecPulse, a spec-driven development MCP server.

## WHEN TO ACTIVATE SpecPulse

Proactively suggest SpecPulse when the user:
- Asks to build a new feature or system
- Describes a vague idea and wants to start coding
- Says things like "I want to build...", "let's add...", "can we create..."

You do NOT need it for bug fixes, refactors, questions, or one-line changes.

## CRITICAL: How Tools Work

SpecPulse tools are STORAGE and NUMBERING tools, not AI tools. They
allocate numbered files (spec-001.md, plan-001.md, task-001.md) with
section skeletons — YOU write the actual content into those files.
Numbers are allocated atomically, so parallel agents working in the same
workspace never collide.

NEVER leave [NEEDS CLARIFICATION] placeholders in a finished artifact.
ALWAYS generate real, substantive content from your conversation with the user.

## Workflow

1. INIT — pulse_init once per project (creates specs/, plans/, tasks/, memory/)
2. FEATURE — pulse_feature allocates the feature directory (001-user-auth)
   and, in a git repository, creates a matching branch
3. SPEC — pulse_spec creates the next spec skeleton; fill in Overview,
   User Stories, Functional Requirements, Acceptance Criteria, Edge Cases,
   and Out of Scope
4. VALIDATE — pulse_validate checks every required section is present and
   no placeholders remain; fix what it flags before moving on
5. PLAN — pulse_plan creates the implementation plan linked to the latest spec
6. TASKS — pulse_tasks creates the task breakdown; write tasks as
   "- [ ] T001: description" checkbox lines
7. TRACK — flip markers as you work: [ ] pending, [>] in progress,
   [x] done, [!] blocked. Add [P]/[S] tags for parallel/sequential hints.
   Run pulse_status any time — progress is always recomputed from the files.

## Task Format

Checkbox lines:
- [x] T001: design the schema
- [>] T002: implement the API (depends on: T001)
- [ ] [P] T003: write docs

Or fenced YAML blocks for richer metadata:
` + "```yaml" + `
- id: T004
  title: integration tests
  status: todo
  depends_on: [T002]
` + "```" + `

Both formats can be mixed in one file. Declare dependencies so
pulse_status can flag dangling references.

## Service-Scoped Tasks

For work that belongs to a named service, pass service to pulse_tasks:
service='auth' produces AUTH-T001.md. Configure custom prefixes in
.specpulse/config.toml under [services].

## Memory

Use pulse_memory to record decisions, conventions, and constraints as
you make them (action=add with kind decision/convention/constraint/note).
Search it at the start of a session (action=search or action=recent) so
you inherit prior context instead of rediscovering it.

## Important Rules

- One feature at a time: pulse_feature switches the active context
- Validate before planning; plan before breaking down tasks
- Keep task IDs unique within a feature (T001, T002, ... or AUTH-T001)
- Record every non-obvious decision with pulse_memory`
}
