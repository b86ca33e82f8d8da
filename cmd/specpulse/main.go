// SpecPulse: spec-driven development for AI-assisted projects.
//
// One binary serves two surfaces over the same workflow engine: a CLI
// for humans and an MCP server (stdio transport) for AI coding tools.
// Both allocate the same numbered artifacts, so a human and an agent
// working in the same repository never hand out the same number twice.
//
// Usage:
//
//	specpulse init <name>       # Initialize a workspace
//	specpulse feature <name>    # Create a feature (001-<slug>)
//	specpulse spec              # Create the next spec-NNN.md
//	specpulse plan              # Create the next plan-NNN.md
//	specpulse task              # Create the next task-NNN.md
//	specpulse status            # Progress for the active feature
//	specpulse validate          # Section checks for the active feature
//	specpulse memory <action>   # Project memory (add, search, recent)
//	specpulse serve             # Start the MCP server
//	specpulse update            # Self-update to the latest release
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/specpulse/specpulse/internal/server"
	"github.com/specpulse/specpulse/internal/updater"
)

// logger writes diagnostics to stderr so `serve` keeps stdout clean for
// the MCP stdio transport.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "specpulse",
})

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "init":
		err = runInit(args)
	case "feature":
		err = runFeature(args)
	case "spec":
		err = runSpec(args)
	case "plan":
		err = runPlan(args)
	case "task", "tasks":
		err = runTask(args)
	case "status":
		err = runStatus(args)
	case "validate":
		err = runValidate(args)
	case "memory":
		err = runMemory(args)
	case "serve":
		err = runServe()
	case "update":
		err = runUpdate()
	case "version", "--version", "-v":
		fmt.Printf("specpulse v%s\n", server.Version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// runServe starts the MCP server on stdio. A background version check
// prints to stderr so it never corrupts the transport.
func runServe() error {
	s, cleanup, err := server.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	go checkForUpdates()

	return mcpserver.ServeStdio(s)
}

// checkForUpdates is best-effort: network failures are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(server.Version)
	if result.UpdateAvailable {
		logger.Info("update available",
			"current", result.CurrentVersion,
			"latest", result.LatestVersion,
			"run", "specpulse update")
	}
}

func runUpdate() error {
	logger.Info("checking for updates")

	result := updater.CheckVersion(server.Version)
	if !result.UpdateAvailable {
		logger.Info("already at the latest version", "version", result.CurrentVersion)
		return nil
	}

	logger.Info("downloading", "current", result.CurrentVersion, "latest", result.LatestVersion)
	if err := updater.SelfUpdate(server.Version); err != nil {
		return fmt.Errorf("update failed (download manually from %s): %w", result.ReleaseURL, err)
	}

	logger.Info("updated — restart specpulse to use the new version", "version", result.LatestVersion)
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `SpecPulse v%s — spec-driven development for AI-assisted projects

Usage:
  specpulse init <name>           Initialize a workspace in the current directory
  specpulse feature <name>        Create a feature directory (001-<slug>) and branch
  specpulse feature -switch N     Point the active-feature context at feature N
  specpulse spec                  Create the next spec-NNN.md for the active feature
  specpulse plan                  Create the next plan-NNN.md, linked to the latest spec
  specpulse task                  Create the next task-NNN.md, linked to the latest plan
  specpulse task -service auth    Create a service-scoped task file (AUTH-T001.md)
  specpulse status                Show progress for the active feature
  specpulse validate              Check artifact sections and placeholders
  specpulse memory add|search|recent   Record or retrieve project memory
  specpulse serve                 Start the MCP server (stdio transport)
  specpulse update                Self-update to the latest release
  specpulse version               Print the version

Common flags (spec, plan, task, status, validate):
  -feature DIR   Target a feature other than the active one
  -number N      Claim an explicit artifact number

MCP configuration:

  {
    "mcpServers": {
      "specpulse": {
        "command": "specpulse",
        "args": ["serve"]
      }
    }
  }
`, server.Version)
}
