package templates

import (
	"strings"
	"testing"
)

func TestNewRenderer_Succeeds(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}
	if r == nil {
		t.Fatal("NewRenderer() returned nil")
	}
}

func TestRender_Spec(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	out, err := r.Render(Spec, SpecData{
		FeatureName: "User Auth",
		FeatureDir:  "007-user-auth",
		SpecID:      "spec-001",
		Date:        "2026-08-26",
	})
	if err != nil {
		t.Fatalf("Render(Spec): %v", err)
	}

	checks := []string{
		"# Specification: User Auth",
		"**ID**: spec-001",
		"007-user-auth",
		"## Overview",
		"## User Stories",
		"## Functional Requirements",
		"## Acceptance Criteria",
		"## Edge Cases",
		"## Out of Scope",
	}
	for _, check := range checks {
		if !strings.Contains(out, check) {
			t.Errorf("spec output missing %q", check)
		}
	}
}

func TestRender_Plan(t *testing.T) {
	r, _ := NewRenderer()
	out, err := r.Render(Plan, PlanData{
		FeatureName: "Search",
		FeatureDir:  "003-search",
		PlanID:      "plan-001",
		SpecRef:     "spec-001.md",
		Date:        "2026-08-26",
	})
	if err != nil {
		t.Fatalf("Render(Plan): %v", err)
	}
	for _, check := range []string{"# Implementation Plan: Search", "**Implements**: spec-001.md", "## Architecture", "## Implementation Phases"} {
		if !strings.Contains(out, check) {
			t.Errorf("plan output missing %q", check)
		}
	}
}

func TestRender_TaskListParsesAsTasks(t *testing.T) {
	r, _ := NewRenderer()
	out, err := r.Render(TaskList, TaskListData{
		FeatureName: "Search",
		FeatureDir:  "003-search",
		TaskID:      "task-001",
		PlanRef:     "plan-001.md",
		Date:        "2026-08-26",
	})
	if err != nil {
		t.Fatalf("Render(TaskList): %v", err)
	}
	// The generated skeleton must itself be parseable by the progress
	// scanner: one pending starter task.
	if !strings.Contains(out, "- [ ] T001") {
		t.Errorf("task skeleton has no starter task:\n%s", out)
	}
}

func TestRender_Memory(t *testing.T) {
	r, _ := NewRenderer()
	out, err := r.Render(Memory, MemoryData{ProjectName: "demo", Date: "2026-08-26"})
	if err != nil {
		t.Fatalf("Render(Memory): %v", err)
	}
	if !strings.Contains(out, "# Project Memory: demo") {
		t.Error("memory seed missing title")
	}
}

func TestRender_UnknownKind(t *testing.T) {
	r, _ := NewRenderer()
	if _, err := r.Render(Kind("nope"), nil); err == nil {
		t.Error("unknown kind did not error")
	}
}
