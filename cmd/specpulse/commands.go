package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specpulse/specpulse/internal/memory"
	"github.com/specpulse/specpulse/internal/pulse"
	"github.com/specpulse/specpulse/internal/workspace"
)

// newService resolves the workspace root and builds the workflow service.
func newService() (*pulse.Service, error) {
	root, err := workspace.FindRoot()
	if err != nil {
		return nil, fmt.Errorf("finding workspace root: %w", err)
	}
	return pulse.NewService(root)
}

func runInit(args []string) error {
	if len(args) < 1 || args[0] == "" {
		return fmt.Errorf("usage: specpulse init <name>")
	}
	name := strings.Join(args, " ")

	root, err := workspace.FindRoot()
	if err != nil {
		return fmt.Errorf("finding workspace root: %w", err)
	}
	if err := pulse.Init(root, name); err != nil {
		return err
	}

	logger.Info("workspace initialized", "project", name, "root", root)
	fmt.Println("Next: specpulse feature <name>")
	return nil
}

func runFeature(args []string) error {
	fs := flag.NewFlagSet("feature", flag.ExitOnError)
	switchTo := fs.Int("switch", 0, "switch the active context to an existing feature number")
	number := fs.Int("number", 0, "explicit feature number to claim")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := newService()
	if err != nil {
		return err
	}

	if *switchTo > 0 {
		ref, err := s.SwitchFeature(*switchTo)
		if err != nil {
			return err
		}
		logger.Info("active feature switched", "feature", ref.Dir)
		return nil
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: specpulse feature <name> [-number N]")
	}
	name := strings.Join(fs.Args(), " ")

	res, err := s.CreateFeature(name, *number)
	if err != nil {
		return err
	}

	logger.Info("feature created", "dir", res.Ref.Dir)
	switch {
	case res.Branched:
		logger.Info("branch created", "branch", res.Ref.Branch)
	case res.BranchWarning != "":
		logger.Warn("branch creation failed", "reason", res.BranchWarning)
	}

	fmt.Println("Next: specpulse spec")
	return nil
}

func runSpec(args []string) error {
	return runArtifact("spec", args, func(s *pulse.Service, feature string, number int) (*pulse.ArtifactResult, error) {
		return s.CreateSpec(feature, number)
	})
}

func runPlan(args []string) error {
	return runArtifact("plan", args, func(s *pulse.Service, feature string, number int) (*pulse.ArtifactResult, error) {
		return s.CreatePlan(feature, number)
	})
}

func runTask(args []string) error {
	fs := flag.NewFlagSet("task", flag.ExitOnError)
	feature := fs.String("feature", "", "feature directory to target")
	number := fs.Int("number", 0, "explicit task number to claim")
	service := fs.String("service", "", "service code for a service-scoped task file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := newService()
	if err != nil {
		return err
	}

	var res *pulse.ArtifactResult
	if *service != "" {
		res, err = s.CreateServiceTask(*feature, *service, *number)
	} else {
		res, err = s.CreateTasks(*feature, *number)
	}
	if err != nil {
		return err
	}

	logger.Info("task breakdown created", "file", res.Name, "feature", res.FeatureDir)
	fmt.Println(res.Path)
	return nil
}

// runArtifact is the shared skeleton for spec and plan creation.
func runArtifact(kind string, args []string, create func(*pulse.Service, string, int) (*pulse.ArtifactResult, error)) error {
	fs := flag.NewFlagSet(kind, flag.ExitOnError)
	feature := fs.String("feature", "", "feature directory to target")
	number := fs.Int("number", 0, "explicit artifact number to claim")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := newService()
	if err != nil {
		return err
	}

	res, err := create(s, *feature, *number)
	if err != nil {
		return err
	}

	logger.Info(kind+" created", "file", res.Name, "feature", res.FeatureDir)
	fmt.Println(res.Path)
	return nil
}

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	feature := fs.String("feature", "", "feature directory to report on")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := newService()
	if err != nil {
		return err
	}

	report, err := s.Status(*feature)
	if err != nil {
		return err
	}

	latest := func(name string) string {
		if name == "" {
			return "(none)"
		}
		return name
	}

	snap := report.Snapshot
	fmt.Printf("Feature:     %s\n", report.FeatureDir)
	fmt.Printf("Latest spec: %s\n", latest(report.LatestSpec))
	fmt.Printf("Latest plan: %s\n", latest(report.LatestPlan))
	fmt.Printf("Tasks:       %d total — %d done, %d in progress, %d blocked, %d pending\n",
		snap.Total, snap.Completed, snap.InProgress, snap.Blocked, snap.Pending)
	fmt.Printf("Progress:    %.1f%%\n", snap.Percentage)

	for _, w := range report.Warnings {
		logger.Warn(w)
	}
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	feature := fs.String("feature", "", "feature directory to validate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := newService()
	if err != nil {
		return err
	}

	report, err := s.Validate(*feature)
	if err != nil {
		return err
	}

	if len(report.Artifacts) == 0 {
		fmt.Printf("Feature %s has no artifacts to validate yet.\n", report.FeatureDir)
		return nil
	}

	failed := 0
	for _, av := range report.Artifacts {
		marker := "PASS"
		if !av.Report.Complete {
			marker = "FAIL"
			failed++
		}
		fmt.Printf("%-4s %s — %s\n", marker, av.Name, av.Report.Summary())
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d artifacts incomplete", failed, len(report.Artifacts))
	}
	return nil
}

func runMemory(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: specpulse memory add|search|recent")
	}
	action, rest := args[0], args[1:]

	root, err := workspace.FindRoot()
	if err != nil {
		return fmt.Errorf("finding workspace root: %w", err)
	}
	store, err := memory.Open(filepath.Join(root, workspace.MemoryDir))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	switch action {
	case "add":
		return memoryAdd(store, rest)
	case "search":
		if len(rest) < 1 {
			return fmt.Errorf("usage: specpulse memory search <query>")
		}
		notes, err := store.Search(strings.Join(rest, " "), 20)
		if err != nil {
			return err
		}
		printNotes(notes)
		return nil
	case "recent":
		notes, err := store.Recent(10)
		if err != nil {
			return err
		}
		printNotes(notes)
		return nil
	default:
		return fmt.Errorf("unknown memory action %q: use add, search, or recent", action)
	}
}

func memoryAdd(store *memory.Store, args []string) error {
	fs := flag.NewFlagSet("memory add", flag.ExitOnError)
	kind := fs.String("kind", "", "decision, convention, constraint, or note")
	feature := fs.String("feature", "", "feature directory the note belongs to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: specpulse memory add [-kind K] [-feature DIR] <title> <content>")
	}

	id, err := store.Add(memory.AddParams{
		Feature: *feature,
		Kind:    *kind,
		Title:   fs.Arg(0),
		Content: strings.Join(fs.Args()[1:], " "),
	})
	if err != nil {
		return err
	}

	logger.Info("note saved", "id", id, "title", fs.Arg(0))
	return nil
}

func printNotes(notes []memory.Note) {
	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return
	}
	for _, n := range notes {
		scope := n.Feature
		if scope == "" {
			scope = "project"
		}
		fmt.Printf("[%s] %s (%s, %s)\n    %s\n", n.Kind, n.Title, scope, n.CreatedAt, n.Content)
	}
}
