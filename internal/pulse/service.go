// Package pulse implements the workflow operations behind every
// SpecPulse entry point. The CLI commands and the MCP tools are both
// thin wrappers over this package, so the two surfaces can never drift
// apart the way the original shell-per-platform scripts did.
package pulse

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/specpulse/specpulse/internal/artifact"
	"github.com/specpulse/specpulse/internal/gitops"
	"github.com/specpulse/specpulse/internal/templates"
	"github.com/specpulse/specpulse/internal/workspace"
)

// timeNow is swappable in tests.
var timeNow = time.Now

// Service bundles the resolved workspace root with its config and the
// template renderer. Resolve once, pass everywhere.
type Service struct {
	Root     string
	Config   *workspace.Config
	Renderer templates.Renderer
}

// NewService loads the workspace at root. The workspace must already be
// initialized.
func NewService(root string) (*Service, error) {
	cfg, err := workspace.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("creating template renderer: %w", err)
	}
	return &Service{Root: root, Config: cfg, Renderer: renderer}, nil
}

// Init scaffolds a new workspace at root: directory tree, default
// config, and the memory seed note. Re-running on an initialized
// workspace fails rather than clobbering config.
func Init(root, name string) error {
	if workspace.IsInitialized(root) {
		return fmt.Errorf("workspace already initialized at %s", root)
	}

	if err := workspace.Scaffold(root); err != nil {
		return err
	}
	if err := workspace.SaveConfig(root, workspace.DefaultConfig(name)); err != nil {
		return err
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return fmt.Errorf("creating template renderer: %w", err)
	}
	seed, err := renderer.Render(templates.Memory, templates.MemoryData{
		ProjectName: name,
		Date:        timeNow().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return err
	}

	seedPath := filepath.Join(root, workspace.MemoryDir, "context.md")
	if err := os.WriteFile(seedPath, []byte(seed), 0o644); err != nil {
		return fmt.Errorf("writing memory seed: %w", err)
	}
	return nil
}

// FeatureResult reports a created feature.
type FeatureResult struct {
	Ref      workspace.FeatureRef
	Branched bool
	// BranchWarning carries a soft git failure; the feature itself was
	// still created.
	BranchWarning string
}

// CreateFeature allocates the next feature number, creates the three
// per-feature directories, points the context at it, and optionally
// creates a git branch named after the directory.
func (s *Service) CreateFeature(name string, explicit int) (*FeatureResult, error) {
	slug, err := artifact.SanitizeName(name)
	if err != nil {
		return nil, err
	}

	res, err := artifact.Allocate(artifact.AllocateParams{
		Kind:     artifact.KindFeature,
		Root:     workspace.FeatureRoot(s.Root),
		Width:    s.Config.NumberWidth(),
		Suffix:   "-" + slug,
		Explicit: explicit,
	})
	if err != nil {
		return nil, err
	}

	// The specs/ directory is the reservation; plans/ and tasks/ mirror
	// it without contending for the number.
	_, plans, tasks := workspace.FeaturePaths(s.Root, res.Name)
	for _, dir := range []string{plans, tasks} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	ref := workspace.FeatureRef{
		ID:   res.ID.String(),
		Slug: slug,
		Dir:  res.Name,
	}

	out := &FeatureResult{Ref: ref}
	if s.Config.Git.AutoBranch && gitops.IsRepo(s.Root) {
		if err := gitops.CreateBranch(s.Root, res.Name); err != nil {
			out.BranchWarning = err.Error()
		} else {
			out.Branched = true
			ref.Branch = res.Name
			out.Ref = ref
		}
	}

	if err := workspace.SwitchFeature(s.Root, out.Ref); err != nil {
		return nil, err
	}
	return out, nil
}

// SwitchFeature repoints the context at an existing feature directory,
// matched by number.
func (s *Service) SwitchFeature(number int) (*workspace.FeatureRef, error) {
	for _, e := range artifact.Scan(workspace.FeatureRoot(s.Root), "") {
		if e.Number != number {
			continue
		}
		ref := workspace.FeatureRef{
			ID:   artifact.Format("", e.Number, s.Config.NumberWidth()),
			Slug: featureSlug(e.Name),
			Dir:  e.Name,
		}
		if err := workspace.SwitchFeature(s.Root, ref); err != nil {
			return nil, err
		}
		return &ref, nil
	}
	return nil, fmt.Errorf("no feature with number %d under %s", number, workspace.FeatureRoot(s.Root))
}

// featureSlug strips the numeric prefix from a feature directory name:
// "007-user-auth" -> "user-auth".
func featureSlug(dir string) string {
	for i := 0; i < len(dir); i++ {
		if dir[i] == '-' {
			return dir[i+1:]
		}
	}
	return dir
}

// activeFeature resolves the feature a command operates on: an explicit
// directory wins, otherwise the context pointer.
func (s *Service) activeFeature(featureDir string) (string, error) {
	if featureDir != "" {
		return featureDir, nil
	}
	ctx, err := workspace.LoadContext(s.Root)
	if err != nil {
		return "", err
	}
	if ctx.ActiveFeature == nil {
		return "", fmt.Errorf("no active feature — create one with `specpulse feature <name>` or pass --feature")
	}
	return ctx.ActiveFeature.Dir, nil
}

// ArtifactResult reports a created spec/plan/task artifact.
type ArtifactResult struct {
	FeatureDir string
	Name       string // e.g. "spec-002.md"
	Path       string
}

// CreateSpec allocates and renders the next spec file for a feature.
func (s *Service) CreateSpec(featureDir string, explicit int) (*ArtifactResult, error) {
	dir, err := s.activeFeature(featureDir)
	if err != nil {
		return nil, err
	}

	specs, _, _ := workspace.FeaturePaths(s.Root, dir)
	res, err := artifact.Allocate(artifact.AllocateParams{
		Kind:     artifact.KindSpecification,
		Root:     specs,
		Prefix:   artifact.KindSpecification.Prefix(),
		Width:    s.Config.NumberWidth(),
		Suffix:   ".md",
		Explicit: explicit,
	})
	if err != nil {
		return nil, err
	}

	content, err := s.Renderer.Render(templates.Spec, templates.SpecData{
		FeatureName: featureSlug(dir),
		FeatureDir:  dir,
		SpecID:      res.ID.String(),
		Date:        timeNow().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(res.Path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.Path, err)
	}

	return &ArtifactResult{FeatureDir: dir, Name: res.Name, Path: res.Path}, nil
}

// CreatePlan allocates and renders the next plan file for a feature,
// linking it to the latest spec.
func (s *Service) CreatePlan(featureDir string, explicit int) (*ArtifactResult, error) {
	dir, err := s.activeFeature(featureDir)
	if err != nil {
		return nil, err
	}

	specs, plans, _ := workspace.FeaturePaths(s.Root, dir)
	specRef := "(no spec yet)"
	if latest, ok, _ := artifact.Latest(specs, artifact.KindSpecification.Prefix()); ok {
		specRef = latest.Name
	}

	res, err := artifact.Allocate(artifact.AllocateParams{
		Kind:     artifact.KindPlan,
		Root:     plans,
		Prefix:   artifact.KindPlan.Prefix(),
		Width:    s.Config.NumberWidth(),
		Suffix:   ".md",
		Explicit: explicit,
	})
	if err != nil {
		return nil, err
	}

	content, err := s.Renderer.Render(templates.Plan, templates.PlanData{
		FeatureName: featureSlug(dir),
		FeatureDir:  dir,
		PlanID:      res.ID.String(),
		SpecRef:     specRef,
		Date:        timeNow().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(res.Path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.Path, err)
	}

	return &ArtifactResult{FeatureDir: dir, Name: res.Name, Path: res.Path}, nil
}

// CreateTasks allocates and renders the next task breakdown for a
// feature, linking it to the latest plan.
func (s *Service) CreateTasks(featureDir string, explicit int) (*ArtifactResult, error) {
	dir, err := s.activeFeature(featureDir)
	if err != nil {
		return nil, err
	}

	_, plans, tasks := workspace.FeaturePaths(s.Root, dir)
	planRef := "(no plan yet)"
	if latest, ok, _ := artifact.Latest(plans, artifact.KindPlan.Prefix()); ok {
		planRef = latest.Name
	}

	res, err := artifact.Allocate(artifact.AllocateParams{
		Kind:     artifact.KindTaskList,
		Root:     tasks,
		Prefix:   artifact.KindTaskList.Prefix(),
		Width:    s.Config.NumberWidth(),
		Suffix:   ".md",
		Explicit: explicit,
	})
	if err != nil {
		return nil, err
	}

	content, err := s.Renderer.Render(templates.TaskList, templates.TaskListData{
		FeatureName: featureSlug(dir),
		FeatureDir:  dir,
		TaskID:      res.ID.String(),
		PlanRef:     planRef,
		Date:        timeNow().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(res.Path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.Path, err)
	}

	return &ArtifactResult{FeatureDir: dir, Name: res.Name, Path: res.Path}, nil
}

// CreateServiceTask allocates a service-scoped task file like
// AUTH-T001.md in the feature's tasks directory.
func (s *Service) CreateServiceTask(featureDir, service string, explicit int) (*ArtifactResult, error) {
	dir, err := s.activeFeature(featureDir)
	if err != nil {
		return nil, err
	}
	if service == "" {
		return nil, fmt.Errorf("service code is required")
	}

	_, _, tasks := workspace.FeaturePaths(s.Root, dir)
	res, err := artifact.Allocate(artifact.AllocateParams{
		Kind:     artifact.KindServiceTask,
		Root:     tasks,
		Prefix:   s.Config.ServicePrefix(service),
		Width:    s.Config.NumberWidth(),
		Suffix:   ".md",
		Explicit: explicit,
	})
	if err != nil {
		return nil, err
	}

	content, err := s.Renderer.Render(templates.TaskList, templates.TaskListData{
		FeatureName: featureSlug(dir),
		FeatureDir:  dir,
		TaskID:      res.ID.String(),
		PlanRef:     "(service-scoped)",
		Date:        timeNow().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(res.Path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.Path, err)
	}

	return &ArtifactResult{FeatureDir: dir, Name: res.Name, Path: res.Path}, nil
}
