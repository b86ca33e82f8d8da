package pulse

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specpulse/specpulse/internal/artifact"
	"github.com/specpulse/specpulse/internal/progress"
	"github.com/specpulse/specpulse/internal/validate"
	"github.com/specpulse/specpulse/internal/workspace"
)

// StatusReport is the aggregate view of one feature.
type StatusReport struct {
	FeatureDir string
	LatestSpec string // "" when none
	LatestPlan string
	Snapshot   progress.Snapshot
	Warnings   []string
}

// Status recomputes a feature's progress from its files. Soft problems
// (malformed task files, ambiguous numbering, dangling dependencies)
// come back as warnings alongside a best-effort snapshot — a status
// query never fails because one file among many is broken.
func (s *Service) Status(featureDir string) (*StatusReport, error) {
	dir, err := s.activeFeature(featureDir)
	if err != nil {
		return nil, err
	}

	specs, plans, tasks := workspace.FeaturePaths(s.Root, dir)
	report := &StatusReport{FeatureDir: dir}

	if latest, ok, warn := artifact.Latest(specs, artifact.KindSpecification.Prefix()); ok {
		report.LatestSpec = latest.Name
		if warn != nil {
			report.Warnings = append(report.Warnings, warn.String())
		}
	}
	if latest, ok, warn := artifact.Latest(plans, artifact.KindPlan.Prefix()); ok {
		report.LatestPlan = latest.Name
		if warn != nil {
			report.Warnings = append(report.Warnings, warn.String())
		}
	}

	records, warnings := progress.ScanFiles(taskFiles(tasks))
	report.Snapshot = progress.Aggregate(records)
	for _, w := range warnings {
		report.Warnings = append(report.Warnings, w.String())
	}

	return report, nil
}

// taskFiles lists every markdown file directly under the feature's
// tasks directory: numbered task lists and service-scoped task files
// alike. Order is deterministic so warnings are stable run to run.
func taskFiles(dir string) []string {
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var paths []string
	for _, child := range children {
		if child.IsDir() || !strings.HasSuffix(child.Name(), ".md") {
			continue
		}
		paths = append(paths, filepath.Join(dir, child.Name()))
	}
	sort.Strings(paths)
	return paths
}

// ValidationReport holds the per-artifact section checks of a feature.
type ValidationReport struct {
	FeatureDir string
	Artifacts  []ArtifactValidation
}

// ArtifactValidation is the outcome for a single file.
type ArtifactValidation struct {
	Name   string
	Report *validate.Report
}

// Validate runs section-presence checks over every spec, plan, and task
// file of a feature.
func (s *Service) Validate(featureDir string) (*ValidationReport, error) {
	dir, err := s.activeFeature(featureDir)
	if err != nil {
		return nil, err
	}

	specs, plans, tasks := workspace.FeaturePaths(s.Root, dir)
	out := &ValidationReport{FeatureDir: dir}

	checks := []struct {
		root   string
		prefix string
		rules  []validate.Rule
	}{
		{specs, artifact.KindSpecification.Prefix(), validate.SpecRules()},
		{plans, artifact.KindPlan.Prefix(), validate.PlanRules()},
		{tasks, artifact.KindTaskList.Prefix(), validate.TaskRules()},
	}

	for _, c := range checks {
		for _, entry := range artifact.Scan(c.root, c.prefix) {
			path := filepath.Join(c.root, entry.Name)
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			out.Artifacts = append(out.Artifacts, ArtifactValidation{
				Name:   entry.Name,
				Report: validate.Check(string(data), c.rules),
			})
		}
	}

	return out, nil
}
