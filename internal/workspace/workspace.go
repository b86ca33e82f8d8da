// Package workspace manages the on-disk layout of a SpecPulse project:
// the specs/plans/tasks/memory directory tree, the TOML project config,
// and the active-feature context pointer.
//
// The ledger packages (artifact, progress) never read any of this — they
// receive already-resolved roots. Resolution happens exactly once, here,
// so the ledger stays a pure function of its inputs.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// SpecsDir holds one subdirectory per feature, each containing
	// numbered spec files.
	SpecsDir = "specs"
	// PlansDir mirrors SpecsDir for implementation plans.
	PlansDir = "plans"
	// TasksDir mirrors SpecsDir for task breakdowns.
	TasksDir = "tasks"
	// MemoryDir holds long-lived project notes and the memory database.
	MemoryDir = "memory"
	// PulseDir is the hidden directory for SpecPulse's own state.
	PulseDir = ".specpulse"

	// ConfigFile is the user-editable project configuration.
	ConfigFile = "config.toml"
	// ContextFile is the machine-written active-feature pointer.
	ContextFile = "context.json"
)

// ScaffoldDirs are created by init, in this order.
var ScaffoldDirs = []string{SpecsDir, PlansDir, TasksDir, MemoryDir, PulseDir}

// PulsePath returns the absolute path of the .specpulse directory.
func PulsePath(root string) string {
	return filepath.Join(root, PulseDir)
}

// ConfigPath returns the absolute path of config.toml.
func ConfigPath(root string) string {
	return filepath.Join(root, PulseDir, ConfigFile)
}

// ContextPath returns the absolute path of context.json.
func ContextPath(root string) string {
	return filepath.Join(root, PulseDir, ContextFile)
}

// FeatureRoot returns the numbering root for feature directories.
// Features are numbered by their subdirectory under specs/; the plans/
// and tasks/ mirrors reuse the same directory name.
func FeatureRoot(root string) string {
	return filepath.Join(root, SpecsDir)
}

// FeaturePaths returns the three per-feature directories for a feature
// directory name like "007-user-auth".
func FeaturePaths(root, featureDir string) (specs, plans, tasks string) {
	return filepath.Join(root, SpecsDir, featureDir),
		filepath.Join(root, PlansDir, featureDir),
		filepath.Join(root, TasksDir, featureDir)
}

// FindRoot walks up from the working directory looking for an existing
// .specpulse/config.toml. If none is found it returns the working
// directory itself — the caller decides whether an uninitialized
// workspace is an error for its command.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		if _, err := os.Stat(ConfigPath(current)); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir, nil
		}
		current = parent
	}
}

// IsInitialized reports whether root holds a SpecPulse workspace.
func IsInitialized(root string) bool {
	_, err := os.Stat(ConfigPath(root))
	return err == nil
}

// Scaffold creates the workspace directory tree under root. Existing
// directories are left alone, so re-running init is harmless.
func Scaffold(root string) error {
	for _, dir := range ScaffoldDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
