package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScaffold_CreatesTree(t *testing.T) {
	root := t.TempDir()
	if err := Scaffold(root); err != nil {
		t.Fatalf("Scaffold: %v", err)
	}

	for _, dir := range ScaffoldDirs {
		info, err := os.Stat(filepath.Join(root, dir))
		if err != nil {
			t.Errorf("missing %s: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestScaffold_Rerunnable(t *testing.T) {
	root := t.TempDir()
	if err := Scaffold(root); err != nil {
		t.Fatalf("first Scaffold: %v", err)
	}
	if err := Scaffold(root); err != nil {
		t.Errorf("second Scaffold: %v", err)
	}
}

func TestFeaturePaths(t *testing.T) {
	specs, plans, tasks := FeaturePaths("/proj", "003-search")
	if specs != filepath.Join("/proj", "specs", "003-search") {
		t.Errorf("specs = %s", specs)
	}
	if plans != filepath.Join("/proj", "plans", "003-search") {
		t.Errorf("plans = %s", plans)
	}
	if tasks != filepath.Join("/proj", "tasks", "003-search") {
		t.Errorf("tasks = %s", tasks)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig("demo")
	cfg.Services = map[string]string{"auth": "AUTH-T"}
	if err := SaveConfig(root, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Project.Name != "demo" {
		t.Errorf("Name = %s, want demo", loaded.Project.Name)
	}
	if !loaded.Git.AutoBranch {
		t.Error("AutoBranch default lost")
	}
	if loaded.ServicePrefix("auth") != "AUTH-T" {
		t.Errorf("ServicePrefix(auth) = %s", loaded.ServicePrefix("auth"))
	}
}

func TestNumberWidth(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig("demo")
	cfg.Project.NumberWidth = 4
	if err := SaveConfig(root, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.NumberWidth() != 4 {
		t.Errorf("NumberWidth = %d, want 4", loaded.NumberWidth())
	}

	// A config written before the field existed falls back to the default.
	if got := (&Config{}).NumberWidth(); got != 3 {
		t.Errorf("NumberWidth of empty config = %d, want 3", got)
	}
}

func TestLoadConfig_UninitializedWorkspace(t *testing.T) {
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Error("expected an error for a workspace without config.toml")
	}
}

func TestServicePrefix_Fallback(t *testing.T) {
	cfg := DefaultConfig("demo")
	if got := cfg.ServicePrefix("pay"); got != "PAY-T" {
		t.Errorf("ServicePrefix(pay) = %s, want PAY-T", got)
	}
}

func TestIsInitialized(t *testing.T) {
	root := t.TempDir()
	if IsInitialized(root) {
		t.Error("empty dir reported initialized")
	}
	if err := SaveConfig(root, DefaultConfig("x")); err != nil {
		t.Fatal(err)
	}
	if !IsInitialized(root) {
		t.Error("workspace with config.toml reported uninitialized")
	}
}

func TestContext_MissingFileIsEmpty(t *testing.T) {
	ctx, err := LoadContext(t.TempDir())
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	if ctx.ActiveFeature != nil {
		t.Errorf("fresh workspace has an active feature: %+v", ctx.ActiveFeature)
	}
}

func TestContext_SwitchFeature(t *testing.T) {
	root := t.TempDir()

	fixed := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = time.Now }()

	ref := FeatureRef{ID: "007", Slug: "user-auth", Dir: "007-user-auth", Branch: "007-user-auth"}
	if err := SwitchFeature(root, ref); err != nil {
		t.Fatalf("SwitchFeature: %v", err)
	}

	ctx, err := LoadContext(root)
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	if ctx.ActiveFeature == nil || ctx.ActiveFeature.Dir != "007-user-auth" {
		t.Fatalf("ActiveFeature = %+v", ctx.ActiveFeature)
	}
	if ctx.UpdatedAt != "2026-08-26T12:00:00Z" {
		t.Errorf("UpdatedAt = %s", ctx.UpdatedAt)
	}
}
