package artifact

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// --- Scan / ListNumbers ---

func TestScan_MissingRootIsEmpty(t *testing.T) {
	entries := Scan(filepath.Join(t.TempDir(), "does-not-exist"), "spec-")
	if len(entries) != 0 {
		t.Errorf("Scan on missing root = %v, want empty", entries)
	}
}

func TestListNumbers_ParsesPrefixedFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "spec-001.md")
	touch(t, dir, "spec-002.md")
	touch(t, dir, "README.md")       // no prefix match
	touch(t, dir, "plan-001.md")     // different prefix
	touch(t, dir, "spec-notes.md")   // prefix but no digits
	touch(t, dir, "Spec-003.md")     // wrong case

	nums := ListNumbers(dir, "spec-")
	if len(nums) != 2 {
		t.Fatalf("got %d numbers, want 2: %v", len(nums), nums)
	}
	for _, want := range []int{1, 2} {
		if _, ok := nums[want]; !ok {
			t.Errorf("missing number %d", want)
		}
	}
}

func TestListNumbers_WidthIsNotEnforced(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "spec-1042.md")

	nums := ListNumbers(dir, "spec-")
	if _, ok := nums[1042]; !ok {
		t.Errorf("legacy 4-digit number not parsed: %v", nums)
	}
}

func TestListNumbers_FeatureDirectories(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"001-auth", "002-payments", "007-search"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	touch(t, dir, "notes.txt")

	nums := ListNumbers(dir, "")
	if len(nums) != 3 {
		t.Fatalf("got %v, want {1,2,7}", nums)
	}
	for _, want := range []int{1, 2, 7} {
		if _, ok := nums[want]; !ok {
			t.Errorf("missing number %d", want)
		}
	}
}

func TestListNumbers_DoesNotRecurse(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "decomposition")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, sub, "spec-009.md")
	touch(t, dir, "spec-001.md")

	nums := ListNumbers(dir, "spec-")
	if _, ok := nums[9]; ok {
		t.Error("Scan descended into a subdirectory")
	}
	if _, ok := nums[1]; !ok {
		t.Error("top-level artifact missing")
	}
}

func TestListNumbers_Idempotent(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "task-001.md")
	touch(t, dir, "task-003.md")

	first := ListNumbers(dir, "task-")
	second := ListNumbers(dir, "task-")
	if len(first) != len(second) {
		t.Fatalf("two scans disagree: %v vs %v", first, second)
	}
	for n := range first {
		if _, ok := second[n]; !ok {
			t.Errorf("number %d missing from second scan", n)
		}
	}
}

func TestListNumbers_ServicePrefix(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "AUTH-T001.md")
	touch(t, dir, "AUTH-T002.md")
	touch(t, dir, "PAY-T001.md")

	nums := ListNumbers(dir, "AUTH-T")
	if len(nums) != 2 {
		t.Fatalf("got %v, want {1,2}", nums)
	}
}

// --- Latest ---

func TestLatest_EmptyRoot(t *testing.T) {
	_, ok, warn := Latest(t.TempDir(), "spec-")
	if ok {
		t.Error("Latest on empty root reported ok")
	}
	if warn != nil {
		t.Errorf("unexpected warning: %v", warn)
	}
}

func TestLatest_ReturnsMax(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "spec-001.md")
	touch(t, dir, "spec-003.md")
	touch(t, dir, "spec-002.md")

	latest, ok, warn := Latest(dir, "spec-")
	if !ok {
		t.Fatal("Latest reported not ok")
	}
	if latest.Number != 3 {
		t.Errorf("Number = %d, want 3", latest.Number)
	}
	if latest.Name != "spec-003.md" {
		t.Errorf("Name = %s, want spec-003.md", latest.Name)
	}
	if warn != nil {
		t.Errorf("unexpected warning: %v", warn)
	}
}

func TestLatest_TieIsWarnedAndLexicographicallyLastWins(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "spec-002-draft.md")
	touch(t, dir, "spec-002-final.md")
	touch(t, dir, "spec-001.md")

	latest, ok, warn := Latest(dir, "spec-")
	if !ok {
		t.Fatal("Latest reported not ok")
	}
	if latest.Name != "spec-002-final.md" {
		t.Errorf("Name = %s, want spec-002-final.md", latest.Name)
	}
	if warn == nil {
		t.Fatal("tie at the highest number was not warned")
	}
	if warn.Number != 2 || len(warn.Names) != 2 {
		t.Errorf("warning = %+v, want number 2 with both names", warn)
	}
}
