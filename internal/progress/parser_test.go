package progress

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- Checkbox grammar ---

func TestParse_EachStatusMarker(t *testing.T) {
	tests := []struct {
		line string
		want Status
	}{
		{"- [ ] T001: set up repo", StatusPending},
		{"- [>] T001: set up repo", StatusInProgress},
		{"- [x] T001: set up repo", StatusDone},
		{"- [!] T001: set up repo", StatusBlocked},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			records := Parse(tt.line)
			if len(records) != 1 {
				t.Fatalf("got %d records, want 1", len(records))
			}
			if records[0].Status != tt.want {
				t.Errorf("Status = %s, want %s", records[0].Status, tt.want)
			}
			if records[0].TaskID != "T001" {
				t.Errorf("TaskID = %s, want T001", records[0].TaskID)
			}
			if records[0].Title != "set up repo" {
				t.Errorf("Title = %q, want %q", records[0].Title, "set up repo")
			}

			snap := Aggregate(records)
			if snap.Total != 1 {
				t.Errorf("Total = %d, want 1", snap.Total)
			}
		})
	}
}

func TestParse_MixedDocument(t *testing.T) {
	doc := "# Tasks\n" +
		"- [x] T001: scaffold\n" +
		"- [ ] T002: write spec\n" +
		"- [>] T003: implement\n" +
		"- [!] T004: deploy\n"

	records := Parse(doc)
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	snap := Aggregate(records)
	if snap.Total != 4 || snap.Completed != 1 || snap.Pending != 1 ||
		snap.InProgress != 1 || snap.Blocked != 1 {
		t.Errorf("snapshot = %+v, want one of each status", snap)
	}
	if snap.Percentage != 25.0 {
		t.Errorf("Percentage = %v, want 25.0", snap.Percentage)
	}
}

func TestParse_TagMarkersAreNotStatuses(t *testing.T) {
	doc := "- [x] [P] T001: parallel task\n" +
		"- [P] not a task, just a tag line\n" +
		"- [S] also not a task\n"

	records := Parse(doc)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(records), records)
	}
	if records[0].Status != StatusDone || records[0].TaskID != "T001" {
		t.Errorf("record = %+v, want done T001", records[0])
	}
}

func TestParse_UnknownMarkerDefaultsToPending(t *testing.T) {
	records := Parse("- [?] T009: mystery status")
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (never silently dropped)", len(records))
	}
	if records[0].Status != StatusPending {
		t.Errorf("Status = %s, want pending", records[0].Status)
	}
}

func TestParse_ServiceScopedIDs(t *testing.T) {
	records := Parse("- [x] AUTH-T001: token refresh")
	if len(records) != 1 {
		t.Fatal("service-scoped task not recognized")
	}
	if records[0].TaskID != "AUTH-T001" {
		t.Errorf("TaskID = %s, want AUTH-T001", records[0].TaskID)
	}
}

func TestParse_DependsClause(t *testing.T) {
	records := Parse("- [ ] T003: wire API (depends on T001, T002)")
	if len(records) != 1 {
		t.Fatal("line not recognized")
	}
	deps := records[0].DependsOn
	if len(deps) != 2 || deps[0] != "T001" || deps[1] != "T002" {
		t.Errorf("DependsOn = %v, want [T001 T002]", deps)
	}
	if strings.Contains(records[0].Title, "depends") {
		t.Errorf("depends clause left in title: %q", records[0].Title)
	}
}

func TestParse_NonTaskLinesIgnored(t *testing.T) {
	doc := "# Heading\n\nProse about [links](http://x) and such.\n* [ ] T001: star bullets work too\n"
	records := Parse(doc)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
}

// --- YAML block format ---

func TestParse_YAMLTaskBlock(t *testing.T) {
	doc := "## Tasks\n" +
		"```task\n" +
		"id: T010\n" +
		"title: migrate database\n" +
		"status: in-progress\n" +
		"depends_on: [T001]\n" +
		"```\n"

	records := Parse(doc)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.TaskID != "T010" || r.Status != StatusInProgress || r.Title != "migrate database" {
		t.Errorf("record = %+v", r)
	}
	if len(r.DependsOn) != 1 || r.DependsOn[0] != "T001" {
		t.Errorf("DependsOn = %v, want [T001]", r.DependsOn)
	}
}

func TestParse_YAMLTaskSequence(t *testing.T) {
	doc := "```yaml\n" +
		"- id: T004\n" +
		"  title: integration tests\n" +
		"  status: todo\n" +
		"  depends_on: [T002]\n" +
		"```\n"

	records := Parse(doc)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.TaskID != "T004" || r.Status != StatusPending || r.Title != "integration tests" {
		t.Errorf("record = %+v", r)
	}
	if len(r.DependsOn) != 1 || r.DependsOn[0] != "T002" {
		t.Errorf("DependsOn = %v, want [T002]", r.DependsOn)
	}
}

func TestParse_YAMLTaskSequenceMultipleElements(t *testing.T) {
	doc := "```task\n" +
		"- id: T001\n" +
		"  title: scaffold\n" +
		"  status: done\n" +
		"- id: T002\n" +
		"  title: wire API\n" +
		"  status: in-progress\n" +
		"- id: T003\n" +
		"  status: todo\n" +
		"```\n"

	records := Parse(doc)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(records), records)
	}
	wants := []struct {
		id     string
		status Status
	}{
		{"T001", StatusDone},
		{"T002", StatusInProgress},
		{"T003", StatusPending},
	}
	for i, want := range wants {
		if records[i].TaskID != want.id || records[i].Status != want.status {
			t.Errorf("records[%d] = %+v, want %s %s", i, records[i], want.id, want.status)
		}
	}
}

func TestParse_YAMLStatusMapping(t *testing.T) {
	tests := []struct {
		status string
		want   Status
	}{
		{"todo", StatusPending},
		{"in-progress", StatusInProgress},
		{"blocked", StatusBlocked},
		{"done", StatusDone},
		{"bogus", StatusPending},
		{"", StatusPending},
	}

	for _, tt := range tests {
		doc := "```task\nid: T001\nstatus: " + tt.status + "\n```\n"
		records := Parse(doc)
		if len(records) != 1 {
			t.Fatalf("status %q: got %d records, want 1", tt.status, len(records))
		}
		if records[0].Status != tt.want {
			t.Errorf("status %q mapped to %s, want %s", tt.status, records[0].Status, tt.want)
		}
	}
}

func TestParse_CheckboxInsideFenceNotDoubleCounted(t *testing.T) {
	doc := "```\n- [x] T001: this is example code, not a task\n```\n" +
		"- [ ] T002: real task\n"

	records := Parse(doc)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(records), records)
	}
	if records[0].TaskID != "T002" {
		t.Errorf("TaskID = %s, want T002", records[0].TaskID)
	}
}

func TestParse_NonTaskFenceIgnored(t *testing.T) {
	doc := "```go\nfunc main() {}\n```\n"
	if records := Parse(doc); len(records) != 0 {
		t.Errorf("code fence produced records: %+v", records)
	}
}

func TestParse_MixedFormats(t *testing.T) {
	doc := "- [x] T001: checkbox task\n" +
		"```task\nid: T002\nstatus: todo\n```\n" +
		"- [>] T003: another checkbox\n"

	records := Parse(doc)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	// Document order is preserved across formats.
	for i, want := range []string{"T001", "T002", "T003"} {
		if records[i].TaskID != want {
			t.Errorf("records[%d].TaskID = %s, want %s", i, records[i].TaskID, want)
		}
	}
}

// --- ScanFiles ---

func TestScanFiles_MalformedFileWarnsOnce(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "task-001.md")
	bad := filepath.Join(dir, "task-002.md")
	os.WriteFile(good, []byte("- [x] T001: done thing\n- [ ] T002: next thing\n"), 0o644)
	os.WriteFile(bad, []byte("just prose\nno markers anywhere\nmore prose\n"), 0o644)

	records, warnings := ScanFiles([]string{good, bad})
	if len(records) != 2 {
		t.Errorf("got %d records, want 2 (malformed file contributes zero)", len(records))
	}

	badWarnings := 0
	for _, w := range warnings {
		if w.Path == bad {
			badWarnings++
		}
	}
	if badWarnings != 1 {
		t.Errorf("got %d warnings for the malformed file, want exactly 1", badWarnings)
	}
}

func TestScanFiles_DanglingDependencyWarned(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "task-001.md")
	os.WriteFile(path, []byte("- [ ] T001: thing (depends on T999)\n"), 0o644)

	records, warnings := ScanFiles([]string{path})
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (dangling deps are not fatal)", len(records))
	}

	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, "T999") {
			found = true
		}
	}
	if !found {
		t.Error("dangling dependency was not reported")
	}
}

func TestMissingDependencies_CrossFileCorpus(t *testing.T) {
	records := []Record{
		{TaskID: "T001", Status: StatusDone},
		{TaskID: "AUTH-T001", Status: StatusPending, DependsOn: []string{"T001"}},
	}
	if warns := MissingDependencies(records); len(warns) != 0 {
		t.Errorf("dependency satisfied across files still warned: %v", warns)
	}
}
