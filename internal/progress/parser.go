// Package progress parses task documents and aggregates their status
// markers into completion snapshots.
//
// Two task formats coexist in SpecPulse workspaces and both are handled
// by the same parser: simple checkbox lists ("- [x] T001: title") and
// fenced YAML task blocks with id/status fields. Snapshots are always
// recomputed from the files — nothing here is persisted, so a snapshot
// can never go stale.
package progress

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Status is the four-state task lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// Record is one task parsed from a document. Derived on every scan,
// never stored.
type Record struct {
	TaskID    string
	Title     string
	Status    Status
	DependsOn []string
}

// Warning is a non-fatal parsing problem, reported once per offending
// file rather than once per line.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	if w.Path == "" {
		return w.Message
	}
	return w.Path + ": " + w.Message
}

// Status markers are exactly four symbols. Anything else inside the
// brackets is either a known tag marker ([P] parallel, [S] sequential),
// which is skipped, or unparseable content, which still counts as a
// pending task so it is never silently dropped from the total.
var statusMarkers = map[byte]Status{
	' ': StatusPending,
	'>': StatusInProgress,
	'x': StatusDone,
	'!': StatusBlocked,
}

var tagMarkers = map[byte]bool{
	'P': true, // parallelizable
	'S': true, // sequential
}

var (
	checkboxRe = regexp.MustCompile(`^\s*[-*]\s*\[(.)\]\s*(.*)$`)
	taskIDRe   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9-]*\d+)\s*[:.]?\s*(.*)$`)
	fenceRe    = regexp.MustCompile("^\\s*```+\\s*([A-Za-z0-9_-]*)\\s*$")
	dependsRe  = regexp.MustCompile(`(?i)\(?\s*depends(?:\s+on)?:?\s+([A-Za-z0-9-]+(?:\s*,\s*[A-Za-z0-9-]+)*)\s*\)?`)
)

// yamlTask is the fenced-block task shape. Status values todo,
// in-progress, blocked, done map onto the same four-state enum the
// checkbox grammar uses.
type yamlTask struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Status    string   `yaml:"status"`
	DependsOn []string `yaml:"depends_on"`
}

// Parse scans a task document and returns one record per recognized
// task, in document order. Checkbox lines inside fenced blocks belong to
// the block, not the list grammar, so they are not scanned twice.
func Parse(doc string) []Record {
	var records []Record

	var inFence bool
	var fenceBody []string

	scanner := bufio.NewScanner(strings.NewReader(doc))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if m := fenceRe.FindStringSubmatch(line); m != nil {
			if inFence {
				records = append(records, parseYAMLBlock(strings.Join(fenceBody, "\n"))...)
				inFence = false
				fenceBody = nil
			} else {
				inFence = true
			}
			continue
		}

		if inFence {
			fenceBody = append(fenceBody, line)
			continue
		}

		if rec, ok := parseCheckboxLine(line); ok {
			records = append(records, rec)
		}
	}

	// An unterminated fence still yields its records rather than eating
	// the tail of a partially written document.
	if inFence {
		records = append(records, parseYAMLBlock(strings.Join(fenceBody, "\n"))...)
	}

	return records
}

// parseCheckboxLine recognizes "- [x] T001: title" style entries.
func parseCheckboxLine(line string) (Record, bool) {
	m := checkboxRe.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}

	marker := m[1][0]
	rest := m[2]

	status, isStatus := statusMarkers[marker]
	if !isStatus {
		if tagMarkers[marker] {
			// A bare tag marker line is not a task.
			return Record{}, false
		}
		// Unrecognized marker: still a task, counted as pending.
		status = StatusPending
	}

	rec := Record{Status: status}

	// Skip tag markers between the status and the task id: "- [x] [P] T001".
	for {
		trimmed := strings.TrimSpace(rest)
		if len(trimmed) >= 3 && trimmed[0] == '[' && trimmed[2] == ']' && tagMarkers[trimmed[1]] {
			rest = trimmed[3:]
			continue
		}
		rest = trimmed
		break
	}

	if idm := taskIDRe.FindStringSubmatch(rest); idm != nil {
		rec.TaskID = idm[1]
		rec.Title = strings.TrimSpace(idm[2])
	} else {
		rec.Title = rest
	}

	if dm := dependsRe.FindStringSubmatch(rec.Title); dm != nil {
		for _, dep := range strings.Split(dm[1], ",") {
			if dep = strings.TrimSpace(dep); dep != "" {
				rec.DependsOn = append(rec.DependsOn, dep)
			}
		}
		rec.Title = strings.TrimSpace(strings.Replace(rec.Title, dm[0], "", 1))
	}

	return rec, true
}

// parseYAMLBlock turns a fenced block into records when it carries the
// task shape: either a single task mapping or a sequence of them, one
// record per element. Blocks without any id or status field are
// ordinary code fences and are ignored.
func parseYAMLBlock(body string) []Record {
	var tasks []yamlTask
	if err := yaml.Unmarshal([]byte(body), &tasks); err != nil {
		var single yamlTask
		if err := yaml.Unmarshal([]byte(body), &single); err != nil {
			return nil
		}
		tasks = []yamlTask{single}
	}

	var records []Record
	for _, yt := range tasks {
		if yt.ID == "" && yt.Status == "" {
			continue
		}
		records = append(records, Record{
			TaskID:    yt.ID,
			Title:     yt.Title,
			Status:    yamlStatus(yt.Status),
			DependsOn: yt.DependsOn,
		})
	}
	return records
}

func yamlStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "todo":
		return StatusPending
	case "in-progress":
		return StatusInProgress
	case "blocked":
		return StatusBlocked
	case "done":
		return StatusDone
	default:
		// Missing or unrecognized status: still counted, as pending.
		return StatusPending
	}
}

// ScanFiles parses every path and pools the records. A file that reads
// but yields no recognizable task at all contributes zero records and
// one warning — a status query never aborts because one file among many
// is malformed.
func ScanFiles(paths []string) ([]Record, []Warning) {
	var records []Record
	var warnings []Warning

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, Warning{Path: path, Message: fmt.Sprintf("unreadable: %v", err)})
			continue
		}

		recs := Parse(string(data))
		if len(recs) == 0 {
			warnings = append(warnings, Warning{Path: path, Message: "no recognizable task entries"})
			continue
		}
		records = append(records, recs...)
	}

	warnings = append(warnings, MissingDependencies(records)...)
	return records, warnings
}

// MissingDependencies reports depends-on references that name no task in
// the pooled corpus. Dangling references are surfaced, never fatal.
func MissingDependencies(records []Record) []Warning {
	known := make(map[string]bool, len(records))
	for _, r := range records {
		if r.TaskID != "" {
			known[r.TaskID] = true
		}
	}

	var warnings []Warning
	for _, r := range records {
		for _, dep := range r.DependsOn {
			if !known[dep] {
				warnings = append(warnings, Warning{
					Message: fmt.Sprintf("%s depends on %s, which does not exist", r.TaskID, dep),
				})
			}
		}
	}
	return warnings
}
