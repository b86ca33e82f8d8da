// Package validate performs heuristic completeness checks on workspace
// markdown artifacts. The checks are deliberately shallow — a section
// heading being present says nothing about its quality — but they catch
// the common failure mode of an LLM assistant skipping sections or
// leaving clarification placeholders behind.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule names one required section of a document and its weight in the
// completeness score.
type Rule struct {
	Name   string // heading text to look for, matched case-insensitively
	Weight int    // relative importance (1-10)
}

// SpecRules are the required sections of a spec-NNN.md document.
func SpecRules() []Rule {
	return []Rule{
		{Name: "Overview", Weight: 8},
		{Name: "User Stories", Weight: 9},
		{Name: "Functional Requirements", Weight: 10},
		{Name: "Acceptance Criteria", Weight: 9},
		{Name: "Edge Cases", Weight: 6},
		{Name: "Out of Scope", Weight: 5},
	}
}

// PlanRules are the required sections of a plan-NNN.md document.
func PlanRules() []Rule {
	return []Rule{
		{Name: "Architecture", Weight: 9},
		{Name: "Technology Stack", Weight: 7},
		{Name: "Implementation Phases", Weight: 10},
		{Name: "Testing Strategy", Weight: 7},
		{Name: "Risks", Weight: 5},
	}
}

// TaskRules are the required sections of a task-NNN.md document.
func TaskRules() []Rule {
	return []Rule{
		{Name: "Tasks", Weight: 10},
		{Name: "Dependencies", Weight: 5},
	}
}

// SectionResult records whether one required section was found.
type SectionResult struct {
	Rule    Rule
	Present bool
}

// Report is the outcome of checking one document.
type Report struct {
	Sections     []SectionResult
	Missing      []string // names of absent sections
	Placeholders []string // unresolved [NEEDS CLARIFICATION: ...] markers
	Score        int      // weighted presence, 0-100
	Complete     bool     // every section present and no placeholders left
}

var placeholderRe = regexp.MustCompile(`\[NEEDS CLARIFICATION[^\]]*\]`)

// Check scans a document for the required sections and unresolved
// clarification placeholders.
func Check(doc string, rules []Rule) *Report {
	report := &Report{}

	totalWeight := 0
	coveredWeight := 0
	for _, rule := range rules {
		present := hasHeading(doc, rule.Name)
		report.Sections = append(report.Sections, SectionResult{Rule: rule, Present: present})
		totalWeight += rule.Weight
		if present {
			coveredWeight += rule.Weight
		} else {
			report.Missing = append(report.Missing, rule.Name)
		}
	}

	report.Placeholders = placeholderRe.FindAllString(doc, -1)

	if totalWeight > 0 {
		report.Score = 100 * coveredWeight / totalWeight
	}
	report.Complete = len(report.Missing) == 0 && len(report.Placeholders) == 0
	return report
}

// hasHeading reports whether doc contains a markdown heading whose text
// starts with name, at any level.
func hasHeading(doc, name string) bool {
	re := regexp.MustCompile(`(?mi)^#{1,6}\s+` + regexp.QuoteMeta(name))
	return re.MatchString(doc)
}

// Summary renders a one-line human-readable verdict.
func (r *Report) Summary() string {
	if r.Complete {
		return fmt.Sprintf("complete (%d%%)", r.Score)
	}
	parts := []string{fmt.Sprintf("%d%%", r.Score)}
	if len(r.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(r.Missing, ", "))
	}
	if len(r.Placeholders) > 0 {
		parts = append(parts, fmt.Sprintf("%d unresolved clarification(s)", len(r.Placeholders)))
	}
	return strings.Join(parts, "; ")
}
