// Package templates renders the markdown skeletons SpecPulse writes
// into freshly allocated artifacts. The bodies are deliberately thin:
// section headings, traceable IDs, and placeholders the LLM assistant
// fills in. Content generation is its job, not ours.
package templates

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.md.tmpl
var files embed.FS

// Kind selects which skeleton to render.
type Kind string

const (
	Spec     Kind = "spec"
	Plan     Kind = "plan"
	TaskList Kind = "tasks"
	Memory   Kind = "memory"
)

// Renderer is the rendering abstraction the tools depend on.
type Renderer interface {
	Render(kind Kind, data any) (string, error)
}

// FSRenderer renders from the embedded template set.
type FSRenderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates once.
func NewRenderer() (*FSRenderer, error) {
	tmpl, err := template.ParseFS(files, "templates/*.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded templates: %w", err)
	}
	return &FSRenderer{tmpl: tmpl}, nil
}

// Render executes the skeleton for kind with data.
func (r *FSRenderer) Render(kind Kind, data any) (string, error) {
	var b strings.Builder
	name := string(kind) + ".md.tmpl"
	if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return b.String(), nil
}

// SpecData fills spec.md.tmpl.
type SpecData struct {
	FeatureName string // human-readable, e.g. "User Auth"
	FeatureDir  string // e.g. "007-user-auth"
	SpecID      string // e.g. "spec-001"
	Date        string
}

// PlanData fills plan.md.tmpl.
type PlanData struct {
	FeatureName string
	FeatureDir  string
	PlanID      string
	SpecRef     string // the spec this plan implements, e.g. "spec-001.md"
	Date        string
}

// TaskListData fills tasks.md.tmpl.
type TaskListData struct {
	FeatureName string
	FeatureDir  string
	TaskID      string
	PlanRef     string
	Date        string
}

// MemoryData fills memory.md.tmpl, the seed note written by init.
type MemoryData struct {
	ProjectName string
	Date        string
}
