// Package artifact implements the identifier ledger for SpecPulse
// workspaces: enumerating numbered artifacts on disk, allocating new
// collision-free numbers, and sanitizing human-supplied feature names.
//
// The filesystem is the single source of truth. Nothing in this package
// caches state between calls, reads the active-feature context, or talks
// to git — callers resolve the root directory first and pass it in, which
// keeps every function a pure product of its filesystem inputs.
package artifact

import "fmt"

// Kind categorizes the numbered entities a workspace contains.
type Kind string

const (
	KindFeature       Kind = "feature"
	KindSpecification Kind = "specification"
	KindPlan          Kind = "plan"
	KindTaskList      Kind = "task-list"
	KindServiceTask   Kind = "service-task"
)

// DefaultWidth is the zero-padded rendering width for artifact numbers.
// Numbers beyond three digits render at their natural width — padding is
// a floor, never a ceiling.
const DefaultWidth = 3

// Prefix returns the conventional filename prefix for the kind.
// Feature directories carry no prefix (they render as "001-slug"), and
// service tasks use a caller-supplied prefix like "AUTH-T", so both
// return the empty string here.
func (k Kind) Prefix() string {
	switch k {
	case KindSpecification:
		return "spec-"
	case KindPlan:
		return "plan-"
	case KindTaskList:
		return "task-"
	default:
		return ""
	}
}

// IsDir reports whether artifacts of this kind are directories.
// Only features are; everything else is a markdown file.
func (k Kind) IsDir() bool {
	return k == KindFeature
}

// ID is an allocated artifact identifier. Immutable once assigned:
// an ID is never renumbered, only superseded by a later one.
type ID struct {
	Kind   Kind
	Prefix string
	Number int
	Width  int // padding width the number was allocated with; 0 means DefaultWidth
}

// String renders the canonical form: prefix + zero-padded number. The
// rendering uses the width the allocator reserved the name with, so the
// ID and its on-disk name never disagree.
func (id ID) String() string {
	w := id.Width
	if w <= 0 {
		w = DefaultWidth
	}
	return Format(id.Prefix, id.Number, w)
}

// Format renders prefix + number padded to width digits. Numbers wider
// than width are never truncated or re-padded.
func Format(prefix string, number, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, number)
}
