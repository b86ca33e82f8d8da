package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Context is the machine-written active-feature pointer, persisted as
// .specpulse/context.json. It is a soft pointer: switching features just
// rewrites this file, nothing on disk moves.
type Context struct {
	ActiveFeature *FeatureRef `json:"active_feature,omitempty"`
	UpdatedAt     string      `json:"updated_at"`
}

// FeatureRef identifies a feature by its allocated directory.
type FeatureRef struct {
	ID     string `json:"id"`   // rendered number, e.g. "007"
	Slug   string `json:"slug"` // sanitized name, e.g. "user-auth"
	Dir    string `json:"dir"`  // directory name, e.g. "007-user-auth"
	Branch string `json:"branch,omitempty"`
}

// timeNow is swappable in tests, same pattern as the other packages.
var timeNow = time.Now

// LoadContext reads context.json. A missing file is an empty context,
// not an error — a fresh workspace simply has no active feature yet.
func LoadContext(root string) (*Context, error) {
	data, err := os.ReadFile(ContextPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return &Context{}, nil
		}
		return nil, fmt.Errorf("reading context: %w", err)
	}

	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ContextPath(root), err)
	}
	return &ctx, nil
}

// SaveContext writes context.json, stamping UpdatedAt.
func SaveContext(root string, ctx *Context) error {
	if err := os.MkdirAll(PulsePath(root), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", PulsePath(root), err)
	}

	ctx.UpdatedAt = timeNow().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling context: %w", err)
	}
	return os.WriteFile(ContextPath(root), data, 0o644)
}

// SwitchFeature points the context at a feature and saves it.
func SwitchFeature(root string, ref FeatureRef) error {
	ctx, err := LoadContext(root)
	if err != nil {
		return err
	}
	ctx.ActiveFeature = &ref
	return SaveContext(root, ctx)
}
