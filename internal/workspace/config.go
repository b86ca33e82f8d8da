package workspace

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/specpulse/specpulse/internal/artifact"
)

// Config is the user-editable project configuration, stored as
// .specpulse/config.toml. Everything machine-written lives in
// context.json instead so user edits and tool writes never collide
// in one file.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Git     GitConfig     `toml:"git"`

	// Services maps a service code to the task prefix used for its
	// service-scoped task files, e.g. "auth" -> "AUTH-T".
	Services map[string]string `toml:"services,omitempty"`
}

// ProjectConfig identifies the project.
type ProjectConfig struct {
	Name        string `toml:"name"`
	Description string `toml:"description,omitempty"`

	// NumberWidth is the zero-pad width for artifact numbers. Zero or
	// missing falls back to the three-digit default.
	NumberWidth int `toml:"number_width,omitempty"`
}

// GitConfig controls branch management on feature creation.
type GitConfig struct {
	// AutoBranch creates and checks out a {NNN}-{slug} branch when a
	// feature is created.
	AutoBranch bool `toml:"auto_branch"`
}

// DefaultConfig returns the configuration written by init.
func DefaultConfig(name string) *Config {
	return &Config{
		Project: ProjectConfig{Name: name, NumberWidth: artifact.DefaultWidth},
		Git:     GitConfig{AutoBranch: true},
	}
}

// NumberWidth resolves the configured artifact number width, defaulting
// when the config omits or zeroes it.
func (c *Config) NumberWidth() int {
	if c.Project.NumberWidth > 0 {
		return c.Project.NumberWidth
	}
	return artifact.DefaultWidth
}

// LoadConfig reads and parses config.toml under root.
func LoadConfig(root string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(ConfigPath(root), &cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no SpecPulse workspace at %s — run `specpulse init` first", root)
		}
		return nil, fmt.Errorf("parsing %s: %w", ConfigPath(root), err)
	}
	return &cfg, nil
}

// SaveConfig writes config.toml under root, creating .specpulse/ if
// needed.
func SaveConfig(root string, cfg *Config) error {
	if err := os.MkdirAll(PulsePath(root), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", PulsePath(root), err)
	}

	f, err := os.Create(ConfigPath(root))
	if err != nil {
		return fmt.Errorf("creating config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// ServicePrefix resolves a service code to its task prefix. Unknown
// codes fall back to the uppercased code + "-T", so a workspace without
// a [services] table still gets sensible service-scoped names.
func (c *Config) ServicePrefix(code string) string {
	if p, ok := c.Services[code]; ok {
		return p
	}
	return strings.ToUpper(code) + "-T"
}
