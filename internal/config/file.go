package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents aurora.yaml. Every field is optional.
type Config struct {
	// Color selects diagnostic colouring: auto (default), always or never.
	Color string `yaml:"color,omitempty"`

	// Prompt is the REPL prompt.
	Prompt string `yaml:"prompt,omitempty"`

	// History is the REPL history file. Relative paths and a leading "~/"
	// resolve against the home directory.
	History string `yaml:"history,omitempty"`

	// Sandbox leaves out the natives that touch files, processes and
	// databases.
	Sandbox bool `yaml:"sandbox,omitempty"`

	// Verbose traces pipeline stages on stderr.
	Verbose bool `yaml:"verbose,omitempty"`

	Stdlib StdlibConfig `yaml:"stdlib,omitempty"`
}

type StdlibConfig struct {
	// Disable lists native groups that are not loaded (e.g. "sql", "process").
	Disable []string `yaml:"disable,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and validates the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses aurora.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for aurora.yaml starting from dir and walking up to
// parent directories. It returns "" and a nil error when there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	switch c.Color {
	case "", ColorModeAuto, ColorModeAlways, ColorModeNever:
	default:
		return fmt.Errorf("%s: color: expected %s, %s or %s, got %q",
			path, ColorModeAuto, ColorModeAlways, ColorModeNever, c.Color)
	}
	for i, group := range c.Stdlib.Disable {
		if !slices.Contains(AllGroups, group) {
			return fmt.Errorf("%s: stdlib.disable[%d]: unknown group %q (known: %s)",
				path, i, group, strings.Join(AllGroups, ", "))
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Color == "" {
		c.Color = ColorModeAuto
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.History == "" {
		c.History = DefaultHistoryFile
	}
}

// DisabledGroups returns the native groups that must not be loaded,
// including the sandboxed ones when Sandbox is set.
func (c *Config) DisabledGroups() map[string]bool {
	disabled := make(map[string]bool)
	for _, g := range c.Stdlib.Disable {
		disabled[g] = true
	}
	if c.Sandbox {
		for _, g := range SandboxedGroups {
			disabled[g] = true
		}
	}
	return disabled
}

// HistoryPath resolves History against the home directory. It returns ""
// when no home directory is available for a relative path.
func (c *Config) HistoryPath() string {
	h := c.History
	if filepath.IsAbs(h) {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	h = strings.TrimPrefix(h, "~/")
	return filepath.Join(home, h)
}
