package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mj1618/focusprobe/internal/platform"
	"gopkg.in/yaml.v3"
)

// Defaults for a probe run.
const (
	DefaultLabel        = "Enter class name:"
	DefaultText         = "hefuihwefwehrf;werfwerfw"
	DefaultIterations   = 11
	DefaultEditorOffset = 89
	DefaultCloseKey     = "escape"
)

// Config describes a probe run. It can be loaded from a YAML or TOML file;
// durations are written as Go duration strings ("500ms").
type Config struct {
	App   string `yaml:"app,omitempty"   toml:"app"   json:"app,omitempty"`
	PID   int    `yaml:"pid,omitempty"   toml:"pid"   json:"pid,omitempty"`
	Label string `yaml:"label"           toml:"label" json:"label"`
	Text  string `yaml:"text"            toml:"text"  json:"text"`

	Iterations int `yaml:"iterations" toml:"iterations" json:"iterations"`

	// Prelude is pressed before Shortcut on every opening. Empty skips it.
	Prelude      string `yaml:"prelude,omitempty" toml:"prelude"       json:"prelude,omitempty"`
	Shortcut     string `yaml:"shortcut"          toml:"shortcut"      json:"shortcut"`
	CloseKey     string `yaml:"close_key"         toml:"close_key"     json:"close_key"`
	EditorOffset int    `yaml:"editor_offset"     toml:"editor_offset" json:"editor_offset"`

	KeyDelay      time.Duration `yaml:"key_delay"      toml:"key_delay"      json:"key_delay"`
	Settle        time.Duration `yaml:"settle"         toml:"settle"         json:"settle"`
	InitialSettle time.Duration `yaml:"initial_settle" toml:"initial_settle" json:"initial_settle"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"   toml:"idle_timeout"   json:"idle_timeout"`

	BackgroundLoad int    `yaml:"background_load,omitempty" toml:"background_load" json:"background_load,omitempty"`
	ArtifactDir    string `yaml:"artifact_dir,omitempty"    toml:"artifact_dir"    json:"artifact_dir,omitempty"`
	ReportPath     string `yaml:"report,omitempty"          toml:"report"          json:"report,omitempty"`
	LockPath       string `yaml:"lock,omitempty"            toml:"lock"            json:"lock,omitempty"`
}

// DefaultConfig returns the configuration of the stock regression run for
// the current OS's default keymap.
func DefaultConfig() Config {
	return Config{
		Label:         DefaultLabel,
		Text:          DefaultText,
		Iterations:    DefaultIterations,
		Prelude:       platform.PrimaryShortcut(runtime.GOOS, "n"),
		Shortcut:      platform.GotoClassShortcut(runtime.GOOS),
		CloseKey:      DefaultCloseKey,
		EditorOffset:  DefaultEditorOffset,
		KeyDelay:      100 * time.Millisecond,
		Settle:        500 * time.Millisecond,
		InitialSettle: time.Second,
		IdleTimeout:   2 * time.Second,
		LockPath:      DefaultLockPath(),
	}
}

// DefaultLockPath is the lock file shared by all probes on this machine.
func DefaultLockPath() string {
	return filepath.Join(os.TempDir(), "focusprobe.lock")
}

// LoadConfig decodes the file at path over base. The format is chosen by
// extension: .toml for TOML, .yaml or .yml for YAML.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config: %w", err)
	}

	cfg := base
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return base, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return base, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		return base, fmt.Errorf("unsupported config format %q (use .yaml, .yml, or .toml)", filepath.Ext(path))
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if c.Label == "" {
		return fmt.Errorf("label must not be empty")
	}
	if c.Text == "" {
		return fmt.Errorf("text must not be empty")
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	if c.EditorOffset < 0 {
		return fmt.Errorf("editor offset must not be negative, got %d", c.EditorOffset)
	}
	if c.BackgroundLoad < 0 {
		return fmt.Errorf("background load must not be negative, got %d", c.BackgroundLoad)
	}
	for name, d := range map[string]time.Duration{
		"key delay":      c.KeyDelay,
		"settle":         c.Settle,
		"initial settle": c.InitialSettle,
		"idle timeout":   c.IdleTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", name, d)
		}
	}
	if _, err := platform.ParseKeyCombo(c.Shortcut); err != nil {
		return fmt.Errorf("shortcut: %w", err)
	}
	if _, err := platform.ParseKeyCombo(c.CloseKey); err != nil {
		return fmt.Errorf("close key: %w", err)
	}
	if c.Prelude != "" {
		if _, err := platform.ParseKeyCombo(c.Prelude); err != nil {
			return fmt.Errorf("prelude: %w", err)
		}
	}
	return nil
}

// scope returns the window-list filter for the IDE process.
func (c Config) scope() platform.ListOptions {
	return platform.ListOptions{App: c.App, PID: c.PID}
}
