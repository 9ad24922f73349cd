package platform

import (
	"fmt"
	"strings"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// ReadOptions controls which window tree to read.
type ReadOptions struct {
	App      string   // Filter by application name
	WindowID int      // Filter by system window ID (0 = unset)
	PID      int      // Filter by process ID (0 = unset)
	Depth    int      // Max traversal depth (0 = unlimited)
	Roles    []string // Only include these roles (empty = all)
}

// ListOptions controls window listing.
type ListOptions struct {
	PID int    // Filter by PID
	App string // Filter by app name
}

// FocusOptions specifies what to focus.
type FocusOptions struct {
	App      string
	Window   string
	WindowID int
	PID      int
}

// ScreenshotOptions configures what to capture.
type ScreenshotOptions struct {
	App      string  // Capture frontmost window of this app
	WindowID int     // Capture window by system ID
	PID      int     // Capture frontmost window of this PID
	Scale    float64 // Scale factor 0.1-1.0 (default 1.0)
}

// CaretOptions identifies a text element and the caret offset to move to.
type CaretOptions struct {
	PID       int
	WindowID  int
	ElementID int // Element ID from ReadElements output
	Offset    int // Character offset
}

// modifierKeys are the modifier names accepted in key combos.
var modifierKeys = map[string]string{
	"cmd": "cmd", "command": "cmd", "meta": "cmd",
	"ctrl": "ctrl", "control": "ctrl",
	"shift": "shift",
	"alt": "alt", "opt": "alt", "option": "alt",
}

// ParseKeyCombo splits a combo such as "ctrl+shift+n" into normalized,
// lower-case key names. Modifiers are canonicalized (command → cmd,
// control → ctrl, option → alt). Exactly one non-modifier key is required.
func ParseKeyCombo(combo string) ([]string, error) {
	if strings.TrimSpace(combo) == "" {
		return nil, fmt.Errorf("empty key combo")
	}
	var keys []string
	var main string
	for _, part := range strings.Split(combo, "+") {
		k := strings.ToLower(strings.TrimSpace(part))
		if k == "" {
			return nil, fmt.Errorf("invalid key combo %q", combo)
		}
		if mod, ok := modifierKeys[k]; ok {
			keys = append(keys, mod)
			continue
		}
		if main != "" {
			return nil, fmt.Errorf("invalid key combo %q: more than one non-modifier key", combo)
		}
		main = k
	}
	if main == "" {
		return nil, fmt.Errorf("no key specified in combo %q, only modifiers", combo)
	}
	return append(keys, main), nil
}

// GotoClassShortcut returns the default-keymap Go to Class shortcut for goos.
func GotoClassShortcut(goos string) string {
	if goos == "darwin" {
		return "cmd+o"
	}
	return "ctrl+n"
}

// PrimaryShortcut returns key combined with the platform's primary
// modifier: cmd on macOS, ctrl elsewhere.
func PrimaryShortcut(goos, key string) string {
	if goos == "darwin" {
		return "cmd+" + key
	}
	return "ctrl+" + key
}
