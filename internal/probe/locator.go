package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mj1618/focusprobe/internal/model"
	"github.com/mj1618/focusprobe/internal/platform"
)

// SearchWindow is a located Go to Class popup. The window is borrowed from
// the host process and is only valid until the popup closes.
type SearchWindow struct {
	Window   model.Window    `yaml:"window"   json:"window"`
	Label    *model.Element  `yaml:"label"    json:"label"`
	Elements []model.Element `yaml:"elements" json:"elements"`
}

// Locator finds the open window whose widget tree contains a label with
// exactly the configured text.
type Locator struct {
	Reader      platform.Reader
	Idle        platform.IdleWaiter
	Label       string
	Scope       platform.ListOptions
	IdleTimeout time.Duration
	Logger      *slog.Logger
}

// NewLocator returns a locator for cfg's label and IDE scope.
func NewLocator(p *platform.Provider, cfg Config, logger *slog.Logger) *Locator {
	return &Locator{
		Reader:      p.Reader,
		Idle:        p.IdleWaiter,
		Label:       cfg.Label,
		Scope:       cfg.scope(),
		IdleTimeout: cfg.IdleTimeout,
		Logger:      logger,
	}
}

// Find returns the first matching window in enumeration order. When nothing
// matches it waits once for the UI to go idle and looks again; a second miss
// is a *LookupError.
func (l *Locator) Find(ctx context.Context) (*SearchWindow, error) {
	sw, err := l.FindOnce()
	if !IsLookupError(err) {
		return sw, err
	}

	l.logger().Debug("search window not found, waiting for idle", "label", l.Label)
	if l.Idle == nil {
		return nil, err
	}
	if err := l.Idle.WaitForIdle(ctx, l.IdleTimeout); err != nil {
		return nil, fmt.Errorf("waiting for idle: %w", err)
	}
	return l.FindOnce()
}

// FindOnce performs a single pass over the open windows.
func (l *Locator) FindOnce() (*SearchWindow, error) {
	windows, err := l.Reader.ListWindows(l.Scope)
	if err != nil {
		return nil, fmt.Errorf("listing windows: %w", err)
	}

	for _, w := range windows {
		elements, err := l.Reader.ReadElements(platform.ReadOptions{PID: w.PID, WindowID: w.ID})
		if err != nil {
			l.logger().Debug("skipping unreadable window", "window_id", w.ID, "title", w.Title, "error", err)
			continue
		}
		if label := findLabel(elements, l.Label); label != nil {
			return &SearchWindow{Window: w, Label: label, Elements: elements}, nil
		}
	}
	return nil, &LookupError{Target: SearchWindowTarget}
}

func (l *Locator) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}

// findLabel returns the first label, breadth-first, whose text equals text.
func findLabel(elements []model.Element, text string) *model.Element {
	for _, el := range model.FindAllBFS(elements, model.RoleLabel) {
		if el.Text() == text {
			return el
		}
	}
	return nil
}

// CheckSearchField asserts that the popup's text field holds exactly expected.
// The field is the first text-entry element in breadth-first order.
func CheckSearchField(sw *SearchWindow, expected string) (*model.Element, error) {
	if sw == nil {
		return nil, errors.New("no search window")
	}
	field := model.FindFirstBFS(sw.Elements, func(el *model.Element) bool {
		return el.Role == model.RoleInput
	})
	if field == nil {
		return nil, &LookupError{Target: SearchFieldTarget}
	}
	if field.Value != expected {
		return field, &AssertionError{Expected: expected, Actual: field.Value}
	}
	return field, nil
}
