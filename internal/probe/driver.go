package probe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mj1618/focusprobe/internal/artifact"
	"github.com/mj1618/focusprobe/internal/model"
	"github.com/mj1618/focusprobe/internal/platform"
)

// State is a step of the driver's open/type/verify/close cycle.
type State int

const (
	StateIdle State = iota
	StateEditorFocused
	StateDialogOpen
	StateTextTyped
	StateVerified
	StateDialogClosed
	StateDone
)

var stateNames = [...]string{
	StateIdle:          "idle",
	StateEditorFocused: "editor-focused",
	StateDialogOpen:    "dialog-open",
	StateTextTyped:     "text-typed",
	StateVerified:      "verified",
	StateDialogClosed:  "dialog-closed",
	StateDone:          "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// editorTarget is the IDE editor the driver returns focus to.
type editorTarget struct {
	window  model.Window
	element model.Element
}

// Driver runs the Go to Class focus regression against one IDE.
type Driver struct {
	cfg      Config
	provider *platform.Provider
	locator  *Locator
	log      *slog.Logger
	now      func() time.Time

	state      State
	editor     *editorTarget
	lastWindow *SearchWindow
	lastField  *model.Element
}

// NewDriver validates cfg and the provider and returns a driver in StateIdle.
func NewDriver(p *platform.Provider, cfg Config, logger *slog.Logger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if p == nil {
		return nil, platform.ErrUnsupported
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Driver{
		cfg:      cfg,
		provider: p,
		locator:  NewLocator(p, cfg, logger),
		log:      logger,
		now:      time.Now,
	}, nil
}

// State returns the driver's current state.
func (d *Driver) State() State {
	return d.state
}

// Run performs cfg.Iterations cycles. The report is always returned; the
// error is the first lookup or assertion failure, wrapped with its iteration.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	report := NewReport(d.cfg, d.now())
	err := d.run(ctx, report)
	report.Finish(err, d.now())
	if err != nil {
		d.log.Error("probe failed", "run_id", report.RunID, "state", d.state, "error", err)
		if IsLookupError(err) || IsAssertionError(err) {
			report.Artifact = d.saveFailure(report, len(report.Results)-1)
		}
		return report, err
	}
	d.log.Info("probe passed", "run_id", report.RunID, "iterations", len(report.Results), "elapsed", report.Elapsed)
	return report, nil
}

func (d *Driver) run(ctx context.Context, report *Report) error {
	if d.cfg.LockPath != "" {
		lock, err := AcquireLock(d.cfg.LockPath)
		if err != nil {
			return err
		}
		defer func() { _ = lock.Unlock() }()
	}

	if d.cfg.BackgroundLoad > 0 {
		d.log.Info("starting background load", "workers", d.cfg.BackgroundLoad)
		stop := StartBackgroundLoad(ctx, d.cfg.BackgroundLoad)
		defer stop()
	}

	d.log.Info("probe starting", "run_id", report.RunID, "app", d.cfg.App, "pid", d.cfg.PID, "iterations", d.cfg.Iterations)
	if err := platform.Sleep(ctx, d.cfg.InitialSettle); err != nil {
		return err
	}
	if err := d.provider.WindowManager.FocusWindow(platform.FocusOptions{App: d.cfg.App, PID: d.cfg.PID}); err != nil {
		return fmt.Errorf("focusing IDE: %w", err)
	}
	if err := d.focusEditor(); err != nil {
		return err
	}

	for i := 0; i < d.cfg.Iterations; i++ {
		start := d.now()
		err := d.iterate(ctx, i)
		res := IterationResult{
			Iteration: i,
			Pass:      err == nil,
			Elapsed:   formatElapsed(d.now().Sub(start)),
		}
		if d.lastField != nil {
			res.Observed = d.lastField.Value
		}
		if err != nil {
			res.Error = err.Error()
			report.Add(res)
			return fmt.Errorf("iteration %d: %w", i, err)
		}
		report.Add(res)
	}

	d.transition(StateDone)
	return nil
}

// iterate walks EditorFocused → DialogOpen → TextTyped → Verified →
// DialogClosed → EditorFocused once.
func (d *Driver) iterate(ctx context.Context, i int) error {
	d.lastWindow, d.lastField = nil, nil
	log := d.log.With("iteration", i)

	if err := ctx.Err(); err != nil {
		return err
	}
	if d.cfg.Prelude != "" {
		if err := d.press(d.cfg.Prelude); err != nil {
			return err
		}
	}
	if err := d.press(d.cfg.Shortcut); err != nil {
		return err
	}
	d.transition(StateDialogOpen)

	if err := d.provider.Inputter.TypeText(d.cfg.Text, int(d.cfg.KeyDelay/time.Millisecond)); err != nil {
		return fmt.Errorf("typing: %w", err)
	}
	if err := platform.Sleep(ctx, d.cfg.Settle); err != nil {
		return err
	}
	d.transition(StateTextTyped)

	sw, err := d.locator.Find(ctx)
	if err != nil {
		return err
	}
	d.lastWindow = sw
	field, err := CheckSearchField(sw, d.cfg.Text)
	d.lastField = field
	if err != nil {
		return err
	}
	log.Debug("search field verified", "window_id", sw.Window.ID, "value", field.Value)
	d.transition(StateVerified)

	if err := d.press(d.cfg.CloseKey); err != nil {
		return err
	}
	d.transition(StateDialogClosed)

	return d.focusEditor()
}

func (d *Driver) transition(to State) {
	d.log.Debug("state transition", "from", d.state, "to", to)
	d.state = to
}

func (d *Driver) press(combo string) error {
	keys, err := platform.ParseKeyCombo(combo)
	if err != nil {
		return err
	}
	if err := d.provider.Inputter.KeyCombo(keys); err != nil {
		return fmt.Errorf("pressing %s: %w", combo, err)
	}
	return nil
}

// focusEditor clicks the editor and moves its caret to the configured offset.
func (d *Driver) focusEditor() error {
	editor, err := d.findEditor()
	if err != nil {
		return err
	}
	d.editor = editor

	b := editor.element.Bounds
	if err := d.provider.Inputter.Click(b[0]+b[2]/2, b[1]+b[3]/2, platform.MouseLeft, 1); err != nil {
		return fmt.Errorf("clicking editor: %w", err)
	}
	if d.provider.CaretSetter != nil {
		err := d.provider.CaretSetter.SetCaret(platform.CaretOptions{
			PID:       editor.window.PID,
			WindowID:  editor.window.ID,
			ElementID: editor.element.ID,
			Offset:    d.cfg.EditorOffset,
		})
		if err != nil {
			return fmt.Errorf("moving caret: %w", err)
		}
	}
	d.transition(StateEditorFocused)
	return nil
}

// findEditor returns the largest text-entry element among the IDE's windows,
// skipping any window that shows the search label.
func (d *Driver) findEditor() (*editorTarget, error) {
	windows, err := d.provider.Reader.ListWindows(d.cfg.scope())
	if err != nil {
		return nil, fmt.Errorf("listing windows: %w", err)
	}

	var best *editorTarget
	for _, w := range windows {
		elements, err := d.provider.Reader.ReadElements(platform.ReadOptions{PID: w.PID, WindowID: w.ID})
		if err != nil {
			continue
		}
		if findLabel(elements, d.cfg.Label) != nil {
			continue
		}
		for _, el := range model.FindAllBFS(elements, model.RoleInput) {
			if best == nil || el.Area() > best.element.Area() {
				best = &editorTarget{window: w, element: *el}
			}
		}
	}
	if best == nil {
		return nil, &LookupError{Target: EditorTarget}
	}
	return best, nil
}

// saveFailure captures the IDE window with the last located popup and field
// outlined. It returns the artifact path, or "" when nothing was written.
func (d *Driver) saveFailure(report *Report, iteration int) string {
	if d.cfg.ArtifactDir == "" || d.provider.Screenshotter == nil {
		return ""
	}

	opts := platform.ScreenshotOptions{App: d.cfg.App, PID: d.cfg.PID, Scale: 1.0}
	windowBounds := [4]int{}
	if d.editor != nil {
		opts.WindowID = d.editor.window.ID
		windowBounds = d.editor.window.Bounds
	}
	capture, err := d.provider.Screenshotter.CaptureWindow(opts)
	if err != nil {
		d.log.Warn("failure capture skipped", "error", err)
		return ""
	}

	var highlights []artifact.Highlight
	if sw := d.lastWindow; sw != nil {
		highlights = append(highlights, artifact.Highlight{Bounds: sw.Window.Bounds, Caption: "search window"})
		if sw.Label != nil {
			highlights = append(highlights, artifact.Highlight{Bounds: sw.Label.Bounds, Caption: sw.Label.Text()})
		}
	}
	if d.lastField != nil {
		highlights = append(highlights, artifact.Highlight{Bounds: d.lastField.Bounds, Caption: fmt.Sprintf("%q", d.lastField.Value)})
	}

	name := fmt.Sprintf("failure-%s-%d", report.RunID, iteration)
	path, err := artifact.SaveFailure(d.cfg.ArtifactDir, name, capture, windowBounds, highlights)
	if err != nil {
		d.log.Warn("failure artifact not written", "error", err)
		return ""
	}
	d.log.Info("failure artifact written", "path", path)
	return path
}
