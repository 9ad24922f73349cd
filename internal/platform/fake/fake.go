// Package fake provides an in-memory desktop hosting a simulated IDE. It
// implements every platform backend so the probe can run without an OS
// accessibility layer, in tests and under --simulate.
package fake

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"
	"time"

	"github.com/mj1618/focusprobe/internal/model"
	"github.com/mj1618/focusprobe/internal/platform"
)

// Window and element IDs of the simulated desktop.
const (
	FrameWindowID  = 100
	DialogWindowID = 200
	DecoyWindowID  = 300

	editorElementID = 3
	fieldElementID  = 23
)

var (
	frameBounds  = [4]int{0, 0, 1280, 800}
	editorBounds = [4]int{240, 60, 1000, 700}
	dialogBounds = [4]int{390, 150, 500, 90}
)

const sampleSource = `public class Main {
    public static void main(String[] args) {
        System.out.println("Hello, World!");
    }
}
`

// Options configures the simulated IDE.
type Options struct {
	App      string // Application name reported for every window
	PID      int
	Shortcut string // Key combo that opens the Go to Class popup
	Label    string // Label text shown in the popup

	// FocusLossAfter makes the popup open without keyboard focus from the
	// n-th opening onwards (1-based), so typed text lands in the editor.
	// Zero disables the regression.
	FocusLossAfter int

	// RevealOnIdle keeps the popup off the window list until the first
	// WaitForIdle after it was opened.
	RevealOnIdle bool

	// NeverShowDialog keeps the popup off the window list entirely.
	NeverShowDialog bool

	// Decoy adds a window listed before the popup that carries a label with
	// this text and an empty text field.
	Decoy string

	// Query starts the desktop with the IDE active and the popup already
	// open, its field holding this text.
	Query string
}

// DefaultOptions returns options for a well-behaved IDE.
func DefaultOptions() Options {
	return Options{
		App:      "IntelliJ IDEA",
		PID:      4242,
		Shortcut: "ctrl+n",
		Label:    "Enter class name:",
	}
}

// Desktop is a simulated desktop running a single IDE process.
type Desktop struct {
	mu   sync.Mutex
	opts Options

	appActive     bool
	editorText    string
	caret         int
	editorFocused bool

	dialogOpen    bool
	dialogVisible bool
	fieldFocused  bool
	field         string

	opens     int
	idleWaits int
	combos    []string
}

// NewDesktop creates a simulated desktop. Zero-valued fields of opts are
// filled from DefaultOptions.
func NewDesktop(opts Options) *Desktop {
	def := DefaultOptions()
	if opts.App == "" {
		opts.App = def.App
	}
	if opts.PID == 0 {
		opts.PID = def.PID
	}
	if opts.Shortcut == "" {
		opts.Shortcut = def.Shortcut
	}
	if opts.Label == "" {
		opts.Label = def.Label
	}
	if keys, err := platform.ParseKeyCombo(opts.Shortcut); err == nil {
		opts.Shortcut = strings.Join(keys, "+")
	}
	d := &Desktop{opts: opts, editorText: sampleSource}
	if opts.Query != "" {
		d.appActive = true
		d.opens = 1
		d.dialogOpen = true
		d.dialogVisible = !opts.NeverShowDialog
		d.fieldFocused = true
		d.field = opts.Query
	}
	return d
}

// Provider returns a platform.Provider backed by the desktop.
func (d *Desktop) Provider() *platform.Provider {
	return &platform.Provider{
		Reader:        d,
		Inputter:      d,
		WindowManager: d,
		Screenshotter: d,
		IdleWaiter:    d,
		CaretSetter:   d,
	}
}

// ListWindows implements platform.Reader.
func (d *Desktop) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if opts.PID != 0 && opts.PID != d.opts.PID {
		return []model.Window{}, nil
	}
	if opts.App != "" && !strings.EqualFold(opts.App, d.opts.App) {
		return []model.Window{}, nil
	}

	windows := []model.Window{{
		App: d.opts.App, PID: d.opts.PID, ID: FrameWindowID,
		Title: "demo - Main.java", Bounds: frameBounds,
		Focused: d.appActive && !d.dialogOpen,
	}}
	if d.opts.Decoy != "" {
		windows = append(windows, model.Window{
			App: d.opts.App, PID: d.opts.PID, ID: DecoyWindowID,
			Title: "Find in Path", Bounds: [4]int{300, 300, 400, 80},
		})
	}
	if d.dialogOpen && d.dialogVisible {
		windows = append(windows, model.Window{
			App: d.opts.App, PID: d.opts.PID, ID: DialogWindowID,
			Bounds: dialogBounds, Focused: d.appActive,
		})
	}
	return windows, nil
}

// ReadElements implements platform.Reader.
func (d *Desktop) ReadElements(opts platform.ReadOptions) ([]model.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if opts.PID != 0 && opts.PID != d.opts.PID {
		return nil, fmt.Errorf("no process with PID %d", opts.PID)
	}

	var tree []model.Element
	switch opts.WindowID {
	case 0, FrameWindowID:
		tree = d.frameTree()
	case DialogWindowID:
		if !d.dialogOpen || !d.dialogVisible {
			return nil, fmt.Errorf("window %d is gone", opts.WindowID)
		}
		tree = d.dialogTree()
	case DecoyWindowID:
		if d.opts.Decoy == "" {
			return nil, fmt.Errorf("window %d is gone", opts.WindowID)
		}
		tree = d.decoyTree()
	default:
		return nil, fmt.Errorf("window %d is gone", opts.WindowID)
	}
	return model.FilterElements(tree, opts.Roles), nil
}

func (d *Desktop) frameTree() []model.Element {
	return []model.Element{{
		ID: 1, Role: model.RoleWindow, Title: "demo - Main.java", Bounds: frameBounds,
		Children: []model.Element{
			{ID: 2, Role: "group", Bounds: [4]int{0, 60, 240, 700}, Children: []model.Element{
				{ID: 4, Role: model.RoleLabel, Title: "Project", Bounds: [4]int{10, 64, 80, 20}},
				{ID: 5, Role: model.RoleInput, Value: "", Bounds: [4]int{10, 90, 220, 24}},
			}},
			{ID: 6, Role: "scroll", Bounds: editorBounds, Children: []model.Element{
				{ID: editorElementID, Role: model.RoleInput, Value: d.editorText, Bounds: editorBounds, Focused: d.editorFocused && !d.fieldFocused},
			}},
		},
	}}
}

func (d *Desktop) dialogTree() []model.Element {
	return []model.Element{{
		ID: 20, Role: model.RoleWindow, Bounds: dialogBounds,
		Children: []model.Element{
			{ID: 21, Role: "group", Bounds: [4]int{390, 150, 500, 30}, Children: []model.Element{
				{ID: 22, Role: model.RoleLabel, Title: d.opts.Label, Bounds: [4]int{400, 155, 120, 20}},
				{ID: 24, Role: "chk", Title: "Include non-project classes", Bounds: [4]int{700, 155, 180, 20}},
			}},
			{ID: fieldElementID, Role: model.RoleInput, Value: d.field, Bounds: [4]int{400, 185, 480, 24}, Focused: d.fieldFocused},
		},
	}}
}

func (d *Desktop) decoyTree() []model.Element {
	return []model.Element{{
		ID: 30, Role: model.RoleWindow, Title: "Find in Path", Bounds: [4]int{300, 300, 400, 80},
		Children: []model.Element{
			{ID: 31, Role: model.RoleLabel, Title: d.opts.Decoy, Bounds: [4]int{310, 310, 120, 20}},
			{ID: 32, Role: model.RoleInput, Bounds: [4]int{310, 340, 380, 24}},
		},
	}}
}

// Click implements platform.Inputter. Clicking inside the editor focuses it
// and dismisses an open popup, like a click outside any IDE popup does.
func (d *Desktop) Click(x, y int, _ platform.MouseButton, _ int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !inside(editorBounds, x, y) {
		return nil
	}
	d.closeDialog()
	d.editorFocused = true
	return nil
}

// TypeText implements platform.Inputter.
func (d *Desktop) TypeText(text string, _ int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case !d.appActive:
	case d.dialogOpen && d.fieldFocused:
		d.field += text
	case d.editorFocused:
		d.editorText = d.editorText[:d.caret] + text + d.editorText[d.caret:]
		d.caret += len(text)
	}
	return nil
}

// KeyCombo implements platform.Inputter.
func (d *Desktop) KeyCombo(keys []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	combo := strings.ToLower(strings.Join(keys, "+"))
	d.combos = append(d.combos, combo)
	if !d.appActive {
		return nil
	}
	switch combo {
	case d.opts.Shortcut:
		if d.dialogOpen {
			// A second press toggles the non-project scope and keeps the text.
			return nil
		}
		d.opens++
		d.dialogOpen = true
		d.dialogVisible = !d.opts.RevealOnIdle && !d.opts.NeverShowDialog
		d.field = ""
		d.fieldFocused = d.opts.FocusLossAfter == 0 || d.opens < d.opts.FocusLossAfter
	case "escape", "esc":
		if d.dialogOpen {
			d.closeDialog()
		}
	}
	return nil
}

func (d *Desktop) closeDialog() {
	d.dialogOpen = false
	d.dialogVisible = false
	d.fieldFocused = false
	d.field = ""
}

// FocusWindow implements platform.WindowManager.
func (d *Desktop) FocusWindow(opts platform.FocusOptions) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case opts.PID != 0 && opts.PID != d.opts.PID:
		return fmt.Errorf("no app with PID %d", opts.PID)
	case opts.App != "" && !strings.EqualFold(opts.App, d.opts.App):
		return fmt.Errorf("no windows found for app %q", opts.App)
	case opts.WindowID != 0 && opts.WindowID != FrameWindowID:
		return fmt.Errorf("no window found with ID %d", opts.WindowID)
	}
	d.appActive = true
	return nil
}

// GetFrontmostApp implements platform.WindowManager.
func (d *Desktop) GetFrontmostApp() (string, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.appActive {
		return "Finder", 1, nil
	}
	return d.opts.App, d.opts.PID, nil
}

// WaitForIdle implements platform.IdleWaiter. A popup held back by
// RevealOnIdle appears once the queue drains.
func (d *Desktop) WaitForIdle(ctx context.Context, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.idleWaits++
	if d.dialogOpen && d.opts.RevealOnIdle && !d.opts.NeverShowDialog {
		d.dialogVisible = true
	}
	return ctx.Err()
}

// SetCaret implements platform.CaretSetter. Only the editor accepts a caret.
func (d *Desktop) SetCaret(opts platform.CaretOptions) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if opts.WindowID != 0 && opts.WindowID != FrameWindowID {
		return fmt.Errorf("window %d has no editor", opts.WindowID)
	}
	if opts.ElementID != editorElementID {
		return fmt.Errorf("element %d does not accept a caret", opts.ElementID)
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.editorText) {
		offset = len(d.editorText)
	}
	d.caret = offset
	d.editorFocused = true
	return nil
}

// CaptureWindow implements platform.Screenshotter with a flat rendering of
// the IDE frame, the editor and, when visible, the popup.
func (d *Desktop) CaptureWindow(_ platform.ScreenshotOptions) ([]byte, error) {
	d.mu.Lock()
	visible := d.dialogOpen && d.dialogVisible
	d.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, frameBounds[2], frameBounds[3]))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{R: 60, G: 63, B: 65, A: 255}}, image.Point{}, draw.Src)
	fill(img, editorBounds, color.RGBA{R: 43, G: 43, B: 43, A: 255})
	if visible {
		fill(img, dialogBounds, color.RGBA{R: 70, G: 73, B: 75, A: 255})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

func fill(img *image.RGBA, b [4]int, c color.Color) {
	r := image.Rect(b[0], b[1], b[0]+b[2], b[1]+b[3])
	draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

func inside(b [4]int, x, y int) bool {
	return x >= b[0] && x < b[0]+b[2] && y >= b[1] && y < b[1]+b[3]
}

// Opens reports how many times the popup has been opened.
func (d *Desktop) Opens() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opens
}

// IdleWaits reports how many times WaitForIdle was called.
func (d *Desktop) IdleWaits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.idleWaits
}

// DialogOpen reports whether the popup is open, visible or not.
func (d *Desktop) DialogOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dialogOpen
}

// EditorFocused reports whether the editor holds keyboard focus.
func (d *Desktop) EditorFocused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editorFocused && !d.fieldFocused
}

// Caret returns the editor caret offset.
func (d *Desktop) Caret() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.caret
}

// EditorText returns the editor contents.
func (d *Desktop) EditorText() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.editorText
}

// Combos returns every key combo received, in order.
func (d *Desktop) Combos() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.combos...)
}
