package platform

import (
	"context"
	"time"

	"github.com/mj1618/focusprobe/internal/model"
)

// Reader reads windows and their UI element trees from the OS accessibility layer.
type Reader interface {
	// ReadElements returns the element tree for the specified target.
	ReadElements(opts ReadOptions) ([]model.Element, error)

	// ListWindows returns all on-screen windows in enumeration order.
	ListWindows(opts ListOptions) ([]model.Window, error)
}

// Inputter simulates mouse and keyboard input.
type Inputter interface {
	Click(x, y int, button MouseButton, count int) error
	TypeText(text string, delayMs int) error
	KeyCombo(keys []string) error
}

// WindowManager manages window focus.
type WindowManager interface {
	FocusWindow(opts FocusOptions) error
	GetFrontmostApp() (string, int, error)
}

// Screenshotter captures screenshots.
type Screenshotter interface {
	// CaptureWindow captures a window, or the full screen when no target is
	// given, and returns PNG bytes.
	CaptureWindow(opts ScreenshotOptions) ([]byte, error)
}

// IdleWaiter waits for the host UI to stop changing.
type IdleWaiter interface {
	// WaitForIdle blocks until the UI is idle, timeout elapses, or ctx is done.
	// Reaching the timeout is not an error.
	WaitForIdle(ctx context.Context, timeout time.Duration) error
}

// CaretSetter moves the text caret inside an editable element.
type CaretSetter interface {
	SetCaret(opts CaretOptions) error
}
