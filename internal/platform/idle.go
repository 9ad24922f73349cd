package platform

import (
	"context"
	"reflect"
	"time"
)

// DefaultIdlePollInterval is how often WindowListIdle re-reads the window list.
const DefaultIdlePollInterval = 100 * time.Millisecond

// WindowListIdle treats the UI as idle once two consecutive window listings
// are identical. It is the accessibility-layer stand-in for an event queue
// that cannot be observed from outside the host process.
type WindowListIdle struct {
	Reader   Reader
	Options  ListOptions
	Interval time.Duration
}

// WaitForIdle polls the window list until it stops changing or timeout elapses.
func (w *WindowListIdle) WaitForIdle(ctx context.Context, timeout time.Duration) error {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultIdlePollInterval
	}
	deadline := time.Now().Add(timeout)

	prev, err := w.Reader.ListWindows(w.Options)
	if err != nil {
		return err
	}
	for time.Now().Before(deadline) {
		if err := Sleep(ctx, interval); err != nil {
			return err
		}
		cur, err := w.Reader.ListWindows(w.Options)
		if err != nil {
			return err
		}
		if reflect.DeepEqual(prev, cur) {
			return nil
		}
		prev = cur
	}
	return nil
}

// Sleep pauses for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
