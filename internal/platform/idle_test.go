package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mj1618/focusprobe/internal/model"
)

// scriptedReader returns a different window list on each call until the
// script runs out, then repeats the last one.
type scriptedReader struct {
	script [][]model.Window
	calls  int
}

func (r *scriptedReader) ListWindows(ListOptions) ([]model.Window, error) {
	i := r.calls
	if i >= len(r.script) {
		i = len(r.script) - 1
	}
	r.calls++
	return r.script[i], nil
}

func (r *scriptedReader) ReadElements(ReadOptions) ([]model.Element, error) {
	return nil, nil
}

func TestWindowListIdle_StableImmediately(t *testing.T) {
	r := &scriptedReader{script: [][]model.Window{{{ID: 1}}}}
	w := &WindowListIdle{Reader: r, Interval: time.Millisecond}
	if err := w.WaitForIdle(context.Background(), time.Second); err != nil {
		t.Fatal(err)
	}
	if r.calls != 2 {
		t.Errorf("expected 2 listings, got %d", r.calls)
	}
}

func TestWindowListIdle_WaitsForChangesToSettle(t *testing.T) {
	r := &scriptedReader{script: [][]model.Window{
		{{ID: 1}},
		{{ID: 1}, {ID: 2}},
		{{ID: 1}, {ID: 2, Title: "Go to Class"}},
		{{ID: 1}, {ID: 2, Title: "Go to Class"}},
	}}
	w := &WindowListIdle{Reader: r, Interval: time.Millisecond}
	if err := w.WaitForIdle(context.Background(), time.Second); err != nil {
		t.Fatal(err)
	}
	if r.calls != 4 {
		t.Errorf("expected 4 listings, got %d", r.calls)
	}
}

func TestWindowListIdle_TimeoutIsNotAnError(t *testing.T) {
	var script [][]model.Window
	for i := 0; i < 1000; i++ {
		script = append(script, []model.Window{{ID: i}})
	}
	r := &scriptedReader{script: script}
	w := &WindowListIdle{Reader: r, Interval: time.Millisecond}
	if err := w.WaitForIdle(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("timeout should not be an error, got %v", err)
	}
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
