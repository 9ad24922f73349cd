package probe

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireLock_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "focusprobe.lock")
	first, err := AcquireLock(path)
	require.NoError(t, err)

	_, err = AcquireLock(path)
	require.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Unlock())
	second, err := AcquireLock(path)
	require.NoError(t, err)
	require.NoError(t, second.Unlock())
}

func TestStartBackgroundLoad_Stops(t *testing.T) {
	stop := StartBackgroundLoad(context.Background(), 3)
	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("background load did not stop")
	}
}

func TestStartBackgroundLoad_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stop := StartBackgroundLoad(ctx, 1)
	cancel()
	stop()
}

func TestReport_Lifecycle(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cfg := DefaultConfig()
	cfg.App = "IntelliJ IDEA"
	r := NewReport(cfg, start)

	_, err := uuid.Parse(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, "run", r.Action)
	assert.Equal(t, 11, r.Iterations)

	r.Add(IterationResult{Iteration: 0, Pass: true})
	r.Add(IterationResult{Iteration: 1, Pass: false, Error: "boom"})
	assert.Equal(t, 1, r.Passed())

	r.Finish(errors.New("iteration 1: boom"), start.Add(1500*time.Millisecond))
	assert.False(t, r.OK)
	assert.Equal(t, "iteration 1: boom", r.Error)
	assert.Equal(t, "1.5s", r.Elapsed)

	r2 := NewReport(cfg, start)
	r2.Finish(nil, start)
	assert.True(t, r2.OK)
	assert.NotEqual(t, r.RunID, r2.RunID)
}

func TestErrorKinds(t *testing.T) {
	lookup := &LookupError{Target: EditorTarget}
	assert.Equal(t, "unable to find editor", lookup.Error())
	assert.True(t, IsLookupError(lookup))
	assert.False(t, IsAssertionError(lookup))

	mismatch := &AssertionError{Expected: "a", Actual: "b"}
	assert.Equal(t, `search field text mismatch: expected "a" but got "b"`, mismatch.Error())
	assert.True(t, IsAssertionError(errors.Join(errors.New("ctx"), mismatch)))
}
