package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mj1618/focusprobe/internal/model"
	"github.com/mj1618/focusprobe/internal/platform"
	"github.com/mj1618/focusprobe/internal/platform/fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openPopup(t *testing.T, d *fake.Desktop, text string) {
	t.Helper()
	require.NoError(t, d.FocusWindow(platform.FocusOptions{}))
	require.NoError(t, d.KeyCombo([]string{"ctrl", "n"}))
	require.NoError(t, d.TypeText(text, 0))
}

func TestLocator_FindsWindowWithExactLabel(t *testing.T) {
	d := newDesktop(fake.Options{})
	openPopup(t, d, "Main")

	loc := NewLocator(d.Provider(), testConfig(t), nil)
	sw, err := loc.Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.DialogWindowID, sw.Window.ID)
	require.NotNil(t, sw.Label)
	assert.Equal(t, DefaultLabel, sw.Label.Title)
	assert.Equal(t, 0, d.IdleWaits(), "no idle wait when the first pass succeeds")
}

func TestLocator_RejectsNearMissLabels(t *testing.T) {
	for _, decoy := range []string{"enter class name:", "Enter class name", "Enter class name: ", "Enter file name:"} {
		t.Run(decoy, func(t *testing.T) {
			d := newDesktop(fake.Options{Decoy: decoy})
			openPopup(t, d, "Main")

			sw, err := NewLocator(d.Provider(), testConfig(t), nil).Find(context.Background())
			require.NoError(t, err)
			assert.Equal(t, fake.DialogWindowID, sw.Window.ID)
		})
	}
}

func TestLocator_FirstMatchInEnumerationOrderWins(t *testing.T) {
	d := newDesktop(fake.Options{Decoy: DefaultLabel})
	openPopup(t, d, "Main")

	sw, err := NewLocator(d.Provider(), testConfig(t), nil).Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.DecoyWindowID, sw.Window.ID)
}

func TestLocator_RetriesOnceAfterIdle(t *testing.T) {
	d := newDesktop(fake.Options{RevealOnIdle: true})
	openPopup(t, d, "Main")

	loc := NewLocator(d.Provider(), testConfig(t), nil)
	_, err := loc.FindOnce()
	require.True(t, IsLookupError(err))

	sw, err := loc.Find(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fake.DialogWindowID, sw.Window.ID)
	assert.Equal(t, 1, d.IdleWaits())
}

func TestLocator_LookupErrorAfterOneIdleWait(t *testing.T) {
	d := newDesktop(fake.Options{NeverShowDialog: true})
	openPopup(t, d, "Main")

	_, err := NewLocator(d.Provider(), testConfig(t), nil).Find(context.Background())
	require.Error(t, err)

	var le *LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, SearchWindowTarget, le.Target)
	assert.Equal(t, "unable to find GoToClass search window", err.Error())
	assert.Equal(t, 1, d.IdleWaits())
}

func TestLocator_ScopedToIDE(t *testing.T) {
	d := newDesktop(fake.Options{})
	openPopup(t, d, "Main")

	cfg := testConfig(t)
	cfg.App = "Safari"
	_, err := NewLocator(d.Provider(), cfg, nil).Find(context.Background())
	assert.True(t, IsLookupError(err))
}

// flakyReader fails to read one window and lists windows in a fixed order.
type flakyReader struct {
	windows  []model.Window
	trees    map[int][]model.Element
	failRead map[int]bool
	listErr  error
}

func (r *flakyReader) ListWindows(platform.ListOptions) ([]model.Window, error) {
	return r.windows, r.listErr
}

func (r *flakyReader) ReadElements(opts platform.ReadOptions) ([]model.Element, error) {
	if r.failRead[opts.WindowID] {
		return nil, errors.New("AXError -25204")
	}
	return r.trees[opts.WindowID], nil
}

func TestLocator_SkipsUnreadableWindows(t *testing.T) {
	r := &flakyReader{
		windows: []model.Window{{ID: 1}, {ID: 2}},
		trees: map[int][]model.Element{
			1: {{ID: 1, Role: model.RoleLabel, Title: DefaultLabel}},
			2: {{ID: 1, Role: "group", Children: []model.Element{
				{ID: 2, Role: model.RoleLabel, Value: DefaultLabel},
			}}},
		},
		failRead: map[int]bool{1: true},
	}
	loc := &Locator{Reader: r, Label: DefaultLabel}
	sw, err := loc.FindOnce()
	require.NoError(t, err)
	assert.Equal(t, 2, sw.Window.ID)
	assert.Equal(t, 2, sw.Label.ID)
}

func TestLocator_ListErrorIsNotRetried(t *testing.T) {
	r := &flakyReader{listErr: errors.New("window server unavailable")}
	idle := &countingIdle{}
	loc := &Locator{Reader: r, Idle: idle, Label: DefaultLabel}
	_, err := loc.Find(context.Background())
	require.Error(t, err)
	assert.False(t, IsLookupError(err))
	assert.Equal(t, 0, idle.calls)
}

type countingIdle struct{ calls int }

func (c *countingIdle) WaitForIdle(ctx context.Context, _ time.Duration) error {
	c.calls++
	return ctx.Err()
}
