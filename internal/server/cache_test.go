package server

import (
	"context"
	"testing"
	"time"

	"github.com/mj1618/focusprobe/internal/model"
	"github.com/mj1618/focusprobe/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReader struct {
	reads int
}

func (r *countingReader) ListWindows(platform.ListOptions) ([]model.Window, error) {
	return []model.Window{{ID: 1}}, nil
}

func (r *countingReader) ReadElements(opts platform.ReadOptions) ([]model.Element, error) {
	r.reads++
	return model.FilterElements([]model.Element{{
		ID: 1, Role: model.RoleWindow,
		Children: []model.Element{
			{ID: 2, Role: model.RoleLabel, Title: "Enter class name:"},
			{ID: 3, Role: model.RoleInput},
		},
	}}, opts.Roles), nil
}

func TestTreeCache_ServesWithinTTL(t *testing.T) {
	r := &countingReader{}
	c := NewTreeCache(r, nil, time.Second)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	opts := platform.ReadOptions{PID: 1, WindowID: 1}
	_, err := c.ReadElements(opts)
	require.NoError(t, err)
	_, err = c.ReadElements(opts)
	require.NoError(t, err)
	assert.Equal(t, 1, r.reads)

	now = now.Add(2 * time.Second)
	_, err = c.ReadElements(opts)
	require.NoError(t, err)
	assert.Equal(t, 2, r.reads)
}

func TestTreeCache_FiltersAfterCache(t *testing.T) {
	r := &countingReader{}
	c := NewTreeCache(r, nil, time.Minute)

	all, err := c.ReadElements(platform.ReadOptions{WindowID: 1})
	require.NoError(t, err)
	require.Len(t, all, 1)

	inputs, err := c.ReadElements(platform.ReadOptions{WindowID: 1, Roles: []string{model.RoleInput}})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, 3, inputs[0].ID)
	assert.Equal(t, 1, r.reads)
}

func TestTreeCache_ZeroTTLDisables(t *testing.T) {
	r := &countingReader{}
	c := NewTreeCache(r, nil, 0)
	for i := 0; i < 3; i++ {
		_, err := c.ReadElements(platform.ReadOptions{WindowID: 1})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, r.reads)
	assert.Zero(t, c.Len())
}

func TestTreeCache_Invalidation(t *testing.T) {
	r := &countingReader{}
	c := NewTreeCache(r, nil, time.Minute)

	_, _ = c.ReadElements(platform.ReadOptions{App: "IntelliJ IDEA"})
	_, _ = c.ReadElements(platform.ReadOptions{App: "Safari"})
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.WaitForIdle(context.Background(), 0))
	assert.Zero(t, c.Len())
}
