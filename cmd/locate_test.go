package cmd

import (
	"testing"

	"github.com/mj1618/focusprobe/internal/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLocateCommand_Simulated(t *testing.T) {
	out, err := execute(t, "locate", "--simulate", "--flat")
	require.NoError(t, err)

	var res probe.LocateResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.True(t, res.OK)
	require.NotNil(t, res.Field)
	assert.Equal(t, probe.DefaultText, res.Field.Value)
	assert.NotEmpty(t, res.Flat)
}

func TestLocateCommand_WrongLabel(t *testing.T) {
	out, err := execute(t, "locate", "--simulate", "--label", "Enter file name:", "--idle-timeout", "0")
	require.Error(t, err)
	assert.True(t, probe.IsLookupError(err))
	assert.Contains(t, out, "unable to find GoToClass search window")
}

func TestLocateCommand_EmptyLabel(t *testing.T) {
	_, err := execute(t, "locate", "--simulate", "--label", "")
	assert.ErrorContains(t, err, "label must not be empty")

	_, err = execute(t, "check", "--simulate", "--label", "")
	assert.ErrorContains(t, err, "label must not be empty")
}

func TestCheckCommand_WrongLabel(t *testing.T) {
	_, err := execute(t, "check", "--simulate", "--label", "enter class name:", "--idle-timeout", "0")
	require.Error(t, err)
	assert.True(t, probe.IsLookupError(err))
}

func TestCheckCommand_Simulated(t *testing.T) {
	out, err := execute(t, "check", "--simulate")
	require.NoError(t, err)
	var res probe.CheckResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.True(t, res.Pass)

	out, err = execute(t, "check", "--simulate", "--expect", "HEFUIHWEFWEHRF;WERFWERFW")
	require.Error(t, err)
	assert.True(t, probe.IsAssertionError(err))
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.False(t, res.Pass)
	assert.Equal(t, probe.DefaultText, res.Actual)
}

func TestFocusCommand(t *testing.T) {
	_, err := execute(t, "focus", "--simulate")
	assert.ErrorContains(t, err, "specify --app")

	out, err := execute(t, "focus", "--simulate", "--app", "IntelliJ IDEA")
	require.NoError(t, err)
	var res FocusResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.True(t, res.OK)
	assert.Equal(t, "focus", res.Action)
	assert.Equal(t, "IntelliJ IDEA", res.Frontmost)

	_, err = execute(t, "focus", "--simulate", "--app", "Safari")
	assert.Error(t, err)
}

func TestServeCommand_Flags(t *testing.T) {
	for _, name := range []string{"transport", "port", "cache-ttl", "app", "pid", "label", "config"} {
		if serveCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag %q not found", name)
		}
	}
}
