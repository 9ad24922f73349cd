package probe

import (
	"path/filepath"
	"testing"

	"github.com/mj1618/focusprobe/internal/platform/fake"
)

// testConfig returns the stock run with every pause removed and a private
// lock file, matching the simulated IDE's default keymap.
func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.App = "IntelliJ IDEA"
	cfg.Prelude = ""
	cfg.Shortcut = "ctrl+n"
	cfg.KeyDelay = 0
	cfg.Settle = 0
	cfg.InitialSettle = 0
	cfg.IdleTimeout = 0
	cfg.LockPath = filepath.Join(t.TempDir(), "focusprobe.lock")
	return cfg
}

func newDesktop(opts fake.Options) *fake.Desktop {
	return fake.NewDesktop(opts)
}
