// Package version holds build metadata, set at link time with
// -ldflags "-X github.com/mj1618/focusprobe/internal/version.Version=...".
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
