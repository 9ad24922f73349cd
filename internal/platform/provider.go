package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Reader        Reader
	Inputter      Inputter
	WindowManager WindowManager
	Screenshotter Screenshotter
	IdleWaiter    IdleWaiter
	CaretSetter   CaretSetter
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("focusprobe is not supported on %s/%s; supported: darwin/amd64, darwin/arm64 (use --simulate elsewhere)", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func() (*Provider, error)

// RequestPermissionsFunc is set by platform-specific packages via init().
// It triggers OS permission prompts (e.g. screen recording) at startup.
var RequestPermissionsFunc func()

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

// Validate reports the first backend the probe needs but the provider lacks.
func (p *Provider) Validate() error {
	switch {
	case p.Reader == nil:
		return fmt.Errorf("reader not available on this platform")
	case p.Inputter == nil:
		return fmt.Errorf("input simulation not available on this platform")
	case p.WindowManager == nil:
		return fmt.Errorf("window management not available on this platform")
	case p.IdleWaiter == nil:
		return fmt.Errorf("idle detection not available on this platform")
	}
	return nil
}
