//go:build darwin && cgo

package darwin

import "github.com/mj1618/focusprobe/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		reader := NewReader()
		return &platform.Provider{
			Reader:        reader,
			Inputter:      NewInputter(),
			WindowManager: NewWindowManager(reader),
			Screenshotter: NewScreenshotter(reader),
			IdleWaiter:    &platform.WindowListIdle{Reader: reader},
			CaretSetter:   NewCaretSetter(reader),
		}, nil
	}
	platform.RequestPermissionsFunc = RequestPermissions
}
