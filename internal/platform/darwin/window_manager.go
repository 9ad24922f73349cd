//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework CoreFoundation -framework Foundation
#import <AppKit/AppKit.h>
#include "axtree.h"

static int ns_activate_app(pid_t pid) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
        if (app == nil) return -1;
        return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 0 : -1;
    }
}

static int ns_get_frontmost_app(char **name, pid_t *pid) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        if (app == nil) return -1;
        *name = strdup(app.localizedName ? app.localizedName.UTF8String : "");
        *pid = app.processIdentifier;
        return 0;
    }
}

// ax_raise_window raises the window with the given CGWindowID, or the
// first window whose title contains title, then activates its app.
static int ax_raise_window(pid_t pid, const char *title, int windowID) {
    CFArrayRef windows = ax_copy_windows(pid, windowID);
    if (windows == NULL) return -1;
    AXUIElementRef target = NULL;
    for (CFIndex i = 0; i < CFArrayGetCount(windows) && target == NULL; i++) {
        AXUIElementRef w = (AXUIElementRef)CFArrayGetValueAtIndex(windows, i);
        if (title == NULL) {
            target = w;
            break;
        }
        char *t = ax_copy_string(w, kAXTitleAttribute);
        if (t != NULL && strcasestr(t, title) != NULL) target = w;
        free(t);
    }
    int rc = -1;
    if (target != NULL && AXUIElementPerformAction(target, kAXRaiseAction) == kAXErrorSuccess) {
        rc = ns_activate_app(pid);
    }
    CFRelease(windows);
    return rc;
}
*/
import "C"
import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/mj1618/focusprobe/internal/platform"
)

// DarwinWindowManager implements the platform.WindowManager interface for macOS.
type DarwinWindowManager struct {
	reader *DarwinReader
}

// NewWindowManager creates a new macOS window manager.
func NewWindowManager(reader *DarwinReader) *DarwinWindowManager {
	return &DarwinWindowManager{reader: reader}
}

func (wm *DarwinWindowManager) FocusWindow(opts platform.FocusOptions) error {
	if err := CheckAccessibilityPermission(); err != nil {
		return err
	}

	pid, err := wm.resolvePID(opts)
	if err != nil {
		return err
	}

	// A specific window is raised through AX; otherwise the app is activated.
	if opts.Window != "" || opts.WindowID > 0 {
		var cTitle *C.char
		if opts.Window != "" {
			cTitle = C.CString(opts.Window)
			defer C.free(unsafe.Pointer(cTitle))
		}
		if C.ax_raise_window(C.pid_t(pid), cTitle, C.int(opts.WindowID)) != 0 {
			return fmt.Errorf("failed to raise window for PID %d", pid)
		}
		return nil
	}

	if C.ns_activate_app(C.pid_t(pid)) != 0 {
		return fmt.Errorf("failed to activate app with PID %d", pid)
	}
	return nil
}

func (wm *DarwinWindowManager) resolvePID(opts platform.FocusOptions) (int, error) {
	if opts.PID != 0 {
		return opts.PID, nil
	}
	if opts.App == "" && opts.WindowID == 0 && opts.Window == "" {
		return 0, fmt.Errorf("could not resolve target: specify --app, --pid, --window, or --window-id")
	}

	windows, err := wm.reader.ListWindows(platform.ListOptions{App: opts.App})
	if err != nil {
		return 0, fmt.Errorf("failed to list windows: %w", err)
	}
	for _, w := range windows {
		switch {
		case opts.WindowID > 0:
			if w.ID == opts.WindowID {
				return w.PID, nil
			}
		case opts.Window != "":
			if strings.Contains(strings.ToLower(w.Title), strings.ToLower(opts.Window)) {
				return w.PID, nil
			}
		default:
			return w.PID, nil
		}
	}

	switch {
	case opts.WindowID > 0:
		return 0, fmt.Errorf("no window found with ID %d", opts.WindowID)
	case opts.Window != "":
		return 0, fmt.Errorf("no window found matching title %q", opts.Window)
	default:
		return 0, fmt.Errorf("no windows found for app %q", opts.App)
	}
}

func (wm *DarwinWindowManager) GetFrontmostApp() (string, int, error) {
	var cName *C.char
	var cPid C.pid_t

	if C.ns_get_frontmost_app(&cName, &cPid) != 0 {
		return "", 0, fmt.Errorf("failed to get frontmost app")
	}
	defer C.free(unsafe.Pointer(cName))

	return C.GoString(cName), int(cPid), nil
}
