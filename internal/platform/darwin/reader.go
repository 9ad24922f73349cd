//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>
#include "axtree.h"

typedef struct {
    int windowID;
    int pid;
    int layer;
    char *appName;
    char *title;
    int x, y, width, height;
} CGWindowInfo;

static int dict_int(CFDictionaryRef d, CFStringRef key) {
    CFNumberRef n = CFDictionaryGetValue(d, key);
    int v = 0;
    if (n != NULL) CFNumberGetValue(n, kCFNumberIntType, &v);
    return v;
}

// cg_list_windows copies on-screen windows front to back.
static int cg_list_windows(CGWindowInfo **out, int *count) {
    CFArrayRef list = CGWindowListCopyWindowInfo(
        kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements, kCGNullWindowID);
    if (list == NULL) return -1;
    CFIndex n = CFArrayGetCount(list);
    CGWindowInfo *arr = calloc(n > 0 ? n : 1, sizeof(CGWindowInfo));
    if (arr == NULL) {
        CFRelease(list);
        return -1;
    }
    for (CFIndex i = 0; i < n; i++) {
        CFDictionaryRef d = CFArrayGetValueAtIndex(list, i);
        CGWindowInfo *w = &arr[i];
        w->windowID = dict_int(d, kCGWindowNumber);
        w->pid = dict_int(d, kCGWindowOwnerPID);
        w->layer = dict_int(d, kCGWindowLayer);
        w->appName = cf_string_dup(CFDictionaryGetValue(d, kCGWindowOwnerName));
        w->title = cf_string_dup(CFDictionaryGetValue(d, kCGWindowName));
        CGRect r = CGRectZero;
        CFDictionaryRef b = CFDictionaryGetValue(d, kCGWindowBounds);
        if (b != NULL) CGRectMakeWithDictionaryRepresentation(b, &r);
        w->x = (int)r.origin.x;
        w->y = (int)r.origin.y;
        w->width = (int)r.size.width;
        w->height = (int)r.size.height;
    }
    CFRelease(list);
    *out = arr;
    *count = (int)n;
    return 0;
}

static void cg_free_windows(CGWindowInfo *arr, int count) {
    for (int i = 0; i < count; i++) {
        free(arr[i].appName);
        free(arr[i].title);
    }
    free(arr);
}

static int cg_get_frontmost_pid() {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        return app ? (int)app.processIdentifier : 0;
    }
}

// ax_window_title returns the AX title of the window with the given ID.
static char *ax_window_title(pid_t pid, int windowID) {
    CFArrayRef windows = ax_copy_windows(pid, windowID);
    if (windows == NULL) return NULL;
    char *title = NULL;
    if (CFArrayGetCount(windows) > 0) {
        title = ax_copy_string((AXUIElementRef)CFArrayGetValueAtIndex(windows, 0), kAXTitleAttribute);
    }
    CFRelease(windows);
    return title;
}

static int ax_read_elements(pid_t pid, int windowID, int maxDepth, AXElementInfo **out, int *count) {
    CFArrayRef windows = ax_copy_windows(pid, windowID);
    if (windows == NULL) return -1;
    AXCollector c = {0};
    c.maxDepth = maxDepth;
    for (CFIndex i = 0; i < CFArrayGetCount(windows); i++) {
        ax_walk(&c, (AXUIElementRef)CFArrayGetValueAtIndex(windows, i), -1, 0);
    }
    CFRelease(windows);
    *out = c.items;
    *count = c.count;
    return 0;
}

static void ax_free_elements(AXElementInfo *items, int count) {
    for (int i = 0; i < count; i++) {
        free(items[i].role);
        free(items[i].title);
        free(items[i].value);
        free(items[i].description);
    }
    free(items);
}
*/
import "C"
import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/mj1618/focusprobe/internal/model"
	"github.com/mj1618/focusprobe/internal/platform"
)

// DarwinReader implements the platform.Reader interface for macOS.
type DarwinReader struct{}

// NewReader creates a new macOS reader.
func NewReader() *DarwinReader {
	return &DarwinReader{}
}

// ListWindows returns on-screen application windows in the window server's
// front-to-back order, filtered by app name and PID per ListOptions.
func (r *DarwinReader) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	var cWindows *C.CGWindowInfo
	var cCount C.int

	if C.cg_list_windows(&cWindows, &cCount) != 0 {
		return nil, fmt.Errorf("failed to enumerate windows")
	}
	defer C.cg_free_windows(cWindows, cCount)

	windows := []model.Window{}
	count := int(cCount)
	if count == 0 {
		return windows, nil
	}

	frontPid := int(C.cg_get_frontmost_pid())
	frontmostFocusAssigned := false

	for _, cw := range unsafe.Slice(cWindows, count) {
		// Layer 0 holds application windows. IDE popups such as Go to Class
		// sit on the floating layer (3), so keep that too.
		if layer := int(cw.layer); layer != 0 && layer != 3 {
			continue
		}

		appName := C.GoString(cw.appName)
		pid := int(cw.pid)
		if opts.PID != 0 && pid != opts.PID {
			continue
		}
		if opts.App != "" && !strings.EqualFold(appName, opts.App) {
			continue
		}

		// The first window of the frontmost app is the focused one.
		focused := false
		if pid == frontPid && !frontmostFocusAssigned {
			focused = true
			frontmostFocusAssigned = true
		}

		windows = append(windows, model.Window{
			App:     appName,
			PID:     pid,
			Title:   C.GoString(cw.title),
			ID:      int(cw.windowID),
			Bounds:  [4]int{int(cw.x), int(cw.y), int(cw.width), int(cw.height)},
			Focused: focused,
		})
	}

	// CGWindowName is empty without screen recording permission; fall back
	// to the AX title.
	for i := range windows {
		if windows[i].Title != "" {
			continue
		}
		if t := C.ax_window_title(C.pid_t(windows[i].PID), C.int(windows[i].ID)); t != nil {
			windows[i].Title = C.GoString(t)
			C.free(unsafe.Pointer(t))
		}
	}

	return windows, nil
}

// ReadElements reads the accessibility element tree for the specified target.
func (r *DarwinReader) ReadElements(opts platform.ReadOptions) ([]model.Element, error) {
	if err := CheckAccessibilityPermission(); err != nil {
		return nil, err
	}

	pid, windowID := r.resolvePIDAndWindow(opts)
	if pid == 0 {
		return nil, fmt.Errorf("no target specified: use --app, --pid, or --window-id")
	}

	var cElements *C.AXElementInfo
	var cCount C.int
	if C.ax_read_elements(C.pid_t(pid), C.int(windowID), C.int(opts.Depth), &cElements, &cCount) != 0 {
		return nil, fmt.Errorf("failed to read accessibility tree for PID %d", pid)
	}
	defer C.ax_free_elements(cElements, cCount)

	if windowID != 0 && cCount == 0 {
		return nil, fmt.Errorf("window %d of PID %d is not visible to accessibility", windowID, pid)
	}

	elements := buildElementTree(unsafe.Slice(cElements, int(cCount)))
	return model.FilterElements(elements, opts.Roles), nil
}

// resolvePIDAndWindow resolves the owning PID and window ID for a read.
func (r *DarwinReader) resolvePIDAndWindow(opts platform.ReadOptions) (pid, windowID int) {
	if opts.PID != 0 {
		return opts.PID, opts.WindowID
	}
	if opts.WindowID == 0 && opts.App == "" {
		return 0, 0
	}
	windows, err := r.ListWindows(platform.ListOptions{App: opts.App})
	if err != nil {
		return 0, 0
	}
	for _, w := range windows {
		if opts.WindowID == 0 || w.ID == opts.WindowID {
			return w.PID, opts.WindowID
		}
	}
	return 0, 0
}

// buildElementTree nests the pre-order element list by parent ID.
func buildElementTree(infos []C.AXElementInfo) []model.Element {
	if len(infos) == 0 {
		return []model.Element{}
	}

	flat := make([]model.Element, len(infos))
	children := make(map[int][]int, len(infos))
	var roots []int

	for i, ce := range infos {
		var enabled *bool
		if ce.enabled == 0 {
			f := false
			enabled = &f
		}
		flat[i] = model.Element{
			ID:          int(ce.id),
			Role:        model.MapRole(C.GoString(ce.role)),
			Title:       C.GoString(ce.title),
			Value:       C.GoString(ce.value),
			Description: C.GoString(ce.description),
			Bounds:      [4]int{int(ce.x), int(ce.y), int(ce.width), int(ce.height)},
			Focused:     ce.focused != 0,
			Enabled:     enabled,
			Selected:    ce.selected != 0,
		}
		if parent := int(ce.parentID); parent >= 0 {
			children[parent] = append(children[parent], i)
		} else {
			roots = append(roots, i)
		}
	}

	var build func(idx int) model.Element
	build = func(idx int) model.Element {
		elem := flat[idx]
		for _, c := range children[elem.ID] {
			elem.Children = append(elem.Children, build(c))
		}
		return elem
	}

	result := make([]model.Element, 0, len(roots))
	for _, ri := range roots {
		result = append(result, build(ri))
	}
	return result
}
