//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include "axtree.h"

// ax_set_caret collapses the selection of element elementID to offset.
// Element IDs follow the numbering used by ax_read_elements.
static int ax_set_caret(pid_t pid, int windowID, int elementID, int offset) {
    CFArrayRef windows = ax_copy_windows(pid, windowID);
    if (windows == NULL) return -1;
    AXUIElementRef el = NULL;
    int next = 1;
    for (CFIndex i = 0; i < CFArrayGetCount(windows) && el == NULL; i++) {
        el = ax_find((AXUIElementRef)CFArrayGetValueAtIndex(windows, i), elementID, &next);
    }
    CFRelease(windows);
    if (el == NULL) return -2;

    CFRange range = CFRangeMake(offset, 0);
    AXValueRef value = AXValueCreate(kAXValueCFRangeType, &range);
    AXError err = AXUIElementSetAttributeValue(el, kAXSelectedTextRangeAttribute, value);
    CFRelease(value);
    CFRelease(el);
    return err == kAXErrorSuccess ? 0 : -3;
}
*/
import "C"

import (
	"fmt"

	"github.com/mj1618/focusprobe/internal/platform"
)

// DarwinCaretSetter implements the platform.CaretSetter interface for macOS.
type DarwinCaretSetter struct {
	reader *DarwinReader
}

// NewCaretSetter creates a new macOS caret setter.
func NewCaretSetter(reader *DarwinReader) *DarwinCaretSetter {
	return &DarwinCaretSetter{reader: reader}
}

func (s *DarwinCaretSetter) SetCaret(opts platform.CaretOptions) error {
	if opts.ElementID <= 0 {
		return fmt.Errorf("element ID is required")
	}
	if opts.Offset < 0 {
		return fmt.Errorf("caret offset must be non-negative, got %d", opts.Offset)
	}
	if err := CheckAccessibilityPermission(); err != nil {
		return err
	}

	pid, windowID := s.reader.resolvePIDAndWindow(platform.ReadOptions{PID: opts.PID, WindowID: opts.WindowID})
	if pid == 0 {
		return fmt.Errorf("no target specified: use --pid or --window-id")
	}

	switch C.ax_set_caret(C.pid_t(pid), C.int(windowID), C.int(opts.ElementID), C.int(opts.Offset)) {
	case 0:
		return nil
	case -1:
		return fmt.Errorf("failed to read windows of PID %d", pid)
	case -2:
		return fmt.Errorf("element %d not found in window %d", opts.ElementID, windowID)
	default:
		return fmt.Errorf("failed to move caret of element %d to offset %d", opts.ElementID, opts.Offset)
	}
}
