//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ImageIO -framework CoreServices
#include <CoreGraphics/CoreGraphics.h>
#include <ImageIO/ImageIO.h>
#include <CoreServices/CoreServices.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    unsigned char *data;
    int length;
} ScreenshotResult;

static CGImageRef cg_scale_image(CGImageRef src, float scale) {
    size_t w = (size_t)(CGImageGetWidth(src) * scale);
    size_t h = (size_t)(CGImageGetHeight(src) * scale);
    if (w == 0 || h == 0) return NULL;
    CGColorSpaceRef cs = CGColorSpaceCreateDeviceRGB();
    CGContextRef ctx = CGBitmapContextCreate(NULL, w, h, 8, 0, cs, kCGImageAlphaPremultipliedLast);
    CGColorSpaceRelease(cs);
    if (ctx == NULL) return NULL;
    CGContextSetInterpolationQuality(ctx, kCGInterpolationHigh);
    CGContextDrawImage(ctx, CGRectMake(0, 0, w, h), src);
    CGImageRef out = CGBitmapContextCreateImage(ctx);
    CGContextRelease(ctx);
    return out;
}

// cg_capture encodes a PNG of windowID, or of the main display when
// windowID is 0.
static int cg_capture(int windowID, float scale, ScreenshotResult *result) {
    CGImageRef image;
    if (windowID != 0) {
        image = CGWindowListCreateImage(CGRectNull, kCGWindowListOptionIncludingWindow,
            (CGWindowID)windowID, kCGWindowImageBoundsIgnoreFraming | kCGWindowImageBestResolution);
    } else {
        image = CGDisplayCreateImage(CGMainDisplayID());
    }
    if (image == NULL) return -1;

    if (scale < 0.999f) {
        CGImageRef scaled = cg_scale_image(image, scale);
        if (scaled != NULL) {
            CGImageRelease(image);
            image = scaled;
        }
    }

    CFMutableDataRef data = CFDataCreateMutable(NULL, 0);
    CGImageDestinationRef dest = CGImageDestinationCreateWithData(data, kUTTypePNG, 1, NULL);
    if (dest == NULL) {
        CFRelease(data);
        CGImageRelease(image);
        return -1;
    }
    CGImageDestinationAddImage(dest, image, NULL);
    int ok = CGImageDestinationFinalize(dest);
    CFRelease(dest);
    CGImageRelease(image);
    if (!ok) {
        CFRelease(data);
        return -1;
    }

    result->length = (int)CFDataGetLength(data);
    result->data = malloc(result->length);
    if (result->data == NULL) {
        CFRelease(data);
        return -1;
    }
    memcpy(result->data, CFDataGetBytePtr(data), result->length);
    CFRelease(data);
    return 0;
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/mj1618/focusprobe/internal/platform"
)

// DarwinScreenshotter implements platform.Screenshotter for macOS.
type DarwinScreenshotter struct {
	reader *DarwinReader
}

// NewScreenshotter creates a new macOS screenshotter.
func NewScreenshotter(reader *DarwinReader) *DarwinScreenshotter {
	return &DarwinScreenshotter{reader: reader}
}

// CaptureWindow captures a screenshot of a specific window or the full screen.
func (s *DarwinScreenshotter) CaptureWindow(opts platform.ScreenshotOptions) ([]byte, error) {
	if err := CheckScreenRecordingPermission(); err != nil {
		return nil, err
	}

	windowID := opts.WindowID
	if windowID == 0 && (opts.App != "" || opts.PID != 0) {
		windows, err := s.reader.ListWindows(platform.ListOptions{App: opts.App, PID: opts.PID})
		if err != nil {
			return nil, fmt.Errorf("failed to list windows: %w", err)
		}
		if len(windows) == 0 {
			return nil, fmt.Errorf("no windows found matching the specified criteria")
		}
		windowID = windows[0].ID
	}

	scale := opts.Scale
	if scale <= 0 || scale > 1.0 {
		scale = 1.0
	}

	var result C.ScreenshotResult
	if C.cg_capture(C.int(windowID), C.float(scale), &result) != 0 {
		return nil, fmt.Errorf("screenshot capture failed (check Screen Recording permission in System Settings > Privacy & Security > Screen Recording)")
	}
	defer C.free(unsafe.Pointer(result.data))

	return C.GoBytes(unsafe.Pointer(result.data), C.int(result.length)), nil
}
