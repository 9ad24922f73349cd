package probe

import (
	"errors"
	"fmt"
)

// Lookup targets named in LookupError.
const (
	SearchWindowTarget = "GoToClass search window"
	SearchFieldTarget  = "text field in GoToClass search window"
	EditorTarget       = "editor"
)

// ErrLocked is returned when another probe holds the desktop lock.
var ErrLocked = errors.New("another focusprobe run holds the desktop lock")

// LookupError reports a window or widget that could not be found.
type LookupError struct {
	Target string
}

func (e *LookupError) Error() string {
	return "unable to find " + e.Target
}

// AssertionError reports a text field whose content differs from what was typed.
type AssertionError struct {
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("search field text mismatch: expected %q but got %q", e.Expected, e.Actual)
}

// IsLookupError reports whether err wraps a *LookupError.
func IsLookupError(err error) bool {
	var le *LookupError
	return errors.As(err, &le)
}

// IsAssertionError reports whether err wraps an *AssertionError.
func IsAssertionError(err error) bool {
	var ae *AssertionError
	return errors.As(err, &ae)
}
