//go:build darwin

// Package darwin drives IntelliJ-family IDEs on macOS through CoreGraphics
// events and the Accessibility API. Everything here requires cgo.
package darwin
