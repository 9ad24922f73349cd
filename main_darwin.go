//go:build darwin && cgo

package main

// Registers the macOS provider.
import _ "github.com/mj1618/focusprobe/internal/platform/darwin"
