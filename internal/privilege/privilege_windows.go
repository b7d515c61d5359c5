//go:build windows

// Package privilege detects whether the process runs elevated. The result
// is informational only: the reporting layer warns about incomplete
// results, but scanning behavior never branches on it.
package privilege

import "golang.org/x/sys/windows"

// Elevated reports whether the current process token is elevated.
func Elevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
