//go:build !windows

// Package privilege detects whether the process runs elevated. The result
// is informational only: the reporting layer warns about incomplete
// results, but scanning behavior never branches on it.
package privilege

// Elevated always reports false off Windows; the scan fails earlier with a
// clearer error anyway.
func Elevated() bool { return false }
