//go:build !windows

// Package winreg implements the comscan.Hive capability over the Windows
// registry. On non-Windows builds every root open fails, which the scan
// pipeline reports as the views being unavailable.
package winreg

import (
	"fmt"
	"runtime"

	"comspect/internal/comscan"
)

// New returns a Hive whose root opens always fail on this platform.
func New() comscan.Hive { return hive{} }

type hive struct{}

func (hive) OpenRoot(view comscan.View, path string) (comscan.Key, error) {
	return nil, fmt.Errorf("%w: the Windows registry is not available on %s",
		comscan.ErrViewUnavailable, runtime.GOOS)
}
