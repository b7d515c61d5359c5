package comscan

import (
	"errors"
	"fmt"
)

// ErrNotExist is returned by Key implementations when a subkey or value is
// absent. Callers distinguish it from real read failures: absence is a
// normal case during a scan, anything else counts as a key failure.
var ErrNotExist = errors.New("registry key or value does not exist")

// ErrViewUnavailable indicates the requested view cannot be opened on this
// host at all (for example, any view on a non-Windows build).
var ErrViewUnavailable = errors.New("registry view unavailable")

// ViewError reports that a view's CLSID root could not be opened. It is
// fatal to that view only; other requested views still proceed.
type ViewError struct {
	View View
	Err  error
}

func (e *ViewError) Error() string {
	return fmt.Sprintf("open %s view: %v", e.View, e.Err)
}

func (e *ViewError) Unwrap() error { return e.Err }

// Hive is the narrow registry capability the scanner depends on. The real
// implementation wraps the Windows classes hive; tests use FakeHive.
type Hive interface {
	// OpenRoot opens path under the classes root in the given view. The
	// caller owns the returned Key and must close it.
	OpenRoot(view View, path string) (Key, error)
}

// Key is an open registry key handle.
type Key interface {
	// SubkeyNames returns up to n child key names in enumeration order,
	// behaving like os.File.Readdirnames: successive calls continue where
	// the previous one left off, and io.EOF signals the end when n > 0.
	// Any other non-nil error reports a single child that could not be
	// enumerated; the cursor has advanced past it and further calls
	// continue with the remaining children.
	SubkeyNames(n int) ([]string, error)

	// OpenSubkey opens the named child key for reading.
	OpenSubkey(name string) (Key, error)

	// DefaultValue returns the key's default string value. It returns
	// ErrNotExist when the value is unset and an empty string when the
	// value is present but empty; scanning treats the two identically.
	DefaultValue() (string, error)

	Close() error
}
