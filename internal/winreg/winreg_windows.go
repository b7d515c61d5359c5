//go:build windows

// Package winreg implements the comscan.Hive capability over the Windows
// registry, opening HKEY_CLASSES_ROOT under either WOW64 view.
package winreg

import (
	"fmt"
	"io"
	"unsafe"

	"golang.org/x/sys/windows"

	"comspect/internal/comscan"
)

// New returns a Hive over HKEY_CLASSES_ROOT.
func New() comscan.Hive { return hive{} }

type hive struct{}

// OpenRoot implements comscan.Hive. The view selects the WOW64 access flag
// so a 64-bit process can see the 32-bit redirected subtree and vice versa.
func (hive) OpenRoot(view comscan.View, path string) (comscan.Key, error) {
	access := uint32(windows.KEY_READ)
	switch view {
	case comscan.View32:
		access |= windows.KEY_WOW64_32KEY
	case comscan.View64:
		access |= windows.KEY_WOW64_64KEY
	default:
		return nil, fmt.Errorf("%w: %s", comscan.ErrViewUnavailable, view)
	}
	return openKey(windows.Handle(windows.HKEY_CLASSES_ROOT), path, access)
}

func openKey(parent windows.Handle, path string, access uint32) (*key, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}
	var h windows.Handle
	if err := windows.RegOpenKeyEx(parent, p, 0, access, &h); err != nil {
		if err == windows.ERROR_FILE_NOT_FOUND {
			return nil, comscan.ErrNotExist
		}
		return nil, err
	}
	return &key{handle: h, access: access}, nil
}

// key wraps an open registry handle with an enumeration cursor.
type key struct {
	handle windows.Handle
	access uint32
	index  uint32
}

// SubkeyNames implements comscan.Key with Readdirnames-style batching over
// RegEnumKeyEx, which enumerates by index without materializing the full
// child list.
func (k *key) SubkeyNames(n int) ([]string, error) {
	var names []string
	for n <= 0 || len(names) < n {
		name, err := k.enumAt(k.index)
		if err == windows.ERROR_NO_MORE_ITEMS {
			if n > 0 {
				return names, io.EOF
			}
			return names, nil
		}
		// The slot is consumed either way so a bad child cannot wedge
		// the enumeration.
		k.index++
		if err != nil {
			return names, fmt.Errorf("enumerate subkey %d: %w", k.index-1, err)
		}
		names = append(names, name)
	}
	return names, nil
}

func (k *key) enumAt(i uint32) (string, error) {
	// Registry key names are capped at 255 characters, but grow the
	// buffer on ERROR_MORE_DATA anyway.
	buf := make([]uint16, 256)
	for {
		size := uint32(len(buf))
		err := windows.RegEnumKeyEx(k.handle, i, &buf[0], &size, nil, nil, nil, nil)
		if err == windows.ERROR_MORE_DATA {
			buf = make([]uint16, len(buf)*2)
			continue
		}
		if err != nil {
			return "", err
		}
		return windows.UTF16ToString(buf[:size]), nil
	}
}

// OpenSubkey implements comscan.Key, inheriting the parent's WOW64 view.
func (k *key) OpenSubkey(name string) (comscan.Key, error) {
	return openKey(k.handle, name, k.access)
}

// DefaultValue implements comscan.Key. Only string-typed values are
// accepted; anything else is a read failure the scanner counts.
func (k *key) DefaultValue() (string, error) {
	var typ, size uint32
	err := windows.RegQueryValueEx(k.handle, nil, nil, &typ, nil, &size)
	if err == windows.ERROR_FILE_NOT_FOUND {
		return "", comscan.ErrNotExist
	}
	if err != nil {
		return "", err
	}
	if typ != windows.REG_SZ && typ != windows.REG_EXPAND_SZ {
		return "", fmt.Errorf("default value has non-string type %d", typ)
	}
	if size < 2 {
		return "", nil
	}
	buf := make([]byte, size)
	if err := windows.RegQueryValueEx(k.handle, nil, nil, &typ, &buf[0], &size); err != nil {
		return "", err
	}
	u16 := unsafe.Slice((*uint16)(unsafe.Pointer(&buf[0])), size/2)
	return windows.UTF16ToString(u16), nil
}

// Close implements comscan.Key.
func (k *key) Close() error {
	return windows.RegCloseKey(k.handle)
}
