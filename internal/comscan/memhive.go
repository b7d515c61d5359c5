package comscan

import (
	"fmt"
	"io"
	"sync"
)

// FakeHive is an in-memory Hive implementation. It exists so the traversal
// and merge logic can be exercised without a real Windows registry; tests
// across the repo build fixtures with it.
type FakeHive struct {
	mu      sync.Mutex
	roots   map[View]*FakeKey
	rootErr map[View]error

	// OpenCalls counts OpenRoot invocations per view, letting tests
	// verify scan caching.
	OpenCalls map[View]int
}

// NewFakeHive returns an empty hive with no views available.
func NewFakeHive() *FakeHive {
	return &FakeHive{
		roots:     make(map[View]*FakeKey),
		rootErr:   make(map[View]error),
		OpenCalls: make(map[View]int),
	}
}

// Root returns the CLSID root for a view, creating it on first use.
func (h *FakeHive) Root(view View) *FakeKey {
	if r, ok := h.roots[view]; ok {
		return r
	}
	r := NewFakeKey("")
	h.roots[view] = r
	return r
}

// FailRoot makes OpenRoot fail for the view with err.
func (h *FakeHive) FailRoot(view View, err error) { h.rootErr[view] = err }

// Add registers a CLSID in a view with the given ProgID and description;
// empty strings mean absent.
func (h *FakeHive) Add(view View, clsid, progID, description string) {
	key := NewFakeKey(description)
	if progID != "" {
		key.AddChild(progIDSubkey, NewFakeKey(progID))
	}
	h.Root(view).AddChild(clsid, key)
}

// OpenRoot implements Hive.
func (h *FakeHive) OpenRoot(view View, path string) (Key, error) {
	h.mu.Lock()
	h.OpenCalls[view]++
	h.mu.Unlock()
	if err := h.rootErr[view]; err != nil {
		return nil, err
	}
	root, ok := h.roots[view]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrViewUnavailable, view)
	}
	if path != clsidRoot {
		return nil, ErrNotExist
	}
	return root.open(), nil
}

// FakeKey is an in-memory registry key. The zero-ish constructor form keeps
// fixture code short: NewFakeKey(defaultValue), then AddChild.
type FakeKey struct {
	defaultValue string
	valueErr     error
	openErr      error
	children     map[string]*FakeKey
	childOrder   []string
	enumErrs     map[int]error

	cursor int
}

// NewFakeKey returns a key whose default value is defaultValue ("" means
// the value is absent, matching how scanning treats the two).
func NewFakeKey(defaultValue string) *FakeKey {
	return &FakeKey{
		defaultValue: defaultValue,
		children:     make(map[string]*FakeKey),
		enumErrs:     make(map[int]error),
	}
}

// AddChild attaches a child key, preserving insertion order for
// enumeration. It returns the parent for chaining.
func (k *FakeKey) AddChild(name string, child *FakeKey) *FakeKey {
	if _, ok := k.children[name]; !ok {
		k.childOrder = append(k.childOrder, name)
	}
	k.children[name] = child
	return k
}

// FailValue makes DefaultValue fail with err.
func (k *FakeKey) FailValue(err error) *FakeKey {
	k.valueErr = err
	return k
}

// FailOpen makes OpenSubkey of this key (from its parent) fail with err.
func (k *FakeKey) FailOpen(err error) *FakeKey {
	k.openErr = err
	return k
}

// FailEnumAt makes enumeration of the child at index i fail with err; the
// child is skipped and enumeration continues.
func (k *FakeKey) FailEnumAt(i int, err error) *FakeKey {
	k.enumErrs[i] = err
	return k
}

// open returns a handle with a fresh enumeration cursor.
func (k *FakeKey) open() *FakeKey {
	dup := *k
	dup.cursor = 0
	return &dup
}

// SubkeyNames implements Key with Readdirnames-style batching.
func (k *FakeKey) SubkeyNames(n int) ([]string, error) {
	var names []string
	for n <= 0 || len(names) < n {
		if k.cursor >= len(k.childOrder) {
			if n > 0 {
				return names, io.EOF
			}
			return names, nil
		}
		i := k.cursor
		k.cursor++
		if err := k.enumErrs[i]; err != nil {
			return names, err
		}
		names = append(names, k.childOrder[i])
	}
	return names, nil
}

// OpenSubkey implements Key.
func (k *FakeKey) OpenSubkey(name string) (Key, error) {
	child, ok := k.children[name]
	if !ok {
		return nil, ErrNotExist
	}
	if child.openErr != nil {
		return nil, child.openErr
	}
	return child.open(), nil
}

// DefaultValue implements Key.
func (k *FakeKey) DefaultValue() (string, error) {
	if k.valueErr != nil {
		return "", k.valueErr
	}
	if k.defaultValue == "" {
		return "", ErrNotExist
	}
	return k.defaultValue, nil
}

// Close implements Key.
func (k *FakeKey) Close() error { return nil }
