// Package comscan discovers COM class registrations by walking the CLSID
// subtree of the Windows classes hive. It scans the 32-bit and 64-bit
// registry views independently, merges the per-view results into a single
// catalog keyed by CLSID, and classifies each registration's programmatic
// usability.
package comscan

import (
	"fmt"
	"strings"
)

// View selects one of the two WOW64 registry views.
type View int

const (
	// View32 is the 32-bit redirected view (KEY_WOW64_32KEY).
	View32 View = iota
	// View64 is the 64-bit view (KEY_WOW64_64KEY).
	View64
)

func (v View) String() string {
	switch v {
	case View32:
		return "32-bit"
	case View64:
		return "64-bit"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// ParseView converts a config value ("32" or "64") to a View.
func ParseView(s string) (View, error) {
	switch strings.TrimSpace(s) {
	case "32":
		return View32, nil
	case "64":
		return View64, nil
	default:
		return 0, fmt.Errorf("unknown registry view %q (want \"32\" or \"64\")", s)
	}
}

// ViewSet records which views contributed an entry.
type ViewSet uint8

// NewViewSet builds a set from the given views.
func NewViewSet(views ...View) ViewSet {
	var s ViewSet
	for _, v := range views {
		s = s.Add(v)
	}
	return s
}

// Add returns the set with v included.
func (s ViewSet) Add(v View) ViewSet { return s | 1<<uint(v) }

// Has reports whether v is in the set.
func (s ViewSet) Has(v View) bool { return s&(1<<uint(v)) != 0 }

// List returns the member views, 32-bit first.
func (s ViewSet) List() []View {
	var views []View
	for _, v := range []View{View32, View64} {
		if s.Has(v) {
			views = append(views, v)
		}
	}
	return views
}

func (s ViewSet) String() string {
	var parts []string
	for _, v := range s.List() {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, "+")
}

// Entry is one COM class registration. CLSID is always a canonical braced
// GUID; ProgID and Description use the empty string for "absent" since the
// registry treats an empty default value and a missing one identically.
type Entry struct {
	CLSID       string
	ProgID      string
	Description string
	Views       ViewSet
}

// HasProgID reports whether the registration carries a ProgID.
func (e Entry) HasProgID() bool { return e.ProgID != "" }

// HasDescription reports whether the registration carries a description.
func (e Entry) HasDescription() bool { return e.Description != "" }

// ScanResult holds the outcome of scanning one registry view. Entries are
// in registry enumeration order. KeysVisited counts every child key
// attempted; KeysFailed counts the subset that was skipped (malformed CLSID
// name or unreadable values).
type ScanResult struct {
	View        View
	Entries     []Entry
	KeysVisited int
	KeysFailed  int
}

// Catalog is a deduplicated set of entries keyed by CLSID, preserving the
// order in which each CLSID was first seen during the merge.
type Catalog struct {
	order   []string
	entries map[string]*Entry
}

// Len returns the number of unique CLSIDs.
func (c *Catalog) Len() int { return len(c.order) }

// Get looks up an entry by CLSID.
func (c *Catalog) Get(clsid string) (Entry, bool) {
	e, ok := c.entries[clsid]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns all entries in first-seen order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, clsid := range c.order {
		out = append(out, *c.entries[clsid])
	}
	return out
}
