package comscan

import "strings"

// FilterOptions narrows a catalog before presentation. All matching is
// case-insensitive substring; absent fields never match. The zero value
// passes everything through.
type FilterOptions struct {
	// Query matches against ProgID, description, or the CLSID itself.
	Query string
	// Description matches against the description only.
	Description string
	// CLSID matches against the CLSID string only.
	CLSID string
	// Apps is a set of keywords, any of which may match ProgID,
	// description, or CLSID.
	Apps []string
	// Limit truncates the filtered result; 0 means unlimited.
	Limit int
}

// Classified pairs an entry with its derived usability level.
type Classified struct {
	Entry
	Level Usability
}

// FilterAndLimit applies the filters and limit to a catalog, classifying
// each surviving entry. Order is preserved; a filter that matches nothing
// yields an empty slice, not an error.
func FilterAndLimit(c *Catalog, opts FilterOptions) []Classified {
	out := make([]Classified, 0, c.Len())
	for _, e := range c.Entries() {
		if !opts.matches(e) {
			continue
		}
		out = append(out, Classified{Entry: e, Level: Classify(e)})
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}

func (o FilterOptions) matches(e Entry) bool {
	if o.Query != "" {
		if !containsFold(e.ProgID, o.Query) &&
			!containsFold(e.Description, o.Query) &&
			!containsFold(e.CLSID, o.Query) {
			return false
		}
	}
	if o.Description != "" && !containsFold(e.Description, o.Description) {
		return false
	}
	if o.CLSID != "" && !containsFold(e.CLSID, o.CLSID) {
		return false
	}
	if len(o.Apps) > 0 {
		hit := false
		for _, app := range o.Apps {
			if containsFold(e.ProgID, app) ||
				containsFold(e.Description, app) ||
				containsFold(e.CLSID, app) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// containsFold reports whether s contains sub, ignoring case. An empty s
// never matches a non-empty sub, so absent fields fall through.
func containsFold(s, sub string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
