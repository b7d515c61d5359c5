package comscan

import "comspect/internal/log"

// Merge folds per-view scan results into a single catalog. Results must be
// supplied in the order the views were requested; nil results (failed
// views) are skipped.
//
// When the same CLSID appears in more than one view, ProgID and
// Description are each resolved independently: a present value beats an
// absent one, and when both views hold a present but different value the
// one from the earlier-requested view wins. That first-wins tie-break is
// deliberate, matching how the registry redirector usually mirrors a
// registration across views. Views always accumulates every contributor,
// and CLSIDs keep the order in which they were first seen across the whole
// fold.
func Merge(results []*ScanResult) *Catalog {
	c := &Catalog{entries: make(map[string]*Entry)}
	for _, res := range results {
		if res == nil {
			continue
		}
		for _, e := range res.Entries {
			cur, ok := c.entries[e.CLSID]
			if !ok {
				dup := e
				c.entries[e.CLSID] = &dup
				c.order = append(c.order, e.CLSID)
				continue
			}
			if !cur.HasProgID() {
				cur.ProgID = e.ProgID
			}
			if !cur.HasDescription() {
				cur.Description = e.Description
			}
			cur.Views |= e.Views
		}
	}
	log.Debug(log.CatMerge, "merged scan results", "views", len(results), "unique", c.Len())
	return c
}
