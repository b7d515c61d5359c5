package comscan

import (
	"context"
	"errors"
	"io"

	"comspect/internal/log"
)

// clsidRoot is the subtree scanned under the classes hive.
const clsidRoot = "CLSID"

// subkeyBatch bounds how many child names are pulled per enumeration call
// so the full key list (low thousands on a typical host) is never
// materialized up front.
const subkeyBatch = 256

// Scan walks every child of CLSID in one registry view. Per-key failures
// (malformed names, unreadable values, children that cannot be enumerated)
// are counted and skipped, never fatal. Only a failure to open the CLSID
// root fails the view, reported as a *ViewError so callers can distinguish
// "scanned, found none" from "could not scan".
func Scan(ctx context.Context, hive Hive, view View) (*ScanResult, error) {
	root, err := hive.OpenRoot(view, clsidRoot)
	if err != nil {
		log.ErrorErr(log.CatScan, "failed to open CLSID root", err, "view", view)
		return nil, &ViewError{View: view, Err: err}
	}
	defer root.Close()

	res := &ScanResult{View: view}
	for {
		names, enumErr := root.SubkeyNames(subkeyBatch)
		for _, name := range names {
			res.KeysVisited++
			entry, readErr := readEntry(root, name, view)
			if readErr != nil {
				res.KeysFailed++
				log.Debug(log.CatScan, "skipping key", "view", view, "name", name, "reason", readErr)
				continue
			}
			res.Entries = append(res.Entries, entry)
		}
		if errors.Is(enumErr, io.EOF) {
			break
		}
		if enumErr != nil {
			// One child key name could not be read; the cursor has
			// already moved past it.
			res.KeysVisited++
			res.KeysFailed++
			log.Debug(log.CatScan, "skipping unenumerable child", "view", view, "reason", enumErr)
		}
	}

	log.Info(log.CatScan, "view scan complete",
		"view", view, "visited", res.KeysVisited, "failed", res.KeysFailed, "entries", len(res.Entries))
	return res, nil
}
