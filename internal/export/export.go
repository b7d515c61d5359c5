// Package export writes scan snapshots to txt, csv, or sqlite files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"comspect/internal/comscan"
	"comspect/internal/log"
	"comspect/internal/presentation"
)

// Snapshot is everything an export format may need from one run.
type Snapshot struct {
	ScannedAt   time.Time
	Views       []string
	KeysVisited int
	KeysFailed  int
	TotalUnique int
	Objects     []comscan.Classified
}

// Formats lists the supported export formats.
var Formats = []string{"txt", "csv", "sqlite"}

// WriteFile writes the snapshot to path in the given format.
func WriteFile(path, format string, s Snapshot) error {
	log.Info(log.CatExport, "exporting results", "path", path, "format", format, "objects", len(s.Objects))
	switch strings.ToLower(format) {
	case "txt":
		return writeThrough(path, s, Text)
	case "csv":
		return writeThrough(path, s, CSV)
	case "sqlite":
		return SQLite(path, s)
	default:
		return fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

func writeThrough(path string, s Snapshot, fn func(io.Writer, Snapshot) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Text writes the detailed listing as plain text, mirroring the console
// report without styling.
func Text(w io.Writer, s Snapshot) error {
	var b strings.Builder
	b.WriteString("=== Results ===\n")
	fmt.Fprintf(&b, "Scanned at: %s\n", s.ScannedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Views: %s\n", strings.Join(s.Views, ", "))
	fmt.Fprintf(&b, "Keys visited: %d, keys failed: %d\n", s.KeysVisited, s.KeysFailed)
	fmt.Fprintf(&b, "Total unique COM objects found: %d\n\n", s.TotalUnique)

	if len(s.Objects) == 0 {
		b.WriteString("No COM objects found matching the criteria.\n")
	} else {
		withProgID := 0
		for _, o := range s.Objects {
			if o.HasProgID() {
				withProgID++
			}
		}
		fmt.Fprintf(&b, "COM objects with ProgID: %d (%.1f%%)\n",
			withProgID, float64(withProgID)/float64(len(s.Objects))*100.0)
		fmt.Fprintf(&b, "COM objects without ProgID: %d\n\n", len(s.Objects)-withProgID)
		b.WriteString("--- Detailed Listing ---\n\n")

		for _, o := range presentation.SortForDisplay(s.Objects) {
			fmt.Fprintf(&b, "CLSID: %s\n", o.CLSID)
			if o.HasProgID() {
				fmt.Fprintf(&b, "  ProgID: %s\n", o.ProgID)
			}
			if o.HasDescription() {
				fmt.Fprintf(&b, "  Description: %s\n", o.Description)
			}
			fmt.Fprintf(&b, "  Source views: %s\n", o.Views)
			fmt.Fprintf(&b, "  Programmatic Usability: %s (%s)\n\n", o.Level, o.Level.Detail())
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CSV writes one row per object with a fixed header.
func CSV(w io.Writer, s Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"CLSID", "ProgID", "Description", "Usability", "SourceViews"}); err != nil {
		return err
	}
	for _, o := range presentation.SortForDisplay(s.Objects) {
		record := []string{o.CLSID, o.ProgID, o.Description, o.Level.String(), o.Views.String()}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
