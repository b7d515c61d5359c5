// Package presentation renders scan results for the console: a styled
// summary and listing, JSON output for scripting, and the interactive
// filter prompt.
package presentation

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"comspect/internal/comscan"
	"comspect/internal/config"
)

// Styles holds the lipgloss styles used by the report.
type Styles struct {
	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Warn    lipgloss.Style
	High    lipgloss.Style
	Medium  lipgloss.Style
	Low     lipgloss.Style
	VeryLow lipgloss.Style
}

// NewStyles builds styles from the configured theme.
func NewStyles(theme config.ThemeConfig) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight)),
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning)),
		High:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Success)),
		Medium:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning)),
		Low:     lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning)),
		VeryLow: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Error)),
	}
}

// Report writes the human-readable result listing.
type Report struct {
	w      io.Writer
	styles Styles
	plain  bool
}

// NewReport creates a report writer. With plain set, all styling and
// glyphs are suppressed for dumb terminals and piped output.
func NewReport(w io.Writer, styles Styles, plain bool) *Report {
	return &Report{w: w, styles: styles, plain: plain}
}

func (r *Report) render(style lipgloss.Style, s string) string {
	if r.plain {
		return s
	}
	return style.Render(s)
}

// ElevationNotice prints the privilege warning or confirmation.
func (r *Report) ElevationNotice(elevated bool) {
	if elevated {
		fmt.Fprintln(r.w, r.render(r.styles.High, "Running with elevated privileges"))
		fmt.Fprintln(r.w)
		return
	}
	fmt.Fprintln(r.w, r.render(r.styles.Warn, "WARNING: not running with elevated privileges."))
	fmt.Fprintln(r.w, "  Some COM objects may not be accessible.")
	fmt.Fprintln(r.w, "  Run as Administrator for a complete scan.")
	fmt.Fprintln(r.w)
}

// ViewLine prints one view's scan outcome.
func (r *Report) ViewLine(view string, entries, visited, failed int, err error) {
	if err != nil {
		fmt.Fprintf(r.w, "%s %v\n", r.render(r.styles.VeryLow, view+" view unavailable:"), err)
		return
	}
	line := fmt.Sprintf("Scanned %s view: %d objects (%d keys visited, %d failed)",
		view, entries, visited, failed)
	fmt.Fprintln(r.w, line)
}

// Summary prints the catalog totals.
func (r *Report) Summary(objects []comscan.Classified, totalUnique int) {
	fmt.Fprintln(r.w, r.render(r.styles.Title, "=== Results ==="))
	fmt.Fprintf(r.w, "Total unique COM objects found: %d\n\n", totalUnique)

	if len(objects) == 0 {
		fmt.Fprintln(r.w, "No COM objects found matching the criteria.")
		return
	}

	withProgID := 0
	for _, o := range objects {
		if o.HasProgID() {
			withProgID++
		}
	}
	fmt.Fprintf(r.w, "COM objects with ProgID: %d (%.1f%%)\n",
		withProgID, float64(withProgID)/float64(len(objects))*100.0)
	fmt.Fprintf(r.w, "COM objects without ProgID: %d\n\n", len(objects)-withProgID)
}

// Compact prints only the entries that have a ProgID, one per line.
func (r *Report) Compact(objects []comscan.Classified) {
	fmt.Fprintln(r.w, r.render(r.styles.Title, "--- COM Objects with ProgID ---"))
	for _, o := range SortForDisplay(objects) {
		if !o.HasProgID() {
			continue
		}
		fmt.Fprintf(r.w, "  %s %s\n", o.ProgID, r.render(r.styles.Subtle, "("+o.CLSID+")"))
	}
}

// Detailed prints the full per-entry listing with usability lines.
func (r *Report) Detailed(objects []comscan.Classified) {
	fmt.Fprintln(r.w, r.render(r.styles.Title, "--- Detailed Listing ---"))
	fmt.Fprintln(r.w)
	for _, o := range SortForDisplay(objects) {
		fmt.Fprintf(r.w, "CLSID: %s\n", o.CLSID)
		if o.HasProgID() {
			fmt.Fprintf(r.w, "  ProgID: %s\n", o.ProgID)
		}
		if o.HasDescription() {
			fmt.Fprintf(r.w, "  Description: %s\n", o.Description)
		}
		fmt.Fprintf(r.w, "  Source views: %s\n", o.Views)
		fmt.Fprintf(r.w, "  Programmatic Usability: %s\n\n", r.UsabilityLabel(o.Level))
	}
}

// UsabilityLabel renders a level with its glyph and explanation.
func (r *Report) UsabilityLabel(u comscan.Usability) string {
	text := fmt.Sprintf("%s (%s)", u, u.Detail())
	if r.plain {
		return text
	}
	switch u {
	case comscan.UsabilityHigh:
		return r.render(r.styles.High, "✓ "+text)
	case comscan.UsabilityMedium:
		return r.render(r.styles.Medium, "~ "+text)
	case comscan.UsabilityLow:
		return r.render(r.styles.Low, "~ "+text)
	default:
		return r.render(r.styles.VeryLow, "✗ "+text)
	}
}

// SortForDisplay orders entries for readability: entries with a ProgID
// first (alphabetically), then the rest by CLSID. Display only; the
// pipeline's catalog order is untouched.
func SortForDisplay(objects []comscan.Classified) []comscan.Classified {
	sorted := make([]comscan.Classified, len(objects))
	copy(sorted, objects)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.HasProgID() && b.HasProgID():
			return a.ProgID < b.ProgID
		case a.HasProgID():
			return true
		case b.HasProgID():
			return false
		default:
			return a.CLSID < b.CLSID
		}
	})
	return sorted
}
