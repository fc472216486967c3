// Package schedule implements the enrichment pipeline for the session
// sheet: text cleanup, time-range parsing, instant derivation, sorting,
// and the window/criteria filters the dashboard is built on. Everything
// here is a pure transformation over row values; I/O lives in
// internal/sheet and internal/web.
package schedule

import "strings"

// lineBreakArtifact is the sequence some spreadsheet writers leave behind
// in place of embedded line breaks.
const lineBreakArtifact = "_x000D_"

// CleanText strips spreadsheet artifacts and control characters from a
// free-text cell and collapses whitespace runs to single spaces. It is
// total: any input yields a cleaned string, never an error.
func CleanText(s string) string {
	if s == "" {
		return s
	}

	s = strings.ReplaceAll(s, lineBreakArtifact, " ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	// Fields splits on any whitespace, so this both collapses interior
	// runs and trims the ends.
	return strings.Join(strings.Fields(b.String()), " ")
}
