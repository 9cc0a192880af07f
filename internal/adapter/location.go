package adapter

import (
	"strings"
	"unicode/utf16"

	"github.com/smykla-skalski/compilerlint/internal/analysis"
)

// SourceLines indexes a source text by 1-based line number.
type SourceLines []string

// SplitLines splits source into lines, tolerating CRLF endings.
func SplitLines(source string) SourceLines {
	lines := strings.Split(source, "\n")

	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	return lines
}

// Line returns the text of the 1-based line n, or "" when out of range.
func (s SourceLines) Line(n int) string {
	if n < 1 || n > len(s) {
		return ""
	}

	return s[n-1]
}

// ResolveAnchor picks the span a report is attached to. A concrete location
// always wins. An unknown location is anchored on its compilation unit only
// in bailout mode; otherwise the diagnostic has no anchor.
func ResolveAnchor(loc analysis.Location, unit *analysis.Span, lines SourceLines, mode Mode) (analysis.Span, bool) {
	if span, ok := loc.Span(); ok {
		return span, true
	}

	if mode == ModeBailout && unit != nil {
		return UnitAnchor(*unit, lines), true
	}

	return analysis.Span{}, false
}

// UnitAnchor derives a span from a compilation unit. Multi-line units are
// narrowed to their first line, ending at that line's length in UTF-16 code
// units, the unit columns are counted in.
func UnitAnchor(unit analysis.Span, lines SourceLines) analysis.Span {
	if unit.SingleLine() {
		return unit
	}

	end := len(utf16.Encode([]rune(lines.Line(unit.Start.Line))))
	end = max(end, unit.Start.Column)

	return analysis.Span{
		Start: unit.Start,
		End:   analysis.Position{Line: unit.Start.Line, Column: end},
	}
}
