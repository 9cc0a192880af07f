package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrInvalidLocation is returned when a location cannot be decoded.
var ErrInvalidLocation = errors.New("invalid location")

// unknownLocationToken is how the external analysis encodes its
// "no concrete location" sentinel on the wire.
const unknownLocationToken = "unknown"

// Position is a point in source text. Line is 1-based, Column is 0-based and
// counts UTF-16 code units, as Babel and ESLint do.
type Position struct {
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before o.
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}

	return p.Column < o.Column
}

// Span is a start/end pair of positions.
type Span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end"   yaml:"end"`
}

// SingleLine reports whether the span starts and ends on the same line.
func (s Span) SingleLine() bool {
	return s.Start.Line == s.End.Line
}

// Valid reports whether the span is usable as a report anchor.
func (s Span) Valid() bool {
	return s.Start.Line >= 1 && s.End.Line >= s.Start.Line && !s.End.Before(s.Start)
}

// String returns "line:column-line:column".
func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// LocationKind tags the Location variant.
type LocationKind int

const (
	// LocationUnknown is the "no concrete location" sentinel.
	LocationUnknown LocationKind = iota

	// LocationConcrete carries a usable span.
	LocationConcrete
)

// Location is either Concrete(span) or Unknown. The zero value is Unknown.
type Location struct {
	kind LocationKind
	span Span
}

// Concrete returns a location anchored at span.
func Concrete(span Span) Location {
	return Location{kind: LocationConcrete, span: span}
}

// Unknown returns the sentinel location.
func Unknown() Location {
	return Location{kind: LocationUnknown}
}

// Kind returns the variant tag.
func (l Location) Kind() LocationKind {
	return l.kind
}

// Span returns the concrete span and true, or a zero span and false for Unknown.
func (l Location) Span() (Span, bool) {
	if l.kind != LocationConcrete {
		return Span{}, false
	}

	return l.span, true
}

// IsUnknown reports whether l is the sentinel.
func (l Location) IsUnknown() bool {
	return l.kind == LocationUnknown
}

// String returns the span or "unknown".
func (l Location) String() string {
	if span, ok := l.Span(); ok {
		return span.String()
	}

	return unknownLocationToken
}

// MarshalJSON encodes Unknown as the string "unknown".
func (l Location) MarshalJSON() ([]byte, error) {
	if span, ok := l.Span(); ok {
		return json.Marshal(span)
	}

	return json.Marshal(unknownLocationToken)
}

// UnmarshalJSON accepts a span object, "unknown", or null.
func (l *Location) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = Unknown()

		return nil
	}

	if trimmed[0] == '"' {
		var token string
		if err := json.Unmarshal(trimmed, &token); err != nil {
			return errors.Wrap(ErrInvalidLocation, err.Error())
		}

		// Any string is a symbolic marker, never a span.
		*l = Unknown()

		return nil
	}

	var span Span
	if err := json.Unmarshal(trimmed, &span); err != nil {
		return errors.Wrap(ErrInvalidLocation, err.Error())
	}

	if !span.Valid() {
		*l = Unknown()

		return nil
	}

	*l = Concrete(span)

	return nil
}
