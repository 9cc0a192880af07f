package adapter

import (
	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/compilerlint/internal/analysis"
)

var (
	// ErrUnknownOperation means the external analysis emitted an edit
	// operation this adapter does not know. Processing must stop.
	ErrUnknownOperation = errors.New("unknown suggestion operation")

	// ErrMissingReplacement means a non-Remove operation carried no text.
	ErrMissingReplacement = errors.New("suggestion has no replacement text")

	// ErrInvalidRange means a suggestion range is not a valid [start, end)
	// pair inside the analyzed source.
	ErrInvalidRange = errors.New("invalid suggestion range")
)

// TranslateSuggestion converts an abstract edit into a concrete fix.
// sourceLen bounds the range; a negative sourceLen disables the upper bound.
func TranslateSuggestion(s analysis.Suggestion, sourceLen int) (Suggestion, error) {
	start, end := s.Range.Start(), s.Range.End()

	if start < 0 || end < start || (sourceLen >= 0 && end > sourceLen) {
		return Suggestion{}, errors.Wrapf(ErrInvalidRange, "[%d, %d) for %q", start, end, s.Description)
	}

	text := func() (string, error) {
		if s.Text == nil {
			return "", errors.Wrapf(ErrMissingReplacement, "%s %q", s.Op, s.Description)
		}

		return *s.Text, nil
	}

	var fix Fix

	switch s.Op {
	case analysis.OpInsertBefore:
		t, err := text()
		if err != nil {
			return Suggestion{}, markFatal(err)
		}

		fix = Fix{Range: analysis.Range{start, start}, Text: t}
	case analysis.OpInsertAfter:
		t, err := text()
		if err != nil {
			return Suggestion{}, markFatal(err)
		}

		fix = Fix{Range: analysis.Range{end, end}, Text: t}
	case analysis.OpReplace:
		t, err := text()
		if err != nil {
			return Suggestion{}, markFatal(err)
		}

		fix = Fix{Range: analysis.Range{start, end}, Text: t}
	case analysis.OpRemove:
		fix = Fix{Range: analysis.Range{start, end}}
	default:
		return Suggestion{}, markFatal(
			errors.Mark(errors.AssertionFailedf("unhandled suggestion operation %q", string(s.Op)), ErrUnknownOperation),
		)
	}

	return Suggestion{Description: s.Description, Fix: fix}, nil
}

// TranslateSuggestions translates every suggestion of a diagnostic. Fatal
// errors abort; invalid ranges are returned separately so the caller can
// drop just those suggestions.
func TranslateSuggestions(in []analysis.Suggestion, sourceLen int) ([]Suggestion, []error, error) {
	if len(in) == 0 {
		return nil, nil, nil
	}

	out := make([]Suggestion, 0, len(in))

	var dropped []error

	for _, s := range in {
		translated, err := TranslateSuggestion(s, sourceLen)
		if err != nil {
			if IsFatal(err) {
				return nil, nil, err
			}

			dropped = append(dropped, err)

			continue
		}

		out = append(out, translated)
	}

	return out, dropped, nil
}

// errFatal marks errors that must halt processing of the file.
var errFatal = errors.New("adapter vocabulary drift")

func markFatal(err error) error {
	return errors.Mark(err, errFatal)
}

// IsFatal reports whether err signals drift between this adapter and the
// external analysis's edit vocabulary.
func IsFatal(err error) bool {
	return errors.Is(err, errFatal)
}
