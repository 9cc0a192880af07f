// Package fix applies text edits produced from lint reports to source text.
package fix

import (
	"os"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/compilerlint/internal/adapter"
	"github.com/smykla-skalski/compilerlint/internal/analysis"
)

var (
	// ErrOutOfRange is returned when an edit range falls outside the source.
	ErrOutOfRange = errors.New("edit range out of bounds")

	// ErrConflict is returned when two edits overlap.
	ErrConflict = errors.New("conflicting edits")
)

// Edit replaces Range of the original text with Text.
type Edit struct {
	Range analysis.Range
	Text  string
	Title string
}

// SkippedEdit records an edit that was not applied.
type SkippedEdit struct {
	Edit   Edit
	Reason string
}

// Result is the outcome of ApplyAll.
type Result struct {
	Output  string
	Applied []Edit
	Skipped []SkippedEdit
}

// Changed reports whether any edit was applied.
func (r *Result) Changed() bool {
	return len(r.Applied) > 0
}

// FromReports collects the auto-fixes of reports in report order.
func FromReports(reports []adapter.Report) []Edit {
	edits := make([]Edit, 0, len(reports))

	for _, r := range reports {
		if r.Fix == nil {
			continue
		}

		edits = append(edits, Edit{Range: r.Fix.Range, Text: r.Fix.Text, Title: r.Message})
	}

	return edits
}

// Apply applies every edit to source. All offsets refer to the original
// text. Any out-of-range or overlapping edit fails the whole call.
func Apply(source string, edits []Edit) (string, error) {
	for i, e := range edits {
		if err := checkRange(e, len(source)); err != nil {
			return "", err
		}

		for _, prev := range edits[:i] {
			if conflicts(prev, e) {
				return "", errors.Wrapf(ErrConflict, "%v overlaps %v", e.Range, prev.Range)
			}
		}
	}

	return splice(source, edits), nil
}

// ApplyAll applies edits greedily in the given order, skipping those that
// are out of range or overlap an edit accepted earlier.
func ApplyAll(source string, edits []Edit) *Result {
	res := &Result{}

	for _, e := range edits {
		if err := checkRange(e, len(source)); err != nil {
			res.Skipped = append(res.Skipped, SkippedEdit{Edit: e, Reason: "edit span out of range"})

			continue
		}

		if slices.ContainsFunc(res.Applied, func(prev Edit) bool { return conflicts(prev, e) }) {
			res.Skipped = append(res.Skipped, SkippedEdit{Edit: e, Reason: "conflicts with previously applied edit"})

			continue
		}

		res.Applied = append(res.Applied, e)
	}

	res.Output = splice(source, res.Applied)

	return res
}

// WriteFile writes content to path, keeping the existing file mode.
func WriteFile(path, content string) error {
	mode := os.FileMode(0o644)

	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}

	return nil
}

func checkRange(e Edit, n int) error {
	start, end := e.Range.Start(), e.Range.End()

	if start < 0 || end < start || end > n {
		return errors.Wrapf(ErrOutOfRange, "[%d, %d) in %d bytes", start, end, n)
	}

	return nil
}

// splice applies non-overlapping edits from the back so earlier offsets stay
// valid. Insertions at the same point keep their input order.
func splice(source string, edits []Edit) string {
	type indexed struct {
		Edit
		order int
	}

	sorted := make([]indexed, len(edits))
	for i, e := range edits {
		sorted[i] = indexed{Edit: e, order: i}
	}

	slices.SortStableFunc(sorted, func(a, b indexed) int {
		if a.Range.Start() != b.Range.Start() {
			return b.Range.Start() - a.Range.Start()
		}

		if a.Range.End() != b.Range.End() {
			return b.Range.End() - a.Range.End()
		}

		return b.order - a.order
	})

	out := source

	for _, e := range sorted {
		out = out[:e.Range.Start()] + e.Text + out[e.Range.End():]
	}

	return out
}

// conflicts reports whether two half-open ranges overlap. Two insertions
// never conflict; an insertion conflicts with a range strictly containing it.
func conflicts(a, b Edit) bool {
	aStart, aEnd := a.Range.Start(), a.Range.End()
	bStart, bEnd := b.Range.Start(), b.Range.End()

	if aStart == aEnd && bStart == bEnd {
		return false
	}

	if aStart == aEnd {
		return bStart < aStart && aStart < bEnd
	}

	if bStart == bEnd {
		return aStart < bStart && bStart < aEnd
	}

	return aStart < bEnd && bStart < aEnd
}
