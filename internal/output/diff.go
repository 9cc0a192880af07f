package output

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/pmezard/go-difflib/difflib"
)

const diffContextLines = 3

// Diff returns a unified diff between before and after for path, or "" when
// they are equal.
func Diff(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContextLines,
	})
	if err != nil {
		return "", errors.Wrapf(err, "diffing %s", path)
	}

	return diff, nil
}

// WriteDiff writes the diff for path to w.
func WriteDiff(w io.Writer, path, before, after string) error {
	diff, err := Diff(path, before, after)
	if err != nil || diff == "" {
		return err
	}

	_, err = io.WriteString(w, diff)

	return errors.Wrap(err, "writing diff")
}
