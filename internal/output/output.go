// Package output renders lint results for the terminal and for tools.
package output

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/compilerlint/internal/color"
	"github.com/smykla-skalski/compilerlint/internal/runner"
)

// RuleID identifies findings of this linter in machine-readable output.
const RuleID = "react-compiler/react-compiler"

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects a Reporter.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTable}

// Valid reports whether f is supported.
func (f Format) Valid() bool {
	return slices.Contains(Formats, f)
}

// Meta carries run information shown alongside results.
type Meta struct {
	Elapsed time.Duration

	// BaseDir makes file paths relative when set.
	BaseDir string

	// Width is the terminal width, 0 when unknown.
	Width int
}

// Reporter writes results.
type Reporter interface {
	Report(w io.Writer, results []runner.FileResult, meta Meta) error
}

// New returns the reporter for format.
//
//nolint:ireturn // reporters are selected at runtime
func New(format Format, theme color.Theme) (Reporter, error) {
	switch format {
	case FormatText, "":
		return NewTextReporter(theme), nil
	case FormatJSON:
		return NewJSONReporter(), nil
	case FormatYAML:
		return NewYAMLReporter(), nil
	case FormatTable:
		return NewTableReporter(theme), nil
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q (want one of %s)", format, formatList())
	}
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}

	return strings.Join(names, ", ")
}

func displayPath(path, base string) string {
	if base == "" {
		return path
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	rel, err := filepath.Rel(base, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return rel
}
