package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize/english"
	"github.com/hako/durafmt"

	"github.com/smykla-skalski/compilerlint/internal/adapter"
	"github.com/smykla-skalski/compilerlint/internal/color"
	"github.com/smykla-skalski/compilerlint/internal/runner"
)

const durationDisplayUnits = 2

// TextReporter writes a human-readable, ESLint "stylish"-like listing.
type TextReporter struct {
	theme color.Theme
}

// NewTextReporter creates a TextReporter.
func NewTextReporter(theme color.Theme) *TextReporter {
	return &TextReporter{theme: theme}
}

// Report writes one block per file with problems, then a summary line.
func (r *TextReporter) Report(w io.Writer, results []runner.FileResult, meta Meta) error {
	var sb strings.Builder

	for _, res := range results {
		if len(res.Reports) == 0 {
			continue
		}

		sb.WriteString(r.theme.Path.Render(displayPath(res.Path, meta.BaseDir)))
		sb.WriteByte('\n')

		for i := range res.Reports {
			r.writeReport(&sb, &res.Reports[i])
		}

		sb.WriteByte('\n')
	}

	sb.WriteString(r.summary(runner.Summarize(results), meta.Elapsed))
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())

	return errors.Wrap(err, "writing text report")
}

func (r *TextReporter) writeReport(sb *strings.Builder, rep *adapter.Report) {
	pos := fmt.Sprintf("%d:%d", rep.Anchor.Start.Line, rep.Anchor.Start.Column+1)
	headline, rest, _ := strings.Cut(rep.Message, "\n")

	fmt.Fprintf(sb, "  %s  %s  %s  %s",
		r.theme.Position.Render(fmt.Sprintf("%-7s", pos)),
		r.label(rep),
		headline,
		r.theme.Rule.Render(RuleID),
	)

	if rep.HasFix() {
		sb.WriteString("  " + r.theme.Fixable.Render("(fixable)"))
	}

	sb.WriteByte('\n')

	for line := range strings.SplitSeq(strings.TrimSpace(rest), "\n") {
		if line == "" {
			continue
		}

		sb.WriteString("           ")
		sb.WriteString(r.theme.Muted.Render(line))
		sb.WriteByte('\n')
	}

	for _, s := range rep.Suggestions {
		sb.WriteString("           ")
		sb.WriteString(r.theme.Info.Render("suggestion: " + s.Description))
		sb.WriteByte('\n')
	}
}

func (r *TextReporter) label(rep *adapter.Report) string {
	switch rep.Kind {
	case adapter.KindBailout:
		return r.theme.Warning.Render("bailout")
	case adapter.KindUnusedDirective:
		return r.theme.Warning.Render("unused ")
	case adapter.KindAnalysisFailure:
		return r.theme.Error.Render("failure")
	default:
		return r.theme.Error.Render("error  ")
	}
}

func (r *TextReporter) summary(s runner.Summary, elapsed time.Duration) string {
	files := english.Plural(s.Linted+s.Failed, "file", "")

	var line string

	if s.Problems == 0 {
		line = r.theme.Success.Render(fmt.Sprintf("✔ no problems in %s", files))
	} else {
		line = r.theme.Error.Render(fmt.Sprintf("✖ %s in %s",
			english.Plural(s.Problems, "problem", ""), files))

		if s.Fixable > 0 {
			line += fmt.Sprintf(" (%d fixable with `compilerlint fix`)", s.Fixable)
		}
	}

	if s.Skipped > 0 {
		line += r.theme.Muted.Render(fmt.Sprintf(", %d skipped", s.Skipped))
	}

	if elapsed > 0 {
		line += r.theme.Muted.Render(" in " + FormatDuration(elapsed))
	}

	return line
}

// FormatDuration renders d with at most two units, e.g. "1 second 250 milliseconds".
func FormatDuration(d time.Duration) string {
	return durafmt.Parse(d).LimitFirstN(durationDisplayUnits).String()
}
