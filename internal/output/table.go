package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/cockroachdb/errors"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/smykla-skalski/compilerlint/internal/color"
	"github.com/smykla-skalski/compilerlint/internal/runner"
)

// TableReporter renders all problems in a single bordered table.
type TableReporter struct {
	theme color.Theme
}

// NewTableReporter creates a TableReporter.
func NewTableReporter(theme color.Theme) *TableReporter {
	return &TableReporter{theme: theme}
}

// Report writes the table followed by the text summary.
func (r *TableReporter) Report(w io.Writer, results []runner.FileResult, meta Meta) error {
	var buf bytes.Buffer

	rows := r.rows(results, meta)

	if len(rows) > 0 {
		opts := []tablewriter.Option{
			tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
				Symbols: tw.NewSymbols(tw.StyleRounded),
			})),
			tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
			tablewriter.WithConfig(tablewriter.NewConfigBuilder().
				WithTrimSpace(tw.Off).
				Row().Merging().WithMode(tw.MergeVertical).Build().
				Formatting().WithAutoWrap(tw.WrapNormal).Build().
				Build().Build()),
		}

		if widths := columnWidths(rows, meta.Width); widths != nil {
			opts = append(opts, tablewriter.WithColumnWidths(widths))
		}

		t := tablewriter.NewTable(&buf, opts...)
		t.Header([]string{"File", "Position", "Kind", "Message"})

		for _, row := range rows {
			if err := t.Append(row); err != nil {
				return errors.Wrap(err, "appending table row")
			}
		}

		if err := t.Render(); err != nil {
			return errors.Wrap(err, "rendering table")
		}
	}

	out := dimBorders(strings.TrimRight(buf.String(), "\n"), r.theme)
	if out != "" {
		out += "\n"
	}

	out += NewTextReporter(r.theme).summary(runner.Summarize(results), meta.Elapsed) + "\n"

	_, err := io.WriteString(w, out)

	return errors.Wrap(err, "writing table report")
}

func (r *TableReporter) rows(results []runner.FileResult, meta Meta) [][]string {
	var rows [][]string

	for _, res := range results {
		path := displayPath(res.Path, meta.BaseDir)

		for _, rep := range res.Reports {
			headline, _, _ := strings.Cut(rep.Message, "\n")

			rows = append(rows, []string{
				path,
				fmt.Sprintf("%d:%d", rep.Anchor.Start.Line, rep.Anchor.Start.Column+1),
				string(rep.Kind),
				headline,
			})
		}
	}

	return rows
}

// columnWidths gives the message column whatever the terminal has left.
// Returns nil when the width is unknown or too narrow.
func columnWidths(rows [][]string, width int) tw.Mapper[int, int] {
	const (
		minMsgW = 20
		padW    = 2
		numCols = 4
	)

	if width == 0 {
		return nil
	}

	fixed := make([]int, numCols-1)

	for _, row := range rows {
		for i := range fixed {
			fixed[i] = max(fixed[i], runewidth.StringWidth(ansi.Strip(row[i])))
		}
	}

	used := numCols + 1

	for _, w := range fixed {
		used += w + padW
	}

	msgW := width - used - padW
	if msgW < minMsgW {
		return nil
	}

	m := make(tw.Mapper[int, int], numCols)
	for i, w := range fixed {
		m[i] = w + padW
	}

	m[numCols-1] = msgW + padW

	return m
}

// dimBorders applies the muted style to box-drawing characters.
func dimBorders(s string, theme color.Theme) string {
	for _, ch := range []string{
		"╭", "╮", "╰", "╯", "│", "─", "┬", "┴", "├", "┤", "┼",
	} {
		s = strings.ReplaceAll(s, ch, theme.Muted.Render(ch))
	}

	return s
}
