package adapter

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/compilerlint/internal/analysis"
	"github.com/smykla-skalski/compilerlint/pkg/logger"
)

// FailureAnchor is where analysis-failure reports are attached.
var FailureAnchor = analysis.Span{
	Start: analysis.Position{Line: 1, Column: 0},
	End:   analysis.Position{Line: 1, Column: 0},
}

// Stats counts what happened to the events of one file.
type Stats struct {
	Events            int
	CompileErrors     int
	MarkerSuppressed  int
	Ignored           int
	Unanchored        int
	Bailouts          int
	DroppedSuggestion int
}

// Outcome is the result of processing one analysis run.
type Outcome struct {
	Reports []Report
	Stats   Stats
}

// Processor turns analysis results into reports. It holds no per-file state
// and is safe for concurrent use.
type Processor struct {
	opts   Options
	logger logger.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(opts Options, log logger.Logger) *Processor {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Processor{opts: opts, logger: log}
}

// Options returns the processor's options.
func (p *Processor) Options() Options {
	return p.opts
}

// Process consumes the event stream of result in order and returns the
// reports to surface. An error is returned only for edit vocabulary drift;
// no partial reports are returned with it.
func (p *Processor) Process(result *analysis.Result) (*Outcome, error) {
	if result == nil {
		return &Outcome{}, nil
	}

	var (
		mode     = p.opts.Mode()
		lines    = SplitLines(result.Source)
		supp     = newSuppressor(p.opts, result.Comments)
		bailouts = make(map[analysis.Span]struct{})
		clean    = true
		out      = &Outcome{}
	)

	for _, event := range result.Events {
		out.Stats.Events++

		if !event.IsCompileError() {
			continue
		}

		out.Stats.CompileErrors++
		clean = false

		detail := event.Detail

		if supp.byMarker(detail) {
			out.Stats.MarkerSuppressed++

			continue
		}

		if mode == ModeBailout && event.Unit != nil {
			if _, seen := bailouts[*event.Unit]; !seen {
				bailouts[*event.Unit] = struct{}{}
				out.Stats.Bailouts++

				out.Reports = append(out.Reports, Report{
					Kind:     KindBailout,
					Message:  RenderBailoutMessage(detail),
					Anchor:   UnitAnchor(*event.Unit, lines),
					Severity: detail.Severity,
					Category: detail.Category,
				})
			}
		}

		if supp.byTag(detail) {
			out.Stats.Ignored++

			continue
		}

		if p.opts.BailoutsOnly {
			continue
		}

		report, ok, err := p.diagnosticReport(event, lines, mode, len(result.Source), &out.Stats)
		if err != nil {
			return nil, errors.Wrapf(err, "processing %s", result.Filename)
		}

		if ok {
			out.Reports = append(out.Reports, report)
		}
	}

	if clean {
		out.Reports = append(out.Reports, unusedDirectives(result.Units, p.opts.OptOutDirectives)...)
	}

	p.logger.Debug("processed analysis result",
		"file", result.Filename,
		"mode", mode.String(),
		"events", out.Stats.Events,
		"compile_errors", out.Stats.CompileErrors,
		"reports", len(out.Reports),
	)

	return out, nil
}

func (p *Processor) diagnosticReport(
	event analysis.Event,
	lines SourceLines,
	mode Mode,
	sourceLen int,
	stats *Stats,
) (Report, bool, error) {
	detail := event.Detail

	anchor, ok := ResolveAnchor(detail.Location, event.Unit, lines, mode)
	if !ok {
		stats.Unanchored++

		return Report{}, false, nil
	}

	suggestions, dropped, err := TranslateSuggestions(detail.Suggestions, sourceLen)
	if err != nil {
		return Report{}, false, err
	}

	for _, d := range dropped {
		stats.DroppedSuggestion++
		p.logger.Warn("dropping suggestion", "error", d.Error(), "reason", detail.Reason)
	}

	report := Report{
		Kind:        KindDiagnostic,
		Message:     RenderMessage(detail),
		Anchor:      anchor,
		Severity:    detail.Severity,
		Category:    detail.Category,
		Suggestions: suggestions,
	}

	if len(suggestions) == 1 {
		fix := suggestions[0].Fix
		report.Fix = &fix
	}

	return report, true, nil
}

// ProcessFailure builds the single report surfaced when the external
// analysis itself failed for a file.
func ProcessFailure(err error) Report {
	msg := "React Compiler analysis failed"

	if err != nil {
		first, _, _ := strings.Cut(err.Error(), "\n")
		msg += ": " + clean(first)
	}

	return Report{
		Kind:     KindAnalysisFailure,
		Message:  msg,
		Anchor:   FailureAnchor,
		Severity: analysis.SeverityError,
	}
}
