// Package adapter translates the event stream of the external compiler
// analysis into host lint reports: it filters suppressed findings, anchors
// each finding on a concrete span, translates suggested edits into fixes and
// applies the configured reporting policy.
package adapter

import "github.com/smykla-skalski/compilerlint/internal/analysis"

// Kind classifies a Report by the policy that produced it.
type Kind string

const (
	// KindDiagnostic is a per-diagnostic report.
	KindDiagnostic Kind = "diagnostic"

	// KindBailout is a per-compilation-unit report.
	KindBailout Kind = "bailout"

	// KindUnusedDirective flags an opt-out directive that had no effect.
	KindUnusedDirective Kind = "unused-directive"

	// KindAnalysisFailure describes a failure of the external analysis itself.
	KindAnalysisFailure Kind = "analysis-failure"
)

// Fix is a single text edit: replace Range of the original source with Text.
// Insertions use an empty range, removals an empty Text.
type Fix struct {
	Range analysis.Range `json:"range" yaml:"range"`
	Text  string         `json:"text"  yaml:"text"`
}

// Suggestion is a user-selectable alternative fix.
type Suggestion struct {
	Description string `json:"desc" yaml:"desc"`
	Fix         Fix    `json:"fix"  yaml:"fix"`
}

// Report is the host-facing output unit. Anchor is always a concrete span.
type Report struct {
	Kind        Kind
	Message     string
	Anchor      analysis.Span
	Severity    analysis.Severity
	Category    string
	Fix         *Fix
	Suggestions []Suggestion
}

// HasFix reports whether the report carries an auto-fix.
func (r *Report) HasFix() bool {
	return r.Fix != nil
}
