package output

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/smykla-skalski/compilerlint/internal/adapter"
	"github.com/smykla-skalski/compilerlint/internal/runner"
)

// eslintSeverity is the host severity of every report: all findings are errors.
const eslintSeverity = 2

// FileReport mirrors one entry of ESLint's JSON formatter output.
type FileReport struct {
	FilePath            string    `json:"filePath"            yaml:"filePath"`
	Messages            []Message `json:"messages"            yaml:"messages"`
	ErrorCount          int       `json:"errorCount"          yaml:"errorCount"`
	WarningCount        int       `json:"warningCount"        yaml:"warningCount"`
	FixableErrorCount   int       `json:"fixableErrorCount"   yaml:"fixableErrorCount"`
	FixableWarningCount int       `json:"fixableWarningCount" yaml:"fixableWarningCount"`
}

// Message is one report. Columns are 1-based as in ESLint output.
type Message struct {
	RuleID      string               `json:"ruleId"                yaml:"ruleId"`
	Severity    int                  `json:"severity"              yaml:"severity"`
	Message     string               `json:"message"               yaml:"message"`
	Line        int                  `json:"line"                  yaml:"line"`
	Column      int                  `json:"column"                yaml:"column"`
	EndLine     int                  `json:"endLine"               yaml:"endLine"`
	EndColumn   int                  `json:"endColumn"             yaml:"endColumn"`
	Kind        adapter.Kind         `json:"kind"                  yaml:"kind"`
	Category    string               `json:"category,omitempty"    yaml:"category,omitempty"`
	Fix         *adapter.Fix         `json:"fix,omitempty"         yaml:"fix,omitempty"`
	Suggestions []adapter.Suggestion `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// ToFileReports converts results to ESLint's shape. Skipped files are kept
// with no messages, matching ESLint's behavior for clean files.
func ToFileReports(results []runner.FileResult, base string) []FileReport {
	out := make([]FileReport, 0, len(results))

	for _, res := range results {
		fr := FileReport{
			FilePath: displayPath(res.Path, base),
			Messages: make([]Message, 0, len(res.Reports)),
		}

		for _, r := range res.Reports {
			fr.Messages = append(fr.Messages, Message{
				RuleID:      RuleID,
				Severity:    eslintSeverity,
				Message:     r.Message,
				Line:        r.Anchor.Start.Line,
				Column:      r.Anchor.Start.Column + 1,
				EndLine:     r.Anchor.End.Line,
				EndColumn:   r.Anchor.End.Column + 1,
				Kind:        r.Kind,
				Category:    r.Category,
				Fix:         r.Fix,
				Suggestions: r.Suggestions,
			})

			fr.ErrorCount++

			if r.HasFix() {
				fr.FixableErrorCount++
			}
		}

		out = append(out, fr)
	}

	return out
}

// JSONReporter writes ESLint-compatible JSON.
type JSONReporter struct{}

// NewJSONReporter creates a JSONReporter.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

// Report writes results as an indented JSON array.
func (*JSONReporter) Report(w io.Writer, results []runner.FileResult, meta Meta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(ToFileReports(results, meta.BaseDir)); err != nil {
		return errors.Wrap(err, "encoding json report")
	}

	return nil
}

// YAMLReporter writes the ESLint structure as YAML.
type YAMLReporter struct{}

// NewYAMLReporter creates a YAMLReporter.
func NewYAMLReporter() *YAMLReporter {
	return &YAMLReporter{}
}

// Report writes results as a YAML sequence.
func (*YAMLReporter) Report(w io.Writer, results []runner.FileResult, meta Meta) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2) //nolint:mnd // conventional yaml indent

	if err := enc.Encode(ToFileReports(results, meta.BaseDir)); err != nil {
		return errors.Wrap(err, "encoding yaml report")
	}

	return errors.Wrap(enc.Close(), "closing yaml encoder")
}
