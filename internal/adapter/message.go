package adapter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/smykla-skalski/compilerlint/internal/analysis"
)

const bailoutPrefix = "[ReactCompilerBailout]"

// heading returns the message heading for a severity. Error-like severities
// carry the category.
func heading(severity analysis.Severity, category string) string {
	switch severity {
	case analysis.SeverityError, analysis.SeverityInvalidReact, analysis.SeverityInvalidJS:
		if category == "" {
			return "Error"
		}

		return "Error(" + category + ")"
	case analysis.SeverityWarning, analysis.SeverityHint, analysis.SeverityTodo:
		return string(severity)
	case "":
		return "Error"
	default:
		return string(severity)
	}
}

// RenderMessage builds the user-facing text of a per-diagnostic report.
func RenderMessage(d *analysis.Detail) string {
	var sb strings.Builder

	sb.WriteString(heading(d.Severity, d.Category))
	sb.WriteString(": ")
	sb.WriteString(clean(d.Reason))

	if desc := clean(d.Description); desc != "" {
		sb.WriteString("\n\n")
		sb.WriteString(desc)
	}

	return sb.String()
}

// RenderBailoutMessage builds the text of a per-unit report.
func RenderBailoutMessage(d *analysis.Detail) string {
	msg := bailoutPrefix + " " + clean(d.Reason)

	if span, ok := d.Location.Span(); ok {
		msg += fmt.Sprintf(" (@:%d:%d)", span.Start.Line, span.Start.Column)
	}

	return msg
}

// RenderUnusedDirective builds the text of an unused-directive report.
func RenderUnusedDirective(directive string) string {
	return fmt.Sprintf("Unused '%s' directive", directive)
}

func clean(s string) string {
	return strings.TrimSpace(ansi.Strip(s))
}
