package doctor

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/compilerlint/internal/color"
)

var categoryNames = map[Category]string{
	CategoryConfig:   "Configuration",
	CategoryAnalyzer: "Analyzer",
}

// Report writes results as a checklist grouped by category.
func Report(w io.Writer, results []CheckResult, theme color.Theme, verbose bool) error {
	var sb strings.Builder

	sb.WriteString("Checking compilerlint setup...\n")

	var current Category

	for _, result := range results {
		if result.Category != current {
			current = result.Category
			fmt.Fprintf(&sb, "\n%s:\n", categoryNames[current])
		}

		fmt.Fprintf(&sb, "  %s %s", statusIcon(result, theme), result.Name)

		if result.Message != "" {
			fmt.Fprintf(&sb, " - %s", result.Message)
		}

		sb.WriteByte('\n')

		if verbose || !result.Passed() {
			for _, detail := range result.Details {
				fmt.Fprintf(&sb, "     %s\n", theme.Muted.Render(detail))
			}
		}
	}

	errs, warnings, passed := countResults(results)
	fmt.Fprintf(&sb, "\nSummary: %d error(s), %d warning(s), %d passed\n", errs, warnings, passed)

	_, err := io.WriteString(w, sb.String())

	return errors.Wrap(err, "writing doctor report")
}

func statusIcon(result CheckResult, theme color.Theme) string {
	switch result.Status {
	case StatusPass:
		return theme.Success.Render("✔")
	case StatusFail:
		return theme.Error.Render("✖")
	case StatusWarn:
		return theme.Warning.Render("!")
	default:
		return theme.Muted.Render("-")
	}
}

func countResults(results []CheckResult) (errs, warnings, passed int) {
	for _, result := range results {
		switch result.Status {
		case StatusPass:
			passed++
		case StatusFail:
			errs++
		case StatusWarn:
			warnings++
		}
	}

	return errs, warnings, passed
}
