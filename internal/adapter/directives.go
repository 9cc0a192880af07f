package adapter

import (
	"fmt"

	"github.com/smykla-skalski/compilerlint/internal/analysis"
)

// unusedDirectives reports every opt-out directive among the direct body
// statements of each unit. The caller only invokes it when the file had no
// compile errors, so any such directive opted out of nothing.
func unusedDirectives(units []analysis.Unit, directives TagSet) []Report {
	if directives.Len() == 0 {
		return nil
	}

	var reports []Report

	for _, unit := range units {
		for _, stmt := range unit.Body {
			if stmt.Kind != analysis.StatementDirective || !directives.Has(stmt.Value) {
				continue
			}

			fix := Fix{Range: stmt.Range}

			reports = append(reports, Report{
				Kind:    KindUnusedDirective,
				Message: RenderUnusedDirective(stmt.Value),
				Anchor:  stmt.Span,
				Fix:     &fix,
				Suggestions: []Suggestion{{
					Description: fmt.Sprintf("Remove the '%s' directive", stmt.Value),
					Fix:         fix,
				}},
			})
		}
	}

	return reports
}
