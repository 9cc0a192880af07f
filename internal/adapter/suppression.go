package adapter

import (
	"regexp"
	"slices"
	"strings"

	"github.com/smykla-skalski/compilerlint/internal/analysis"
)

// suppressor answers whether a diagnostic is filtered out, either by a
// marker comment on the preceding line or by the ignore sets.
type suppressor struct {
	opts Options

	// markers maps a comment's end line to the directives of comments ending there.
	markers map[int][]directive
}

// descriptionSep splits an ESLint directive from its "-- reason" tail.
var descriptionSep = regexp.MustCompile(`\s-{2,}\s`)

// directive is a parsed "eslint-disable-next-line rule-a, rule-b -- reason"
// comment. The reason is dropped.
type directive struct {
	name  string
	rules []string
}

func parseDirective(text string) directive {
	text = strings.TrimSpace(text)

	if loc := descriptionSep.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	name, rest, _ := strings.Cut(strings.Join(strings.Fields(text), " "), " ")

	var rules []string

	for _, rule := range strings.Split(rest, ",") {
		if rule = strings.TrimSpace(rule); rule != "" {
			rules = append(rules, rule)
		}
	}

	return directive{name: name, rules: rules}
}

// covers reports whether d names the same directive as marker and lists
// every rule the marker lists.
func (d directive) covers(marker directive) bool {
	if d.name == "" || d.name != marker.name {
		return false
	}

	for _, rule := range marker.rules {
		if !slices.Contains(d.rules, rule) {
			return false
		}
	}

	return true
}

func newSuppressor(opts Options, comments []analysis.Comment) *suppressor {
	s := &suppressor{
		opts:    opts,
		markers: make(map[int][]directive, len(comments)),
	}

	for _, c := range comments {
		line := c.Span.End.Line
		s.markers[line] = append(s.markers[line], parseDirective(c.Text))
	}

	return s
}

// byMarker reports whether a marker comment ending on the line directly
// above the diagnostic suppresses it. Unknown locations are never
// marker-suppressed.
func (s *suppressor) byMarker(d *analysis.Detail) bool {
	span, ok := d.Location.Span()
	if !ok {
		return false
	}

	class, ok := s.opts.classFor(d.Category)
	if !ok {
		return false
	}

	marker := parseDirective(class.Marker)

	return slices.ContainsFunc(s.markers[span.Start.Line-1], func(d directive) bool {
		return d.covers(marker)
	})
}

// byTag reports whether the diagnostic's severity or category is ignored.
func (s *suppressor) byTag(d *analysis.Detail) bool {
	return s.opts.IgnoreSeverityLevels.Has(string(d.Severity)) ||
		s.opts.IgnoreCategories.Has(d.Category)
}
