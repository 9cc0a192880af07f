package adapter

import (
	"slices"
	"strings"
)

// DefaultOptOutDirectives are the directives that opt a unit out of
// compilation.
var DefaultOptOutDirectives = []string{"use no forget", "use no memo"}

// TagSet is an immutable set of opaque string tags.
type TagSet struct {
	m map[string]struct{}
}

// NewTagSet builds a TagSet. Empty and duplicate values are ignored.
func NewTagSet(values ...string) TagSet {
	m := make(map[string]struct{}, len(values))

	for _, v := range values {
		if v == "" {
			continue
		}

		m[v] = struct{}{}
	}

	return TagSet{m: m}
}

// Has reports membership. The zero TagSet contains nothing.
func (t TagSet) Has(tag string) bool {
	_, ok := t.m[tag]

	return ok
}

// Len returns the number of tags.
func (t TagSet) Len() int {
	return len(t.m)
}

// Values returns the tags in sorted order.
func (t TagSet) Values() []string {
	out := make([]string, 0, len(t.m))

	for v := range t.m {
		out = append(out, v)
	}

	slices.Sort(out)

	return out
}

func (t TagSet) String() string {
	return "{" + strings.Join(t.Values(), ", ") + "}"
}

// FindingClass associates diagnostic categories with the exact text of a
// comment that suppresses them on the following line.
type FindingClass struct {
	Name       string
	Categories TagSet
	Marker     string
}

// DefaultFindingClasses returns the built-in finding classes.
func DefaultFindingClasses() []FindingClass {
	return []FindingClass{
		{
			Name:       "hooks",
			Categories: NewTagSet("Hooks", "RuleOfHooks"),
			Marker:     "eslint-disable-next-line react-hooks/rules-of-hooks",
		},
		{
			Name:       "refs",
			Categories: NewTagSet("Refs"),
			Marker:     "eslint-disable-next-line react-compiler/no-ref-access-in-render",
		},
	}
}

// Mode selects the reporting policy.
type Mode int

const (
	// ModePerDiagnostic reports each surviving diagnostic individually.
	ModePerDiagnostic Mode = iota

	// ModeBailout additionally reports each compilation unit that failed.
	ModeBailout
)

func (m Mode) String() string {
	if m == ModeBailout {
		return "bailout"
	}

	return "per-diagnostic"
}

// Options configures a Processor.
type Options struct {
	IgnoreSeverityLevels TagSet
	IgnoreCategories     TagSet

	// ReportAllBailouts enables per-unit bailout reports.
	ReportAllBailouts bool

	// BailoutsOnly implies ReportAllBailouts and drops per-diagnostic reports.
	BailoutsOnly bool

	FindingClasses   []FindingClass
	OptOutDirectives TagSet
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		IgnoreSeverityLevels: NewTagSet(),
		IgnoreCategories:     NewTagSet(),
		FindingClasses:       DefaultFindingClasses(),
		OptOutDirectives:     NewTagSet(DefaultOptOutDirectives...),
	}
}

// Mode returns the reporting policy selected by the options.
func (o Options) Mode() Mode {
	if o.ReportAllBailouts || o.BailoutsOnly {
		return ModeBailout
	}

	return ModePerDiagnostic
}

// classFor returns the finding class owning category, if any.
func (o Options) classFor(category string) (FindingClass, bool) {
	for _, c := range o.FindingClasses {
		if c.Categories.Has(category) {
			return c, true
		}
	}

	return FindingClass{}, false
}
