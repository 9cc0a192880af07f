package adapter_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/compilerlint/internal/adapter"
	"github.com/smykla-skalski/compilerlint/internal/analysis"
)

var _ = Describe("ResolveAnchor", func() {
	lines := adapter.SplitLines("function Ünïcode() {\r\n  return null;\r\n}\r\n")
	unit := spanPtr(1, 0, 3, 1)

	It("uses a concrete location as is", func() {
		for _, mode := range []adapter.Mode{adapter.ModePerDiagnostic, adapter.ModeBailout} {
			anchor, ok := adapter.ResolveAnchor(analysis.Concrete(span(2, 2, 2, 14)), unit, lines, mode)
			Expect(ok).To(BeTrue())
			Expect(anchor).To(Equal(span(2, 2, 2, 14)))
		}
	})

	It("has no anchor for an unknown location per diagnostic", func() {
		_, ok := adapter.ResolveAnchor(analysis.Unknown(), unit, lines, adapter.ModePerDiagnostic)
		Expect(ok).To(BeFalse())
	})

	It("has no anchor for an unknown location without a unit", func() {
		_, ok := adapter.ResolveAnchor(analysis.Unknown(), nil, lines, adapter.ModeBailout)
		Expect(ok).To(BeFalse())
	})

	It("measures the first line in characters, ignoring CR", func() {
		anchor, ok := adapter.ResolveAnchor(analysis.Unknown(), unit, lines, adapter.ModeBailout)
		Expect(ok).To(BeTrue())
		Expect(anchor).To(Equal(span(1, 0, 1, 20)))
		Expect(anchor.SingleLine()).To(BeTrue())
	})

	It("keeps a single-line unit", func() {
		Expect(adapter.UnitAnchor(span(2, 2, 2, 14), lines)).To(Equal(span(2, 2, 2, 14)))
	})

	It("counts astral characters as two columns", func() {
		emoji := adapter.SplitLines("const label = '🚀 ok';\nfunction x() {}\n")
		Expect(adapter.UnitAnchor(span(1, 0, 2, 15), emoji)).To(Equal(span(1, 0, 1, 22)))
	})

	It("never ends before the unit start", func() {
		Expect(adapter.UnitAnchor(span(9, 4, 12, 0), lines)).To(Equal(span(9, 4, 9, 4)))
	})
})

var _ = Describe("Options", func() {
	It("selects bailout mode from either flag", func() {
		opts := adapter.DefaultOptions()
		Expect(opts.Mode()).To(Equal(adapter.ModePerDiagnostic))

		opts.ReportAllBailouts = true
		Expect(opts.Mode()).To(Equal(adapter.ModeBailout))

		opts = adapter.DefaultOptions()
		opts.BailoutsOnly = true
		Expect(opts.Mode()).To(Equal(adapter.ModeBailout))
	})

	It("ships empty ignore sets and both opt-out directives", func() {
		opts := adapter.DefaultOptions()

		Expect(opts.IgnoreSeverityLevels.Len()).To(BeZero())
		Expect(opts.IgnoreCategories.Len()).To(BeZero())
		Expect(opts.OptOutDirectives.Values()).To(Equal([]string{"use no forget", "use no memo"}))
		Expect(opts.FindingClasses).To(HaveLen(2))
	})

	It("builds tag sets without empty values", func() {
		set := adapter.NewTagSet("b", "", "a", "b")

		Expect(set.Len()).To(Equal(2))
		Expect(set.Has("")).To(BeFalse())
		Expect(set.String()).To(Equal("{a, b}"))

		var zero adapter.TagSet
		Expect(zero.Has("a")).To(BeFalse())
	})
})
