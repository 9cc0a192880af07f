package adapter_test

import (
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/compilerlint/internal/adapter"
	"github.com/smykla-skalski/compilerlint/internal/analysis"
	"github.com/smykla-skalski/compilerlint/internal/fix"
)

var _ = Describe("TranslateSuggestion", func() {
	const source = "const x = useMemo(() => a, [a]);"

	DescribeTable("applies each operation to the source",
		func(op analysis.Operation, r analysis.Range, replacement *string, expected string) {
			s, err := adapter.TranslateSuggestion(analysis.Suggestion{
				Op:          op,
				Range:       r,
				Description: "edit",
				Text:        replacement,
			}, len(source))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Description).To(Equal("edit"))

			out, err := fix.Apply(source, []fix.Edit{{Range: s.Fix.Range, Text: s.Fix.Text}})
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(expected))
		},
		Entry("InsertBefore", analysis.OpInsertBefore, analysis.Range{10, 17}, text("React."),
			"const x = React.useMemo(() => a, [a]);"),
		Entry("InsertAfter", analysis.OpInsertAfter, analysis.Range{27, 30}, text(", b"),
			"const x = useMemo(() => a, [a], b);"),
		Entry("Replace", analysis.OpReplace, analysis.Range{27, 30}, text("[a, b]"),
			"const x = useMemo(() => a, [a, b]);"),
		Entry("Remove", analysis.OpRemove, analysis.Range{25, 30}, nil,
			"const x = useMemo(() => a);"),
		Entry("Replace with empty text", analysis.OpReplace, analysis.Range{0, 6}, text(""),
			"x = useMemo(() => a, [a]);"),
	)

	It("ignores text on Remove", func() {
		s, err := adapter.TranslateSuggestion(analysis.Suggestion{
			Op:    analysis.OpRemove,
			Range: analysis.Range{0, 6},
			Text:  text("ignored"),
		}, len(source))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Fix.Text).To(BeEmpty())
	})

	It("fails fatally on an unknown operation", func() {
		_, err := adapter.TranslateSuggestion(analysis.Suggestion{
			Op:    analysis.Operation("Transmogrify"),
			Range: analysis.Range{0, 1},
			Text:  text("x"),
		}, len(source))
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, adapter.ErrUnknownOperation)).To(BeTrue())
		Expect(adapter.IsFatal(err)).To(BeTrue())
		Expect(errors.HasAssertionFailure(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("Transmogrify"))
	})

	DescribeTable("fails fatally when replacement text is missing",
		func(op analysis.Operation) {
			_, err := adapter.TranslateSuggestion(analysis.Suggestion{
				Op:    op,
				Range: analysis.Range{0, 1},
			}, len(source))
			Expect(errors.Is(err, adapter.ErrMissingReplacement)).To(BeTrue())
			Expect(adapter.IsFatal(err)).To(BeTrue())
		},
		Entry("InsertBefore", analysis.OpInsertBefore),
		Entry("InsertAfter", analysis.OpInsertAfter),
		Entry("Replace", analysis.OpReplace),
	)

	DescribeTable("rejects invalid ranges without being fatal",
		func(r analysis.Range) {
			_, err := adapter.TranslateSuggestion(analysis.Suggestion{
				Op:    analysis.OpRemove,
				Range: r,
			}, len(source))
			Expect(errors.Is(err, adapter.ErrInvalidRange)).To(BeTrue())
			Expect(adapter.IsFatal(err)).To(BeFalse())
		},
		Entry("negative start", analysis.Range{-1, 3}),
		Entry("inverted", analysis.Range{5, 2}),
		Entry("past the end", analysis.Range{0, 999}),
	)

	It("drops invalid suggestions and keeps the rest", func() {
		out, dropped, err := adapter.TranslateSuggestions([]analysis.Suggestion{
			{Op: analysis.OpRemove, Range: analysis.Range{5, 2}},
			{Op: analysis.OpRemove, Range: analysis.Range{0, 6}, Description: "keep"},
		}, len(source))
		Expect(err).NotTo(HaveOccurred())
		Expect(dropped).To(HaveLen(1))
		Expect(out).To(HaveLen(1))
		Expect(out[0].Description).To(Equal("keep"))
	})

	It("aborts the whole list on a fatal error", func() {
		out, _, err := adapter.TranslateSuggestions([]analysis.Suggestion{
			{Op: analysis.OpRemove, Range: analysis.Range{0, 6}},
			{Op: "Bogus", Range: analysis.Range{0, 6}},
		}, len(source))
		Expect(err).To(HaveOccurred())
		Expect(out).To(BeNil())
	})
})

var _ = Describe("Translated fixes", func() {
	It("splice the original text for every valid offset pair", func() {
		const x = "ref.current"

		for s := 0; s <= len(x); s++ {
			for e := s; e <= len(x); e++ {
				replace, err := adapter.TranslateSuggestion(analysis.Suggestion{
					Op: analysis.OpReplace, Range: analysis.Range{s, e}, Text: text("T"),
				}, len(x))
				Expect(err).NotTo(HaveOccurred())

				out, err := fix.Apply(x, []fix.Edit{{Range: replace.Fix.Range, Text: replace.Fix.Text}})
				Expect(err).NotTo(HaveOccurred())
				Expect(out).To(Equal(x[:s]+"T"+x[e:]), "Replace [%d, %d)", s, e)

				remove, err := adapter.TranslateSuggestion(analysis.Suggestion{
					Op: analysis.OpRemove, Range: analysis.Range{s, e},
				}, len(x))
				Expect(err).NotTo(HaveOccurred())

				out, err = fix.Apply(x, []fix.Edit{{Range: remove.Fix.Range, Text: remove.Fix.Text}})
				Expect(err).NotTo(HaveOccurred())
				Expect(out).To(Equal(x[:s]+x[e:]), "Remove [%d, %d)", s, e)
			}
		}
	})
})
