package fix_test

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/compilerlint/internal/adapter"
	"github.com/smykla-skalski/compilerlint/internal/analysis"
	"github.com/smykla-skalski/compilerlint/internal/fix"
)

var _ = Describe("Apply", func() {
	const source = "function App() {\n  'use no memo';\n  return <div />;\n}\n"

	It("returns the source unchanged with no edits", func() {
		out, err := fix.Apply(source, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(source))
	})

	It("applies edits using offsets of the original text", func() {
		out, err := fix.Apply("abcdef", []fix.Edit{
			{Range: analysis.Range{0, 1}, Text: "XYZ"},
			{Range: analysis.Range{4, 6}, Text: ""},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("XYZbcd"))
	})

	It("keeps insertion order at the same point", func() {
		out, err := fix.Apply("ab", []fix.Edit{
			{Range: analysis.Range{1, 1}, Text: "1"},
			{Range: analysis.Range{1, 1}, Text: "2"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("a12b"))
	})

	It("allows an insertion at the start of a replaced range", func() {
		out, err := fix.Apply("abcd", []fix.Edit{
			{Range: analysis.Range{1, 3}, Text: "X"},
			{Range: analysis.Range{1, 1}, Text: ">"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("a>Xd"))
	})

	It("rejects overlapping edits", func() {
		_, err := fix.Apply("abcdef", []fix.Edit{
			{Range: analysis.Range{0, 3}},
			{Range: analysis.Range{2, 4}},
		})
		Expect(errors.Is(err, fix.ErrConflict)).To(BeTrue())
	})

	It("rejects out of range edits", func() {
		_, err := fix.Apply("abc", []fix.Edit{{Range: analysis.Range{2, 9}}})
		Expect(errors.Is(err, fix.ErrOutOfRange)).To(BeTrue())
	})

	It("removes an unused directive through its report fix", func() {
		start := len("function App() {\n  ")
		end := start + len("'use no memo';")

		reports := []adapter.Report{
			{Message: "no fix"},
			{Message: "Unused 'use no memo' directive", Fix: &adapter.Fix{Range: analysis.Range{start, end}}},
		}

		edits := fix.FromReports(reports)
		Expect(edits).To(HaveLen(1))
		Expect(edits[0].Title).To(Equal("Unused 'use no memo' directive"))

		out, err := fix.Apply(source, edits)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("function App() {\n  \n  return <div />;\n}\n"))
	})
})

var _ = Describe("ApplyAll", func() {
	It("skips conflicting and out of range edits", func() {
		res := fix.ApplyAll("abcdef", []fix.Edit{
			{Range: analysis.Range{0, 2}, Text: "Z"},
			{Range: analysis.Range{1, 3}, Text: "Q"},
			{Range: analysis.Range{5, 10}, Text: "R"},
			{Range: analysis.Range{4, 5}, Text: "E!"},
		})

		Expect(res.Changed()).To(BeTrue())
		Expect(res.Output).To(Equal("ZcdE!f"))
		Expect(res.Applied).To(HaveLen(2))
		Expect(res.Skipped).To(HaveLen(2))
		Expect(res.Skipped[0].Reason).To(ContainSubstring("conflicts"))
		Expect(res.Skipped[1].Reason).To(ContainSubstring("out of range"))
	})

	It("reports no change when nothing applies", func() {
		res := fix.ApplyAll("abc", nil)
		Expect(res.Changed()).To(BeFalse())
		Expect(res.Output).To(Equal("abc"))
	})
})

var _ = Describe("WriteFile", func() {
	It("preserves the file mode", func() {
		path := filepath.Join(GinkgoT().TempDir(), "App.tsx")
		Expect(os.WriteFile(path, []byte("old"), 0o600)).To(Succeed())

		Expect(fix.WriteFile(path, "new")).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("new"))

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))
	})
})
