package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/compilerlint/internal/analysis"
)

var _ = Describe("ShouldProcess", func() {
	DescribeTable("eligibility",
		func(filename, source string, expected bool) {
			Expect(analysis.ShouldProcess(filename, source)).To(Equal(expected))
		},
		Entry("tsx is always processed", "App.tsx", "export const x = 1;", true),
		Entry("react import", "util.ts", "import { useState } from 'react';", true),
		Entry("component declaration", "view.js", "function Button(props) { return null; }", true),
		Entry("component arrow", "view.jsx", "const Card = () => null;", true),
		Entry("hook", "hooks.ts", "export function useThing() {}", true),
		Entry("plain module", "math.ts", "export const add = (a, b) => a + b;", false),
		Entry("non-source file", "README.md", "function Button() {}", false),
	)

	It("recognizes source extensions case-insensitively", func() {
		Expect(analysis.HasSourceExtension("Index.MJS")).To(BeTrue())
		Expect(analysis.HasSourceExtension("style.css")).To(BeFalse())
	})
})

var _ = Describe("MergeCompilerOptions", func() {
	It("keeps defaults when no user options are given", func() {
		merged := analysis.MergeCompilerOptions(nil)

		Expect(merged).To(HaveKeyWithValue("noEmit", true))
		Expect(merged).To(HaveKeyWithValue("panicThreshold", "none"))

		env, ok := merged["environment"].(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(env).To(HaveKeyWithValue("validateRefAccessDuringRender", true))
	})

	It("merges environment one level deep and replaces other keys", func() {
		merged := analysis.MergeCompilerOptions(map[string]any{
			"panicThreshold": "all_errors",
			"environment": map[string]any{
				"validateHooksUsage": false,
				"enableTreatRefLikeIdentifiersAsRefs": true,
			},
		})

		Expect(merged).To(HaveKeyWithValue("panicThreshold", "all_errors"))

		env := merged["environment"].(map[string]any)
		Expect(env).To(HaveKeyWithValue("validateHooksUsage", false))
		Expect(env).To(HaveKeyWithValue("enableTreatRefLikeIdentifiersAsRefs", true))
		Expect(env).To(HaveKeyWithValue("validateNoSetStateInRender", true))
	})

	It("does not mutate the defaults between calls", func() {
		analysis.MergeCompilerOptions(map[string]any{
			"environment": map[string]any{"validateHooksUsage": false},
		})

		env := analysis.DefaultCompilerOptions()["environment"].(map[string]any)
		Expect(env).To(HaveKeyWithValue("validateHooksUsage", true))
	})
})
