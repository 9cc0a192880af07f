package config

import (
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ApplyRuleOptions", func() {
	It("applies ESLint rule option names", func() {
		cfg := DefaultConfig()

		errs := ApplyRuleOptions(cfg, map[string]any{
			"reportAllBailouts":  true,
			"ignoreCategories":   []any{"Refs"},
			"babelParserPlugins": []any{"decorators"},
			"advancedOptions":    map[string]any{"environment": map[string]any{"validateHooksUsage": false}},
			"unknownOption":      42,
		})

		Expect(errs).To(BeEmpty())
		Expect(cfg.Report.IsReportAllBailouts()).To(BeTrue())
		Expect(cfg.Report.IgnoreCategories).To(Equal([]string{"Refs"}))
		Expect(cfg.Analyzer.ParserPlugins).To(Equal([]string{"decorators"}))
		Expect(cfg.Analyzer.AdvancedOptions).To(HaveKey("environment"))
	})

	It("coerces loosely typed values", func() {
		cfg := DefaultConfig()

		errs := ApplyRuleOptions(cfg, map[string]any{
			"bailouts_only":     "true",
			"ignore_categories": "Refs",
		})

		Expect(errs).To(BeEmpty())
		Expect(cfg.Report.IsBailoutsOnly()).To(BeTrue())
		Expect(cfg.Report.IgnoreCategories).To(Equal([]string{"Refs"}))
	})

	It("prefers the canonical name over an alias", func() {
		cfg := DefaultConfig()

		errs := ApplyRuleOptions(cfg, map[string]any{
			"ignoreReportLevels":     []any{"Todo"},
			"ignore_severity_levels": []any{"Hint"},
		})

		Expect(errs).To(BeEmpty())
		Expect(cfg.Report.IgnoreSeverityLevels).To(Equal([]string{"Hint"}))
	})

	It("keeps the previous value of a malformed option", func() {
		cfg := DefaultConfig()

		errs := ApplyRuleOptions(cfg, map[string]any{
			"optOutDirectives": map[string]any{"bad": true},
			"bailoutsOnly":     []any{1, 2},
		})

		Expect(errs).To(HaveLen(2))
		Expect(errors.Is(errs[0], ErrMalformedOption)).To(BeTrue())
		Expect(cfg.Report.OptOutDirectives).To(ConsistOf("use no forget", "use no memo"))
		Expect(cfg.Report.IsBailoutsOnly()).To(BeFalse())
	})

	It("ignores null values", func() {
		cfg := DefaultConfig()

		Expect(ApplyRuleOptions(cfg, map[string]any{"ignoreCategories": nil})).To(BeEmpty())
		Expect(cfg.Report.IgnoreCategories).To(BeEmpty())
	})

	It("fills missing sections", func() {
		cfg := DefaultConfig()
		cfg.Report = nil
		cfg.Analyzer = nil

		Expect(ApplyRuleOptions(cfg, map[string]any{"bailoutsOnly": true})).To(BeEmpty())
		Expect(cfg.Report.IsBailoutsOnly()).To(BeTrue())
		Expect(cfg.Analyzer.Command).To(Equal(DefaultAnalyzerCommand))
	})
})
