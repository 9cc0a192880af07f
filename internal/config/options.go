package config

import (
	"maps"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"

	"github.com/smykla-skalski/compilerlint/pkg/config"
)

// ErrMalformedOption marks an option value that could not be decoded. The
// option keeps its default and loading continues.
var ErrMalformedOption = errors.New("malformed option")

// ruleOptionKeys maps accepted option names, including the camelCase names
// used by the ESLint rule, to canonical keys.
var ruleOptionKeys = map[string]string{
	"ignore_severity_levels": "ignore_severity_levels",
	"ignoreSeverityLevels":   "ignore_severity_levels",
	"ignore_report_levels":   "ignore_severity_levels",
	"ignoreReportLevels":     "ignore_severity_levels",
	"ignore_categories":      "ignore_categories",
	"ignoreCategories":       "ignore_categories",
	"report_all_bailouts":    "report_all_bailouts",
	"reportAllBailouts":      "report_all_bailouts",
	"bailouts_only":          "bailouts_only",
	"bailoutsOnly":           "bailouts_only",
	"opt_out_directives":     "opt_out_directives",
	"optOutDirectives":       "opt_out_directives",
	"parser_plugins":         "parser_plugins",
	"parserPlugins":          "parser_plugins",
	"babelParserPlugins":     "parser_plugins",
	"plugins":                "plugins",
	"babelPlugins":           "plugins",
	"advanced_options":       "advanced_options",
	"advancedOptions":        "advanced_options",
}

// ApplyRuleOptions decodes a loose rule-options object onto cfg field by
// field. A malformed field leaves cfg's value untouched and is returned as an
// error marked ErrMalformedOption; unknown keys are ignored.
func ApplyRuleOptions(cfg *config.Config, raw map[string]any) []error {
	if cfg.Report == nil {
		cfg.Report = DefaultReportConfig()
	}

	if cfg.Analyzer == nil {
		cfg.Analyzer = DefaultAnalyzerConfig()
	}

	var errs []error

	for _, name := range orderedOptionNames(raw) {
		value := raw[name]

		key, ok := ruleOptionKeys[name]
		if !ok || value == nil {
			continue
		}

		if err := applyRuleOption(cfg, key, value); err != nil {
			errs = append(errs, errors.Mark(errors.Wrapf(err, "option %q", name), ErrMalformedOption))
		}
	}

	return errs
}

// orderedOptionNames sorts aliases before canonical names so a canonical name
// wins when both are given.
func orderedOptionNames(raw map[string]any) []string {
	names := slices.Collect(maps.Keys(raw))

	slices.SortFunc(names, func(a, b string) int {
		ca, cb := ruleOptionKeys[a] == a, ruleOptionKeys[b] == b
		if ca != cb {
			if ca {
				return 1
			}

			return -1
		}

		return strings.Compare(a, b)
	})

	return names
}

func applyRuleOption(cfg *config.Config, key string, value any) error {
	switch key {
	case "ignore_severity_levels":
		return decodeInto(value, &cfg.Report.IgnoreSeverityLevels)
	case "ignore_categories":
		return decodeInto(value, &cfg.Report.IgnoreCategories)
	case "opt_out_directives":
		return decodeInto(value, &cfg.Report.OptOutDirectives)
	case "report_all_bailouts":
		return decodeBool(value, &cfg.Report.ReportAllBailouts)
	case "bailouts_only":
		return decodeBool(value, &cfg.Report.BailoutsOnly)
	case "parser_plugins":
		return decodeInto(value, &cfg.Analyzer.ParserPlugins)
	case "plugins":
		return decodeInto(value, &cfg.Analyzer.Plugins)
	case "advanced_options":
		return decodeInto(value, &cfg.Analyzer.AdvancedOptions)
	default:
		return nil
	}
}

// decodeInto decodes value into a fresh T and assigns it to *dst only on success.
func decodeInto[T any](value any, dst *T) error {
	var out T

	dc := CustomDecoderConfig()
	dc.Result = &out

	dec, err := mapstructure.NewDecoder(dc)
	if err != nil {
		return errors.Wrap(err, "creating decoder")
	}

	if err := dec.Decode(value); err != nil {
		return err
	}

	*dst = out

	return nil
}

func decodeBool(value any, dst **bool) error {
	var b bool

	if err := decodeInto(value, &b); err != nil {
		return err
	}

	*dst = &b

	return nil
}

var reportOptionKeys = map[string]bool{
	"ignore_severity_levels": true,
	"ignore_categories":      true,
	"report_all_bailouts":    true,
	"bailouts_only":          true,
	"opt_out_directives":     true,
}

// applyReportOptions applies only the reporting options of raw onto report.
func applyReportOptions(report *config.ReportConfig, raw map[string]any) []error {
	filtered := make(map[string]any, len(raw))

	for name, value := range raw {
		if reportOptionKeys[ruleOptionKeys[name]] {
			filtered[name] = value
		}
	}

	cfg := &config.Config{Report: report, Analyzer: &config.AnalyzerConfig{}}

	return ApplyRuleOptions(cfg, filtered)
}
