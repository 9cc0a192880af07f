// Package factory builds the lint pipeline from configuration.
package factory

import (
	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/compilerlint/internal/adapter"
	"github.com/smykla-skalski/compilerlint/internal/analysis"
	"github.com/smykla-skalski/compilerlint/internal/discovery"
	"github.com/smykla-skalski/compilerlint/internal/runner"
	"github.com/smykla-skalski/compilerlint/pkg/config"
	"github.com/smykla-skalski/compilerlint/pkg/logger"
)

// Pipeline groups the components of a lint run.
type Pipeline struct {
	Analyzer   analysis.Analyzer
	Processor  *adapter.Processor
	Runner     *runner.Runner
	Discoverer *discovery.Discoverer
}

// New builds a pipeline that runs the configured analyzer command.
func New(cfg *config.Config, log logger.Logger) (*Pipeline, *analysis.CommandAnalyzer, error) {
	analyzer, err := analysis.NewCommandAnalyzer(CommandConfig(cfg), log)
	if err != nil {
		return nil, nil, errors.Wrap(err, "creating analyzer")
	}

	p, err := NewWithAnalyzer(cfg, analyzer, log)
	if err != nil {
		return nil, nil, err
	}

	return p, analyzer, nil
}

// NewWithAnalyzer builds a pipeline around an existing analyzer.
func NewWithAnalyzer(cfg *config.Config, analyzer analysis.Analyzer, log logger.Logger) (*Pipeline, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	disc, err := discovery.New(DiscoveryOptions(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "creating file discovery")
	}

	processor := adapter.NewProcessor(AdapterOptions(cfg), log)

	return &Pipeline{
		Analyzer:   analyzer,
		Processor:  processor,
		Runner:     runner.New(analyzer, processor, RunnerConfig(cfg), log),
		Discoverer: disc,
	}, nil
}

// AdapterOptions converts the report and suppression sections.
func AdapterOptions(cfg *config.Config) adapter.Options {
	opts := adapter.DefaultOptions()

	if r := cfg.Report; r != nil {
		opts.IgnoreSeverityLevels = adapter.NewTagSet(r.IgnoreSeverityLevels...)
		opts.IgnoreCategories = adapter.NewTagSet(r.IgnoreCategories...)
		opts.ReportAllBailouts = r.IsReportAllBailouts()
		opts.BailoutsOnly = r.IsBailoutsOnly()

		if r.OptOutDirectives != nil {
			opts.OptOutDirectives = adapter.NewTagSet(r.OptOutDirectives...)
		}
	}

	if s := cfg.Suppression; s != nil && len(s.Classes) > 0 {
		classes := make([]adapter.FindingClass, 0, len(s.Classes))

		for _, c := range s.Classes {
			classes = append(classes, adapter.FindingClass{
				Name:       c.Name,
				Categories: adapter.NewTagSet(c.Categories...),
				Marker:     c.Marker,
			})
		}

		opts.FindingClasses = classes
	}

	return opts
}

// CommandConfig converts the analyzer section.
func CommandConfig(cfg *config.Config) analysis.CommandConfig {
	if cfg.Analyzer == nil {
		return analysis.CommandConfig{}
	}

	return analysis.CommandConfig{
		Command:    cfg.Analyzer.Command,
		Timeout:    cfg.Analyzer.Timeout.ToDuration(),
		MinVersion: cfg.Analyzer.MinVersion,
	}
}

// RunnerConfig converts the analyzer and files sections.
func RunnerConfig(cfg *config.Config) runner.Config {
	rc := runner.Config{
		CompilerOptions: analysis.MergeCompilerOptions(nil),
	}

	if a := cfg.Analyzer; a != nil {
		rc.ParserPlugins = a.ParserPlugins
		rc.Plugins = a.Plugins
		rc.CompilerOptions = analysis.MergeCompilerOptions(a.AdvancedOptions)
	}

	if f := cfg.Files; f != nil {
		rc.Concurrency = f.Concurrency
		rc.SkipGate = f.IsProcessAll()
	}

	return rc
}

// DiscoveryOptions converts the files section.
func DiscoveryOptions(cfg *config.Config) discovery.Options {
	if cfg.Files == nil {
		return discovery.Options{}
	}

	return discovery.Options{
		Include: cfg.Files.Include,
		Ignore:  cfg.Files.Ignore,
	}
}
