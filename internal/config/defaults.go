// Package config provides internal configuration loading and processing.
package config

import (
	"time"

	"github.com/smykla-skalski/compilerlint/internal/adapter"
	"github.com/smykla-skalski/compilerlint/internal/discovery"
	"github.com/smykla-skalski/compilerlint/pkg/config"
)

const (
	// DefaultAnalyzerCommand runs the analysis bridge installed next to the project.
	DefaultAnalyzerCommand = "npx --no-install react-compiler-analyze"

	// DefaultAnalyzerTimeout bounds a single file analysis.
	DefaultAnalyzerTimeout = 30 * time.Second

	// DefaultOutputFormat is the default output format.
	DefaultOutputFormat = "text"

	// DefaultColorMode is the default color mode.
	DefaultColorMode = "auto"
)

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *config.Config {
	return &config.Config{
		Version:     config.CurrentConfigVersion,
		Analyzer:    DefaultAnalyzerConfig(),
		Report:      DefaultReportConfig(),
		Suppression: DefaultSuppressionConfig(),
		Files:       DefaultFilesConfig(),
		Output:      DefaultOutputConfig(),
	}
}

// DefaultAnalyzerConfig returns the default analyzer configuration.
func DefaultAnalyzerConfig() *config.AnalyzerConfig {
	return &config.AnalyzerConfig{
		Command:         DefaultAnalyzerCommand,
		Timeout:         config.Duration(DefaultAnalyzerTimeout),
		ParserPlugins:   []string{},
		Plugins:         []any{},
		AdvancedOptions: map[string]any{},
	}
}

// DefaultReportConfig returns the default reporting configuration.
func DefaultReportConfig() *config.ReportConfig {
	reportAllBailouts := false
	bailoutsOnly := false

	return &config.ReportConfig{
		IgnoreSeverityLevels: []string{},
		IgnoreCategories:     []string{},
		ReportAllBailouts:    &reportAllBailouts,
		BailoutsOnly:         &bailoutsOnly,
		OptOutDirectives:     append([]string(nil), adapter.DefaultOptOutDirectives...),
	}
}

// DefaultSuppressionConfig returns the built-in finding classes.
func DefaultSuppressionConfig() *config.SuppressionConfig {
	classes := adapter.DefaultFindingClasses()
	out := make([]config.SuppressionClass, 0, len(classes))

	for _, c := range classes {
		out = append(out, config.SuppressionClass{
			Name:       c.Name,
			Categories: c.Categories.Values(),
			Marker:     c.Marker,
		})
	}

	return &config.SuppressionConfig{Classes: out}
}

// DefaultFilesConfig returns the default discovery configuration.
func DefaultFilesConfig() *config.FilesConfig {
	processAll := false

	return &config.FilesConfig{
		Include:    append([]string(nil), discovery.DefaultInclude...),
		Ignore:     append([]string(nil), discovery.DefaultIgnore...),
		ProcessAll: &processAll,
	}
}

// DefaultOutputConfig returns the default output configuration.
func DefaultOutputConfig() *config.OutputConfig {
	return &config.OutputConfig{
		Format: DefaultOutputFormat,
		Color:  DefaultColorMode,
	}
}

// defaultsToMap converts DefaultConfig to a map for koanf loading. The report
// section is absent: it is decoded on top of DefaultReportConfig.
func defaultsToMap() map[string]any {
	return map[string]any{
		"version": config.CurrentConfigVersion,
		"analyzer": map[string]any{
			"command":          DefaultAnalyzerCommand,
			"timeout":          DefaultAnalyzerTimeout.String(),
			"min_version":      "",
			"parser_plugins":   []string{},
			"plugins":          []any{},
			"advanced_options": map[string]any{},
		},
		"files": map[string]any{
			"include":     discovery.DefaultInclude,
			"ignore":      discovery.DefaultIgnore,
			"concurrency": 0,
			"process_all": false,
		},
		"output": map[string]any{
			"format": DefaultOutputFormat,
			"color":  DefaultColorMode,
		},
	}
}
