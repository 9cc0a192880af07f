package doctor

import (
	"context"
	"fmt"

	"github.com/smykla-skalski/compilerlint/internal/config"
	"github.com/smykla-skalski/compilerlint/internal/exec"
)

// ConfigChecker verifies that configuration loads and validates.
type ConfigChecker struct {
	loader *config.KoanfLoader
}

// NewConfigChecker creates a ConfigChecker.
func NewConfigChecker(loader *config.KoanfLoader) *ConfigChecker {
	return &ConfigChecker{loader: loader}
}

// Name returns the check name.
func (*ConfigChecker) Name() string { return "Configuration" }

// Category returns CategoryConfig.
func (*ConfigChecker) Category() Category { return CategoryConfig }

// Check loads the configuration.
func (c *ConfigChecker) Check(context.Context) CheckResult {
	_, err := c.loader.Load(nil)

	sources := make([]string, 0, len(c.loader.Sources()))
	for _, src := range c.loader.Sources() {
		sources = append(sources, src.String())
	}

	if err != nil {
		return Fail(c.Name(), err.Error(), sources...)
	}

	if warnings := c.loader.Warnings(); len(warnings) > 0 {
		details := make([]string, len(warnings))
		for i, w := range warnings {
			details[i] = w.Error()
		}

		return Warn(c.Name(), fmt.Sprintf("%d malformed option(s) replaced by defaults", len(warnings)), details...)
	}

	if len(sources) == 0 {
		return Pass(c.Name(), "no config file, using defaults")
	}

	return Pass(c.Name(), "valid", sources...)
}

// AnalyzerChecker verifies that the analyzer executable is available.
type AnalyzerChecker struct {
	argv  []string
	tools exec.ToolChecker
}

// NewAnalyzerChecker creates an AnalyzerChecker for the resolved command line.
func NewAnalyzerChecker(argv []string, tools exec.ToolChecker) *AnalyzerChecker {
	return &AnalyzerChecker{argv: argv, tools: tools}
}

// Name returns the check name.
func (*AnalyzerChecker) Name() string { return "Analyzer command" }

// Category returns CategoryAnalyzer.
func (*AnalyzerChecker) Category() Category { return CategoryAnalyzer }

// Check resolves the executable.
func (a *AnalyzerChecker) Check(context.Context) CheckResult {
	if len(a.argv) == 0 {
		return Fail(a.Name(), "analyzer command is empty")
	}

	path, err := a.tools.Lookup(a.argv[0])
	if err != nil {
		return Fail(a.Name(), fmt.Sprintf("%q not found in PATH", a.argv[0]), err.Error())
	}

	return Pass(a.Name(), "found "+a.argv[0], path)
}

// VersionSource reports the analyzer version, enforcing a minimum when configured.
type VersionSource interface {
	CheckVersion(ctx context.Context) (string, error)
}

// VersionChecker verifies the analyzer version.
type VersionChecker struct {
	source     VersionSource
	minVersion string
}

// NewVersionChecker creates a VersionChecker. A nil source skips the check.
func NewVersionChecker(source VersionSource, minVersion string) *VersionChecker {
	return &VersionChecker{source: source, minVersion: minVersion}
}

// Name returns the check name.
func (*VersionChecker) Name() string { return "Analyzer version" }

// Category returns CategoryAnalyzer.
func (*VersionChecker) Category() Category { return CategoryAnalyzer }

// Check queries the analyzer version.
func (v *VersionChecker) Check(ctx context.Context) CheckResult {
	if v.source == nil {
		return Skip(v.Name(), "no analyzer command")
	}

	version, err := v.source.CheckVersion(ctx)

	switch {
	case err != nil && v.minVersion != "":
		return Fail(v.Name(), err.Error())
	case err != nil:
		return Warn(v.Name(), "version unknown", err.Error())
	case v.minVersion != "":
		return Pass(v.Name(), fmt.Sprintf("%s (>= %s)", version, v.minVersion))
	default:
		return Pass(v.Name(), version)
	}
}
