// Package config provides configuration schema types for compilerlint.
package config

// CurrentConfigVersion is the latest config schema version.
const CurrentConfigVersion = 1

// Config represents the root configuration for compilerlint.
type Config struct {
	// Version is the config schema version. Defaults to 1 when omitted.
	Version int `json:"version,omitempty" koanf:"version" toml:"version,omitempty"`

	// Analyzer configures the external compiler analysis.
	Analyzer *AnalyzerConfig `json:"analyzer,omitempty" koanf:"analyzer" toml:"analyzer,omitempty"`

	// Report controls which findings are reported and how.
	Report *ReportConfig `json:"report,omitempty" koanf:"report" toml:"report,omitempty"`

	// Suppression configures inline suppression comments.
	Suppression *SuppressionConfig `json:"suppression,omitempty" koanf:"suppression" toml:"suppression,omitempty"`

	// Files controls which files are linted.
	Files *FilesConfig `json:"files,omitempty" koanf:"files" toml:"files,omitempty"`

	// Output controls how results are printed.
	Output *OutputConfig `json:"output,omitempty" koanf:"output" toml:"output,omitempty"`
}

// AnalyzerConfig configures the external analysis command.
type AnalyzerConfig struct {
	// Command is the analyzer command line. It reads a JSON request on stdin
	// and writes the JSON result on stdout.
	// Default: "npx --no-install react-compiler-analyze"
	Command string `json:"command,omitempty" koanf:"command" toml:"command,omitempty"`

	// Timeout bounds the analysis of a single file.
	// Default: "30s"
	Timeout Duration `json:"timeout,omitempty" koanf:"timeout" toml:"timeout,omitempty"`

	// MinVersion is the minimum analyzer version, checked with "<command> --version".
	// Empty disables the check.
	MinVersion string `json:"min_version,omitempty" koanf:"min_version" toml:"min_version,omitempty"`

	// ParserPlugins are extra parser plugins, e.g. "decorators".
	ParserPlugins []string `json:"parser_plugins,omitempty" koanf:"parser_plugins" toml:"parser_plugins,omitempty"`

	// Plugins are extra transform plugins, as names or [name, options] pairs.
	Plugins []any `json:"plugins,omitempty" koanf:"plugins" toml:"plugins,omitempty"`

	// AdvancedOptions are passed verbatim to the compiler. The "environment"
	// table is merged with the defaults one level deep.
	AdvancedOptions map[string]any `json:"advanced_options,omitempty" koanf:"advanced_options" toml:"advanced_options,omitempty"`
}

// ReportConfig controls reporting policy.
type ReportConfig struct {
	// IgnoreSeverityLevels lists severity tags that are never reported.
	// Default: [] (report everything)
	IgnoreSeverityLevels []string `json:"ignore_severity_levels,omitempty" koanf:"ignore_severity_levels" toml:"ignore_severity_levels,omitempty"`

	// IgnoreCategories lists category tags that are never reported.
	// Default: []
	IgnoreCategories []string `json:"ignore_categories,omitempty" koanf:"ignore_categories" toml:"ignore_categories,omitempty"`

	// ReportAllBailouts adds one report per compilation unit the compiler gave up on.
	// Default: false
	ReportAllBailouts *bool `json:"report_all_bailouts,omitempty" koanf:"report_all_bailouts" toml:"report_all_bailouts,omitempty"`

	// BailoutsOnly reports only per-unit bailouts. Implies ReportAllBailouts.
	// Default: false
	BailoutsOnly *bool `json:"bailouts_only,omitempty" koanf:"bailouts_only" toml:"bailouts_only,omitempty"`

	// OptOutDirectives are the directives reported when unused.
	// Default: ["use no forget", "use no memo"]
	OptOutDirectives []string `json:"opt_out_directives,omitempty" koanf:"opt_out_directives" toml:"opt_out_directives,omitempty"`
}

// IsReportAllBailouts returns whether bailout reports are enabled.
func (r *ReportConfig) IsReportAllBailouts() bool {
	if r == nil || r.ReportAllBailouts == nil {
		return false
	}

	return *r.ReportAllBailouts
}

// IsBailoutsOnly returns whether only bailout reports are produced.
func (r *ReportConfig) IsBailoutsOnly() bool {
	if r == nil || r.BailoutsOnly == nil {
		return false
	}

	return *r.BailoutsOnly
}

// SuppressionConfig configures finding classes and their marker comments.
type SuppressionConfig struct {
	// Classes replaces the built-in finding classes when non-empty.
	Classes []SuppressionClass `json:"classes,omitempty" koanf:"classes" toml:"classes,omitempty"`
}

// SuppressionClass maps diagnostic categories to a suppression marker. A
// comment whose text equals Marker and that ends on the line right above a
// diagnostic of one of Categories suppresses it.
type SuppressionClass struct {
	Name       string   `json:"name"       koanf:"name"       toml:"name"`
	Categories []string `json:"categories" koanf:"categories" toml:"categories"`
	Marker     string   `json:"marker"     koanf:"marker"     toml:"marker"`
}

// FilesConfig controls file discovery.
type FilesConfig struct {
	// Include globs (doublestar syntax) for directory walks.
	// Default: ["**/*.{js,jsx,ts,tsx,mjs,cjs,mts,cts}"]
	Include []string `json:"include,omitempty" koanf:"include" toml:"include,omitempty"`

	// Ignore globs prune files and directories.
	// Default: node_modules, .git, dist, build, coverage
	Ignore []string `json:"ignore,omitempty" koanf:"ignore" toml:"ignore,omitempty"`

	// Concurrency bounds parallel analyses. 0 uses the number of CPUs.
	Concurrency int `json:"concurrency,omitempty" jsonschema:"minimum=0" koanf:"concurrency" toml:"concurrency,omitempty"`

	// ProcessAll disables the React-likeness heuristic for non-.tsx files.
	// Default: false
	ProcessAll *bool `json:"process_all,omitempty" koanf:"process_all" toml:"process_all,omitempty"`
}

// IsProcessAll returns whether the eligibility heuristic is disabled.
func (f *FilesConfig) IsProcessAll() bool {
	if f == nil || f.ProcessAll == nil {
		return false
	}

	return *f.ProcessAll
}

// OutputConfig controls output rendering.
type OutputConfig struct {
	// Format is one of "text", "json", "yaml", "table".
	// Default: "text"
	Format string `json:"format,omitempty" jsonschema:"enum=text,enum=json,enum=yaml,enum=table" koanf:"format" toml:"format,omitempty"`

	// Color is one of "auto", "always", "never".
	// Default: "auto"
	Color string `json:"color,omitempty" jsonschema:"enum=auto,enum=always,enum=never" koanf:"color" toml:"color,omitempty"`
}
