package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/maps"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/smykla-skalski/compilerlint/pkg/config"
)

var (
	ErrConfigNotFound     = errors.New("configuration file not found")
	ErrInvalidPermissions = errors.New("config file has insecure permissions")
)

const (
	EnvPrefix = "COMPILERLINT_"

	// ~/.compilerlint/config.toml
	GlobalConfigDir  = ".compilerlint"
	GlobalConfigFile = "config.toml"

	// ./.compilerlint/config.toml, or ./compilerlint.toml when that is absent.
	ProjectConfigDir     = ".compilerlint"
	ProjectConfigFile    = "config.toml"
	ProjectConfigFileAlt = "compilerlint.toml"
)

// Source is a config file that contributed to the last load.
type Source struct {
	Layer string
	Path  string
}

func (s Source) String() string { return s.Layer + ": " + s.Path }

// KoanfLoader merges, lowest precedence first: defaults, the global file,
// the project file (or --config), COMPILERLINT_* variables and CLI flags.
//
// The [report] section holds the ESLint rule options and is decoded
// leniently: a malformed option keeps its default and is recorded as a
// warning instead of failing the load.
type KoanfLoader struct {
	k          *koanf.Koanf
	homeDir    string
	workDir    string
	configFile string
	sources    []Source
	warnings   []error
}

// NewKoanfLoader creates a loader for the user's home and working directory.
func NewKoanfLoader() (*KoanfLoader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "resolving home directory")
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "resolving working directory")
	}

	return NewKoanfLoaderWithDirs(homeDir, workDir)
}

// NewKoanfLoaderWithDirs creates a loader rooted at the given directories.
func NewKoanfLoaderWithDirs(homeDir, workDir string) (*KoanfLoader, error) {
	return &KoanfLoader{k: koanf.New("."), homeDir: homeDir, workDir: workDir}, nil
}

// WithConfigFile makes the loader read path instead of searching for a
// project config. Relative paths are resolved against the working directory.
func (l *KoanfLoader) WithConfigFile(path string) *KoanfLoader {
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(l.workDir, path)
	}

	l.configFile = path

	return l
}

// Load is LoadWithoutValidation followed by Validator.Validate.
func (l *KoanfLoader) Load(flags map[string]any) (*config.Config, error) {
	cfg, err := l.LoadWithoutValidation(flags)
	if err != nil {
		return nil, err
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// LoadWithoutValidation merges every layer into a Config. flags is keyed by
// CLI flag name; flags missing from flagKeys are ignored.
func (l *KoanfLoader) LoadWithoutValidation(flags map[string]any) (*config.Config, error) {
	l.k = koanf.New(".")
	l.sources = nil
	l.warnings = nil

	layers := []struct {
		name string
		load func() error
	}{
		{"defaults", func() error { return l.k.Load(confmap.Provider(defaultsToMap(), "."), nil) }},
		{"global config", l.loadGlobal},
		{"project config", l.loadProject},
		{"environment", func() error {
			return l.k.Load(env.Provider(".", env.Opt{Prefix: EnvPrefix, TransformFunc: envTransform}), nil)
		}},
		{"flags", func() error { return l.k.Load(confmap.Provider(flagsToConfig(flags), "."), nil) }},
	}

	for _, layer := range layers {
		if err := layer.load(); err != nil {
			return nil, errors.Wrapf(err, "loading %s", layer.name)
		}
	}

	return l.decode()
}

// decode unmarshals everything but [report] strictly, then applies the
// report options one by one.
func (l *KoanfLoader) decode() (*config.Config, error) {
	rawReport := l.k.Get("report")
	l.k.Delete("report")

	var cfg config.Config

	dc := CustomDecoderConfig()
	dc.Result = &cfg

	err := l.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", DecoderConfig: dc})
	if err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	cfg.Report = DefaultReportConfig()

	switch section := rawReport.(type) {
	case nil:
	case map[string]any:
		l.warnings = append(l.warnings, applyReportOptions(cfg.Report, section)...)
	default:
		l.warnings = append(l.warnings, errors.Mark(
			errors.Newf("report section has type %T, using defaults", rawReport),
			ErrMalformedOption,
		))
	}

	if cfg.Suppression == nil || len(cfg.Suppression.Classes) == 0 {
		cfg.Suppression = DefaultSuppressionConfig()
	}

	return &cfg, nil
}

// Warnings returns the malformed report options skipped by the last load.
func (l *KoanfLoader) Warnings() []error {
	return l.warnings
}

// Sources lists the files read by the last load, global first.
func (l *KoanfLoader) Sources() []Source {
	return l.sources
}

func (l *KoanfLoader) loadGlobal() error {
	path := filepath.Join(l.homeDir, GlobalConfigDir, GlobalConfigFile)

	err := l.loadTOMLFile("global", path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func (l *KoanfLoader) loadProject() error {
	if l.configFile != "" {
		if !fileExists(l.configFile) {
			return errors.Wrapf(ErrConfigNotFound, "%s", l.configFile)
		}

		return l.loadTOMLFile("config", l.configFile)
	}

	if path := l.FindProjectConfigPath(); path != "" {
		return l.loadTOMLFile("project", path)
	}

	return nil
}

// loadTOMLFile refuses world-writable files, since the analyzer command
// they name gets executed.
func (l *KoanfLoader) loadTOMLFile(layer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if perm := info.Mode().Perm(); perm&0o002 != 0 {
		return errors.Wrapf(ErrInvalidPermissions, "%s is world-writable (mode: %s)", path, perm)
	}

	if err := l.k.Load(file.Provider(path), tomlparser.Parser()); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}

	l.sources = append(l.sources, Source{Layer: layer, Path: path})

	return nil
}

// FindProjectConfigPath returns the project config file in the working
// directory, or "" when there is none.
func (l *KoanfLoader) FindProjectConfigPath() string {
	for _, path := range []string{
		filepath.Join(l.workDir, ProjectConfigDir, ProjectConfigFile),
		filepath.Join(l.workDir, ProjectConfigFileAlt),
	} {
		if fileExists(path) {
			return path
		}
	}

	return ""
}

// envTransform maps COMPILERLINT_REPORT_BAILOUTS_ONLY to report.bailouts_only:
// the first underscore separates the section from the key. Comma separated
// values become lists.
func envTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	if section, rest, ok := strings.Cut(key, "_"); ok {
		key = section + "." + rest
	}

	if !strings.Contains(value, ",") {
		return key, value
	}

	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return key, parts
}

var flagKeys = map[string]string{
	"format":              "output.format",
	"color":               "output.color",
	"concurrency":         "files.concurrency",
	"process-all":         "files.process_all",
	"report-all-bailouts": "report.report_all_bailouts",
	"bailouts-only":       "report.bailouts_only",
	"analyzer":            "analyzer.command",
	"timeout":             "analyzer.timeout",
}

func flagsToConfig(flags map[string]any) map[string]any {
	flat := make(map[string]any, len(flags))

	for name, value := range flags {
		if path, ok := flagKeys[name]; ok {
			flat[path] = value
		}
	}

	return maps.Unflatten(flat, ".")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
