// Package main provides the CLI entry point for compilerlint.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/compilerlint/internal/color"
	"github.com/smykla-skalski/compilerlint/internal/crashdump"
	internalconfig "github.com/smykla-skalski/compilerlint/internal/config"
	"github.com/smykla-skalski/compilerlint/pkg/config"
	"github.com/smykla-skalski/compilerlint/pkg/logger"
)

const (
	// ExitCodeOK indicates no problems were found.
	ExitCodeOK = 0

	// ExitCodeProblems indicates at least one problem was reported.
	ExitCodeProblems = 1

	// ExitCodeError indicates a usage, configuration or internal error.
	ExitCodeError = 2

	// ExitCodeCrash indicates an unexpected panic.
	ExitCodeCrash = 3
)

// errProblemsFound makes the command exit with ExitCodeProblems without printing.
var errProblemsFound = errors.New("problems found")

var (
	configPath        string
	debugMode         bool
	traceMode         bool
	noColorFlag       bool
	formatFlag        string
	colorFlag         string
	concurrencyFlag   int
	reportAllBailouts bool
	bailoutsOnly      bool
	processAllFlag    bool
	analyzerFlag      string
	timeoutFlag       string
	ruleOptionsFlag   string

	// crashConfig is the loaded configuration, recorded in crash dumps.
	crashConfig *config.Config
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			handlePanic(r)

			exitCode = ExitCodeCrash
		}
	}()

	err := rootCmd.Execute()

	switch {
	case err == nil:
		return ExitCodeOK
	case errors.Is(err, errProblemsFound):
		return ExitCodeProblems
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return ExitCodeError
	}
}

var rootCmd = &cobra.Command{
	Use:   "compilerlint [paths...]",
	Short: "Report React Compiler diagnostics as lint problems",
	Long: `compilerlint runs the React Compiler analysis on JavaScript and TypeScript
files and reports what the compiler could not optimize: rule violations,
per-component bailouts and unused opt-out directives.

Paths may be files or directories. Directories are walked using the
[files] include and ignore globs. Without paths the current directory is linted.

Exit codes: 0 no problems, 1 problems reported, 2 error, 3 crash.`,
	Args:              cobra.ArbitraryArgs,
	RunE:              runCheck,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"Path to configuration file (default: .compilerlint/config.toml or compilerlint.toml)",
	)
	pf.BoolVar(&debugMode, "debug", false, "Enable debug logging")
	pf.BoolVar(&traceMode, "trace", false, "Enable trace logging")
	pf.BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	pf.StringVarP(&formatFlag, "format", "f", "", "Output format: text, json, yaml, table")
	pf.StringVar(&colorFlag, "color", "", "Color mode: auto, always, never")
	pf.IntVarP(&concurrencyFlag, "concurrency", "j", 0, "Files analyzed in parallel (0 = number of CPUs)")
	pf.BoolVar(&reportAllBailouts, "report-all-bailouts", false, "Report every component the compiler bailed out of")
	pf.BoolVar(&bailoutsOnly, "bailouts-only", false, "Report only per-component bailouts")
	pf.BoolVar(&processAllFlag, "process-all", false, "Analyze files that do not look like React code")
	pf.StringVar(&analyzerFlag, "analyzer", "", "Analyzer command line")
	pf.StringVar(&timeoutFlag, "timeout", "", "Per-file analysis timeout (e.g. 30s)")
	pf.StringVar(
		&ruleOptionsFlag,
		"rule-options",
		"",
		`ESLint-style rule options as JSON, e.g. '{"reportAllBailouts": true}'`,
	)
}

// newLogger creates the stderr logger selected by --debug/--trace.
func newLogger() logger.Logger {
	return logger.NewWriterLogger(os.Stderr, logger.LevelFromFlags(debugMode, traceMode))
}

// changedFlags returns the explicitly set flags that map to config keys.
func changedFlags(cmd *cobra.Command) map[string]any {
	flags := make(map[string]any)
	fs := cmd.Flags()

	set := func(name string, value any) {
		if fs.Changed(name) {
			flags[name] = value
		}
	}

	set("format", formatFlag)
	set("color", colorFlag)
	set("concurrency", concurrencyFlag)
	set("report-all-bailouts", reportAllBailouts)
	set("bailouts-only", bailoutsOnly)
	set("process-all", processAllFlag)
	set("analyzer", analyzerFlag)
	set("timeout", timeoutFlag)

	if noColorFlag {
		flags["color"] = string(color.ModeNever)
	}

	return flags
}

// loadConfig loads and validates configuration for cmd. Malformed report
// options are logged and replaced by their defaults.
func loadConfig(cmd *cobra.Command, log logger.Logger) (*config.Config, error) {
	loader, err := internalconfig.NewKoanfLoader()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create config loader")
	}

	cfg, err := loader.WithConfigFile(configPath).LoadWithoutValidation(changedFlags(cmd))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	warnings := loader.Warnings()

	if ruleOptionsFlag != "" {
		var raw map[string]any
		if err := json.Unmarshal([]byte(ruleOptionsFlag), &raw); err != nil {
			return nil, errors.Wrap(err, "parsing --rule-options")
		}

		warnings = append(warnings, internalconfig.ApplyRuleOptions(cfg, raw)...)
	}

	for _, w := range warnings {
		log.Warn("ignoring malformed option", "error", w.Error())
	}

	if err := internalconfig.NewValidator().Validate(cfg); err != nil {
		return nil, err
	}

	crashConfig = cfg

	return cfg, nil
}

// handlePanic writes a crash dump to ~/.compilerlint/crash and reports it on stderr.
func handlePanic(recovered any) {
	fmt.Fprintf(os.Stderr, "panic: %v\n", recovered)

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to locate home directory: %v\n", err)

		return
	}

	writer, err := crashdump.NewWriter(
		filepath.Join(home, internalconfig.GlobalConfigDir, crashdump.DirName),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create crash dump writer: %v\n", err)

		return
	}

	info := crashdump.NewCollector(readBuild().Version).Collect(recovered, os.Args, crashConfig)

	path, err := writer.Write(info)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write crash dump: %v\n", err)

		return
	}

	fmt.Fprintf(os.Stderr, "crash dump saved to: %s\n", path)
}
