package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/smykla-skalski/compilerlint/internal/analysis"
	"github.com/smykla-skalski/compilerlint/internal/color"
	internalconfig "github.com/smykla-skalski/compilerlint/internal/config"
	"github.com/smykla-skalski/compilerlint/internal/config/factory"
	"github.com/smykla-skalski/compilerlint/internal/doctor"
	"github.com/smykla-skalski/compilerlint/internal/exec"
)

var verboseFlag bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose compilerlint setup",
	Long: `Diagnose compilerlint setup.

Checks:
- Configuration files load and validate
- The analyzer command is installed
- The analyzer reports a version satisfying analyzer.min_version`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show details for passing checks")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	log := newLogger()

	loader, err := internalconfig.NewKoanfLoader()
	if err != nil {
		return err
	}

	loader.WithConfigFile(configPath)

	registry := doctor.NewRegistry()
	registry.Register(doctor.NewConfigChecker(loader))

	// Analyzer checks run against whatever configuration loads, falling back
	// to defaults so that a broken config still gets a full report.
	cfg, err := loader.LoadWithoutValidation(changedFlags(cmd))
	if err != nil {
		cfg = internalconfig.DefaultConfig()
	}

	analyzer, err := analysis.NewCommandAnalyzer(factory.CommandConfig(cfg), log)
	if err == nil {
		registry.Register(
			doctor.NewAnalyzerChecker(analyzer.Command(), exec.NewToolChecker()),
			doctor.NewVersionChecker(analyzer, cfg.Analyzer.MinVersion),
		)
	} else {
		registry.Register(
			doctor.NewAnalyzerChecker(nil, exec.NewToolChecker()),
			doctor.NewVersionChecker(nil, cfg.Analyzer.MinVersion),
		)
	}

	results := registry.RunAll(cmd.Context())
	theme := color.NewTheme(color.Enabled(color.Mode(cfg.Output.Color), os.Stdout))

	if err := doctor.Report(cmd.OutOrStdout(), results, theme, verboseFlag); err != nil {
		return err
	}

	if doctor.HasErrors(results) {
		return errProblemsFound
	}

	return nil
}
