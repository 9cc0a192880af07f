package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/compilerlint/internal/color"
	"github.com/smykla-skalski/compilerlint/internal/config/factory"
	"github.com/smykla-skalski/compilerlint/internal/output"
	"github.com/smykla-skalski/compilerlint/internal/runner"
	"github.com/smykla-skalski/compilerlint/pkg/config"
	"github.com/smykla-skalski/compilerlint/pkg/logger"
)

var (
	stdinFlag   bool
	stdinPath   string
	maxProblems int
	skipVersion bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Lint files (default command)",
	Long: `Lint files and print the problems found.

Examples:
  compilerlint check src/
  compilerlint check --format json src/ > report.json
  cat App.tsx | compilerlint check --stdin --stdin-filename src/App.tsx`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	for _, cmd := range []*cobra.Command{rootCmd, checkCmd} {
		cmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Lint source read from stdin")
		cmd.Flags().StringVar(
			&stdinPath,
			"stdin-filename",
			"stdin.tsx",
			"File name used for source read from stdin",
		)
		cmd.Flags().IntVar(
			&maxProblems,
			"max-problems",
			-1,
			"Exit with code 1 only when more than this many problems are reported (-1 = any)",
		)
		cmd.Flags().BoolVar(&skipVersion, "skip-version-check", false, "Skip the analyzer min_version check")
	}
}

// session is a loaded configuration with its pipeline.
type session struct {
	cfg      *config.Config
	pipeline *factory.Pipeline
	log      logger.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	log := newLogger()

	cfg, err := loadConfig(cmd, log)
	if err != nil {
		return nil, err
	}

	pipeline, analyzer, err := factory.New(cfg, log)
	if err != nil {
		return nil, err
	}

	if !skipVersion && cfg.Analyzer.MinVersion != "" {
		reported, err := analyzer.CheckVersion(cmd.Context())
		if err != nil {
			return nil, errors.Wrap(err, "checking analyzer version")
		}

		log.Debug("analyzer version", "version", reported)
	}

	return &session{cfg: cfg, pipeline: pipeline, log: log}, nil
}

// lint runs the pipeline over args, or over stdin when --stdin is set.
func (s *session) lint(ctx context.Context, args []string, stdin io.Reader) ([]runner.FileResult, error) {
	if stdinFlag {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "reading stdin")
		}

		res, err := s.pipeline.Runner.RunSource(ctx, stdinPath, string(data))
		if err != nil {
			return nil, err
		}

		return []runner.FileResult{*res}, nil
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	paths, err := s.pipeline.Discoverer.Discover(args)
	if err != nil {
		return nil, errors.Wrap(err, "discovering files")
	}

	s.log.Debug("discovered files", "count", len(paths))

	return s.pipeline.Runner.Run(ctx, paths)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	started := time.Now()

	results, err := s.lint(ctx, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := report(cmd.OutOrStdout(), s.cfg, results, time.Since(started)); err != nil {
		return err
	}

	summary := runner.Summarize(results)
	if summary.Problems > 0 && (maxProblems < 0 || summary.Problems > maxProblems) {
		return errProblemsFound
	}

	return nil
}

func report(w io.Writer, cfg *config.Config, results []runner.FileResult, elapsed time.Duration) error {
	enabled := color.Enabled(color.Mode(cfg.Output.Color), os.Stdout)

	reporter, err := output.New(output.Format(cfg.Output.Format), color.NewTheme(enabled))
	if err != nil {
		return err
	}

	wd, _ := os.Getwd()

	return reporter.Report(w, results, output.Meta{
		Elapsed: elapsed,
		BaseDir: wd,
		Width:   color.Width(os.Stdout),
	})
}
