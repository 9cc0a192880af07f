package analysis

//go:generate mockgen -source=analyzer.go -destination=analyzer_mock.go -package=analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"mvdan.cc/sh/v3/shell"

	execpkg "github.com/smykla-skalski/compilerlint/internal/exec"
	"github.com/smykla-skalski/compilerlint/pkg/logger"
)

var (
	// ErrAnalysisFailed marks every failure of the external analysis step.
	ErrAnalysisFailed = errors.New("analysis failed")

	// ErrInvalidOutput is returned when the analyzer output is not a valid result.
	ErrInvalidOutput = errors.New("invalid analyzer output")

	// ErrEmptyCommand is returned when no analyzer command is configured.
	ErrEmptyCommand = errors.New("analyzer command is empty")

	// ErrUnsupportedVersion is returned when the analyzer is older than required.
	ErrUnsupportedVersion = errors.New("unsupported analyzer version")
)

const maxStderrInError = 512

// Request is the JSON document written to the analyzer's stdin.
type Request struct {
	Filename      string         `json:"filename"`
	Source        string         `json:"source"`
	ParserPlugins []string       `json:"parserPlugins,omitempty"`
	Plugins       []any          `json:"plugins,omitempty"`
	Options       map[string]any `json:"options"`
}

// Analyzer runs the external analysis for one file.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*Result, error)
}

// CommandConfig configures a CommandAnalyzer.
type CommandConfig struct {
	// Command is a shell-like command line, e.g. "node ./tools/analyze.mjs".
	Command string

	// Timeout bounds a single analysis run. Zero means no timeout.
	Timeout time.Duration

	// MinVersion, when set, is checked against "<command> --version".
	MinVersion string
}

// CommandAnalyzer implements Analyzer by running an external command that
// speaks the JSON request/result protocol over stdin/stdout.
type CommandAnalyzer struct {
	argv        []string
	timeout     time.Duration
	minVersion  string
	runner      execpkg.CommandRunner
	toolChecker execpkg.ToolChecker
	logger      logger.Logger
}

// NewCommandAnalyzer creates a CommandAnalyzer using the real command runner.
func NewCommandAnalyzer(cfg CommandConfig, log logger.Logger) (*CommandAnalyzer, error) {
	return NewCommandAnalyzerWithDeps(cfg, execpkg.NewCommandRunner(), execpkg.NewToolChecker(), log)
}

// NewCommandAnalyzerWithDeps creates a CommandAnalyzer with custom dependencies (for testing).
func NewCommandAnalyzerWithDeps(
	cfg CommandConfig,
	runner execpkg.CommandRunner,
	toolChecker execpkg.ToolChecker,
	log logger.Logger,
) (*CommandAnalyzer, error) {
	argv, err := shell.Fields(cfg.Command, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing analyzer command %q", cfg.Command)
	}

	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	return &CommandAnalyzer{
		argv:        argv,
		timeout:     cfg.Timeout,
		minVersion:  cfg.MinVersion,
		runner:      runner,
		toolChecker: toolChecker,
		logger:      log,
	}, nil
}

// Command returns the resolved argv.
func (a *CommandAnalyzer) Command() []string {
	return a.argv
}

// Analyze runs the analyzer on a single file.
func (a *CommandAnalyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	if err := a.toolChecker.RequireTool(a.argv[0]); err != nil {
		return nil, errors.Mark(err, ErrAnalysisFailed)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "encoding analysis request")
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	started := time.Now()
	res := a.runner.RunWithStdin(ctx, bytes.NewReader(payload), a.argv[0], a.argv[1:]...)

	a.logger.Debug("analyzer finished",
		"file", req.Filename,
		"exitCode", res.ExitCode,
		"elapsed", time.Since(started),
	)

	if res.Failed() {
		cause := res.Err
		if cause == nil {
			cause = errors.New("non-zero exit")
		}

		return nil, errors.Mark(
			errors.Wrapf(cause, "analyzer exited with code %d: %s", res.ExitCode, truncate(res.Stderr)),
			ErrAnalysisFailed,
		)
	}

	result, err := ParseResult([]byte(res.Stdout))
	if err != nil {
		return nil, errors.Mark(err, ErrAnalysisFailed)
	}

	if result.Filename == "" {
		result.Filename = req.Filename
	}

	if result.Source == "" {
		result.Source = req.Source
	}

	return result, nil
}

// CheckVersion verifies that the analyzer reports a version satisfying
// MinVersion. It is a no-op when MinVersion is empty.
func (a *CommandAnalyzer) CheckVersion(ctx context.Context) (string, error) {
	args := append(append([]string{}, a.argv[1:]...), "--version")
	res := a.runner.Run(ctx, a.argv[0], args...)

	if res.Failed() {
		return "", errors.Newf("querying analyzer version: exit code %d: %s", res.ExitCode, truncate(res.Stderr))
	}

	reported := strings.TrimPrefix(strings.TrimSpace(res.Stdout), "v")

	if a.minVersion == "" {
		return reported, nil
	}

	current, err := semver.NewVersion(reported)
	if err != nil {
		return reported, errors.Wrapf(ErrUnsupportedVersion, "cannot parse %q", reported)
	}

	constraint, err := semver.NewConstraint(">= " + strings.TrimPrefix(a.minVersion, "v"))
	if err != nil {
		return reported, errors.Wrapf(err, "invalid min_version %q", a.minVersion)
	}

	if !constraint.Check(current) {
		return reported, errors.Wrapf(
			ErrUnsupportedVersion,
			"analyzer %s is older than required %s",
			current,
			a.minVersion,
		)
	}

	return reported, nil
}

// ParseResult decodes analyzer stdout into a Result.
func ParseResult(data []byte) (*Result, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Wrap(ErrInvalidOutput, "empty output")
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(ErrInvalidOutput, err.Error())
	}

	return &result, nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxStderrInError {
		return s
	}

	return s[:maxStderrInError] + "..."
}
