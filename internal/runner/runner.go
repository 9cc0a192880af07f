// Package runner drives linting of files: eligibility gate, external
// analysis and report adaptation, with bounded concurrency across files.
package runner

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/smykla-skalski/compilerlint/internal/adapter"
	"github.com/smykla-skalski/compilerlint/internal/analysis"
	"github.com/smykla-skalski/compilerlint/pkg/logger"
)

// ErrAborted is returned when a file run hit a fatal adapter error.
var ErrAborted = errors.New("lint run aborted")

// Config holds the per-run settings forwarded to the analysis.
type Config struct {
	ParserPlugins   []string
	Plugins         []any
	CompilerOptions map[string]any

	// Concurrency bounds parallel file runs. Zero means GOMAXPROCS.
	Concurrency int

	// SkipGate analyzes every file regardless of the eligibility heuristic.
	SkipGate bool
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path     string
	Source   string
	Reports  []adapter.Report
	Stats    adapter.Stats
	Skipped  bool
	Failed   bool
	Duration time.Duration
}

// Runner lints files.
type Runner struct {
	analyzer  analysis.Analyzer
	processor *adapter.Processor
	cfg       Config
	logger    logger.Logger
	readFile  func(string) ([]byte, error)
}

// New creates a Runner.
func New(analyzer analysis.Analyzer, processor *adapter.Processor, cfg Config, log logger.Logger) *Runner {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Runner{
		analyzer:  analyzer,
		processor: processor,
		cfg:       cfg,
		logger:    log,
		readFile:  os.ReadFile,
	}
}

// Run lints paths concurrently. Results keep the order of paths. The first
// fatal error cancels the remaining work and is returned.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency())

	for i, path := range paths {
		g.Go(func() error {
			res, err := r.RunFile(gctx, path)
			if err != nil {
				return err
			}

			results[i] = *res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// RunFile reads and lints a single file.
func (r *Runner) RunFile(ctx context.Context, path string) (*FileResult, error) {
	data, err := r.readFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	return r.RunSource(ctx, path, string(data))
}

// RunSource lints source as if read from filename. Analysis failures become
// a single report; only adapter vocabulary drift and cancellation are errors.
func (r *Runner) RunSource(ctx context.Context, filename, source string) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "lint cancelled")
	}

	start := time.Now()
	res := &FileResult{Path: filename, Source: source}
	log := r.logger.With("file", filename)

	if !r.cfg.SkipGate && !analysis.ShouldProcess(filename, source) {
		log.Debug("skipping file")

		res.Skipped = true

		return res, nil
	}

	result, err := r.analyzer.Analyze(ctx, analysis.Request{
		Filename:      filename,
		Source:        source,
		ParserPlugins: r.cfg.ParserPlugins,
		Plugins:       r.cfg.Plugins,
		Options:       r.cfg.CompilerOptions,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "lint cancelled")
		}

		log.Error("analysis failed", "error", err.Error())

		res.Failed = true
		res.Reports = []adapter.Report{adapter.ProcessFailure(err)}
		res.Duration = time.Since(start)

		return res, nil
	}

	out, err := r.processor.Process(result)
	if err != nil {
		return nil, errors.Mark(err, ErrAborted)
	}

	res.Reports = out.Reports
	res.Stats = out.Stats
	res.Duration = time.Since(start)

	log.Debug("file linted", "reports", len(res.Reports), "duration", res.Duration.String())

	return res, nil
}

func (r *Runner) concurrency() int {
	if r.cfg.Concurrency > 0 {
		return r.cfg.Concurrency
	}

	return runtime.GOMAXPROCS(0)
}

// Summary aggregates results of a run.
type Summary struct {
	Files    int
	Linted   int
	Skipped  int
	Failed   int
	Problems int
	Fixable  int
}

// Summarize counts results.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}

	for _, res := range results {
		switch {
		case res.Skipped:
			s.Skipped++
		case res.Failed:
			s.Failed++
		default:
			s.Linted++
		}

		s.Problems += len(res.Reports)

		for i := range res.Reports {
			if res.Reports[i].HasFix() {
				s.Fixable++
			}
		}
	}

	return s
}
