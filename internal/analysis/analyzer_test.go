package analysis_test

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/smykla-skalski/compilerlint/internal/analysis"
	execpkg "github.com/smykla-skalski/compilerlint/internal/exec"
	"github.com/smykla-skalski/compilerlint/pkg/logger"
)

var errAnalyzerCrashed = errors.New("exit status 1")

const analyzerOutput = `{
  "filename": "Component.tsx",
  "source": "function Component() {}",
  "events": [
    {"kind": "CompileSuccess", "fnLoc": {"start": {"line": 1, "column": 0}, "end": {"line": 1, "column": 23}}},
    {
      "kind": "CompileError",
      "fnLoc": {"start": {"line": 1, "column": 0}, "end": {"line": 1, "column": 23}},
      "detail": {
        "severity": "Error",
        "category": "Refs",
        "reason": "Cannot access ref value during render",
        "loc": "unknown",
        "suggestions": [{"op": "Remove", "range": [0, 3], "description": "drop"}]
      }
    }
  ]
}`

var _ = Describe("CommandAnalyzer", func() {
	var (
		ctrl            *gomock.Controller
		mockRunner      *execpkg.MockCommandRunner
		mockToolChecker *execpkg.MockToolChecker
		analyzer        *analysis.CommandAnalyzer
		ctx             context.Context
		req             analysis.Request
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockRunner = execpkg.NewMockCommandRunner(ctrl)
		mockToolChecker = execpkg.NewMockToolChecker(ctrl)
		ctx = context.Background()
		req = analysis.Request{
			Filename: "Component.tsx",
			Source:   "function Component() {}",
			Options:  analysis.MergeCompilerOptions(nil),
		}

		var err error

		analyzer, err = analysis.NewCommandAnalyzerWithDeps(
			analysis.CommandConfig{Command: `node "./tools/run compiler.mjs" --json`, MinVersion: "19.1.0"},
			mockRunner,
			mockToolChecker,
			logger.NewNoOpLogger(),
		)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("splits the command like a shell would", func() {
		Expect(analyzer.Command()).To(Equal([]string{"node", "./tools/run compiler.mjs", "--json"}))
	})

	It("rejects an empty command", func() {
		_, err := analysis.NewCommandAnalyzerWithDeps(
			analysis.CommandConfig{Command: "   "},
			mockRunner,
			mockToolChecker,
			logger.NewNoOpLogger(),
		)
		Expect(err).To(MatchError(analysis.ErrEmptyCommand))
	})

	Describe("Analyze", func() {
		It("sends the request on stdin and decodes the result", func() {
			mockToolChecker.EXPECT().RequireTool("node").Return(nil)
			mockRunner.EXPECT().
				RunWithStdin(gomock.Any(), gomock.Any(), "node", "./tools/run compiler.mjs", "--json").
				DoAndReturn(func(_ context.Context, stdin io.Reader, _ string, _ ...string) execpkg.CommandResult {
					data, err := io.ReadAll(stdin)
					Expect(err).NotTo(HaveOccurred())
					Expect(string(data)).To(ContainSubstring(`"filename":"Component.tsx"`))
					Expect(string(data)).To(ContainSubstring(`"noEmit":true`))

					return execpkg.CommandResult{Stdout: analyzerOutput}
				})

			result, err := analyzer.Analyze(ctx, req)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Events).To(HaveLen(2))
			Expect(result.CompileErrorCount()).To(Equal(1))
			Expect(result.Events[1].Detail.Location.IsUnknown()).To(BeTrue())
			Expect(result.Events[1].Detail.Suggestions[0].Op).To(Equal(analysis.OpRemove))
		})

		It("falls back to the request filename and source", func() {
			mockToolChecker.EXPECT().RequireTool("node").Return(nil)
			mockRunner.EXPECT().
				RunWithStdin(gomock.Any(), gomock.Any(), "node", gomock.Any(), gomock.Any()).
				Return(execpkg.CommandResult{Stdout: `{"events": []}`})

			result, err := analyzer.Analyze(ctx, req)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Filename).To(Equal("Component.tsx"))
			Expect(result.Source).To(Equal("function Component() {}"))
		})

		It("marks a crashing analyzer as an analysis failure", func() {
			mockToolChecker.EXPECT().RequireTool("node").Return(nil)
			mockRunner.EXPECT().
				RunWithStdin(gomock.Any(), gomock.Any(), "node", gomock.Any(), gomock.Any()).
				Return(execpkg.CommandResult{
					Stderr:   "SyntaxError: Unexpected token (3:4)",
					ExitCode: 1,
					Err:      errAnalyzerCrashed,
				})

			_, err := analyzer.Analyze(ctx, req)

			Expect(errors.Is(err, analysis.ErrAnalysisFailed)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Unexpected token"))
		})

		It("marks undecodable output as an analysis failure", func() {
			mockToolChecker.EXPECT().RequireTool("node").Return(nil)
			mockRunner.EXPECT().
				RunWithStdin(gomock.Any(), gomock.Any(), "node", gomock.Any(), gomock.Any()).
				Return(execpkg.CommandResult{Stdout: "not json"})

			_, err := analyzer.Analyze(ctx, req)

			Expect(errors.Is(err, analysis.ErrAnalysisFailed)).To(BeTrue())
			Expect(errors.Is(err, analysis.ErrInvalidOutput)).To(BeTrue())
		})

		It("fails when the analyzer binary is missing", func() {
			mockToolChecker.EXPECT().RequireTool("node").Return(&execpkg.ToolNotFoundError{Tool: "node"})

			_, err := analyzer.Analyze(ctx, req)

			Expect(errors.Is(err, analysis.ErrAnalysisFailed)).To(BeTrue())
		})
	})

	Describe("CheckVersion", func() {
		It("accepts a new enough analyzer", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "node", "./tools/run compiler.mjs", "--json", "--version").
				Return(execpkg.CommandResult{Stdout: "v19.1.3\n"})

			version, err := analyzer.CheckVersion(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(version).To(Equal("19.1.3"))
		})

		It("rejects an older analyzer", func() {
			mockRunner.EXPECT().
				Run(gomock.Any(), "node", "./tools/run compiler.mjs", "--json", "--version").
				Return(execpkg.CommandResult{Stdout: "0.0.0-experimental\n"})

			_, err := analyzer.CheckVersion(ctx)

			Expect(err).To(MatchError(analysis.ErrUnsupportedVersion))
		})
	})
})
