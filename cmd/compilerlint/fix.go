package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/compilerlint/internal/fix"
	"github.com/smykla-skalski/compilerlint/internal/output"
	"github.com/smykla-skalski/compilerlint/internal/runner"
)

var dryRunFlag bool

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Apply automatic fixes",
	Long: `Lint files and apply every automatic fix, such as removing unused
opt-out directives. Overlapping fixes are applied first come first served;
the rest are left for a later run.

With --dry-run the changes are printed as a unified diff and no file is written.
With --stdin the fixed source is written to stdout.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)

	fixCmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "Print a diff instead of writing files")
	fixCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Fix source read from stdin")
	fixCmd.Flags().StringVar(&stdinPath, "stdin-filename", "stdin.tsx", "File name used for source read from stdin")
	fixCmd.Flags().BoolVar(&skipVersion, "skip-version-check", false, "Skip the analyzer min_version check")
}

func runFix(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	results, err := s.lint(ctx, args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fixed, applied := 0, 0

	for i := range results {
		res := &results[i]

		edits := fix.FromReports(res.Reports)
		if len(edits) == 0 {
			if stdinFlag && !dryRunFlag {
				_, _ = io.WriteString(out, res.Source)
			}

			continue
		}

		outcome := fix.ApplyAll(res.Source, edits)

		for _, skipped := range outcome.Skipped {
			s.log.Info("fix skipped", "file", res.Path, "fix", skipped.Edit.Title, "reason", skipped.Reason)
		}

		if err := writeFixed(out, res, outcome); err != nil {
			return err
		}

		if outcome.Changed() {
			fixed++
			applied += len(outcome.Applied)
		}
	}

	if !stdinFlag {
		verb := "Applied"
		if dryRunFlag {
			verb = "Would apply"
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s in %s\n",
			verb,
			english.Plural(applied, "fix", "fixes"),
			english.Plural(fixed, "file", ""),
		)
	}

	return nil
}

func writeFixed(out io.Writer, res *runner.FileResult, outcome *fix.Result) error {
	switch {
	case dryRunFlag:
		if !outcome.Changed() {
			return nil
		}

		return output.WriteDiff(out, res.Path, res.Source, outcome.Output)
	case stdinFlag:
		_, err := io.WriteString(out, outcome.Output)

		return errors.Wrap(err, "writing fixed source")
	case outcome.Changed():
		return fix.WriteFile(res.Path, outcome.Output)
	default:
		return nil
	}
}
