// Command schema-gen writes the config JSON Schema into a directory, or with
// --check fails when the committed copy has drifted from the config types.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/compilerlint/internal/schema"
)

const schemaPerm = 0o644

var errSchemaDrift = errors.New("schema is out of date, run schema-gen")

func main() {
	var check bool

	cmd := &cobra.Command{
		Use:           "schema-gen [dir]",
		Short:         "Generate the compilerlint config JSON Schema",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "schema"
			if len(args) == 1 {
				dir = args[0]
			}

			path := filepath.Clean(filepath.Join(dir, schema.Filename()))

			data, err := schema.GenerateJSON(true)
			if err != nil {
				return err
			}

			if check {
				return checkSchema(cmd, path, data)
			}

			//nolint:gosec // dev tool, dir from CLI arg
			if err := os.WriteFile(path, data, schemaPerm); err != nil {
				return errors.Wrap(err, "writing schema")
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "compare with the file on disk instead of writing it")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func checkSchema(cmd *cobra.Command, path string, want []byte) error {
	//nolint:gosec // dev tool, dir from CLI arg
	have, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "reading schema")
	}

	if bytes.Equal(have, want) {
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(have)),
		B:        difflib.SplitLines(string(want)),
		FromFile: path,
		ToFile:   "generated",
		Context:  3,
	})
	if err != nil {
		return errors.Wrap(err, "diffing schema")
	}

	fmt.Fprint(cmd.OutOrStdout(), diff)

	return errors.Wrap(errSchemaDrift, path)
}
