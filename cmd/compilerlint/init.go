package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/compilerlint/internal/config"
)

var (
	initGlobal bool
	initForce  bool
	initPrint  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Write the default settings to .compilerlint/config.toml in the current
directory, or to ~/.compilerlint/config.toml with --global.

An existing file is left alone unless --force is given. --print writes the
file to stdout instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.DefaultConfig()

		if initPrint {
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		}

		homeDir, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "resolving home directory")
		}

		workDir, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "resolving working directory")
		}

		scope := config.ScopeProject
		if initGlobal {
			scope = config.ScopeGlobal
		}

		path, err := config.NewWriterWithDirs(homeDir, workDir).Write(scope, cfg, initForce)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)

		return nil
	},
}

func init() {
	f := initCmd.Flags()
	f.BoolVarP(&initGlobal, "global", "g", false, "Write ~/.compilerlint/config.toml")
	f.BoolVar(&initForce, "force", false, "Replace an existing file")
	f.BoolVar(&initPrint, "print", false, "Print the default config instead of writing it")

	rootCmd.AddCommand(initCmd)
}
