package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		build := readBuild()

		if versionShort {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), build.Version)

			return err
		}

		_, err := fmt.Fprint(cmd.OutOrStdout(), build)

		return err
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	rootCmd.AddCommand(versionCmd)

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
}

type build struct {
	Version  string
	Commit   string
	Date     string
	Module   string
	Modified bool
}

// readBuild fills in what ldflags left unset from the embedded build info,
// which `go install` populates.
func readBuild() build {
	b := build{Version: version, Commit: commit, Date: date}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}

	b.Module = info.Main.Path

	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = strings.TrimPrefix(info.Main.Version, "v")
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "unknown" {
				b.Commit = s.Value[:min(12, len(s.Value))]
			}
		case "vcs.time":
			if b.Date == "unknown" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}

	return b
}

func (b build) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "compilerlint %s\n", b.Version)

	rows := [][2]string{
		{"commit", b.Commit},
		{"built", b.Date},
		{"go", runtime.Version()},
		{"platform", runtime.GOOS + "/" + runtime.GOARCH},
	}

	if b.Module != "" {
		rows = append(rows, [2]string{"module", b.Module})
	}

	if b.Modified {
		rows = append(rows, [2]string{"modified", "true"})
	}

	for _, row := range rows {
		fmt.Fprintf(&sb, "  %-9s %s\n", row[0]+":", row[1])
	}

	return sb.String()
}
