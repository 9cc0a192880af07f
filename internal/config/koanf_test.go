package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func newSeparatedLoader() (loader *KoanfLoader, homeDir, workDir string) {
	homeDir = GinkgoT().TempDir()
	workDir = GinkgoT().TempDir()

	loader, err := NewKoanfLoaderWithDirs(homeDir, workDir)
	Expect(err).NotTo(HaveOccurred())

	return loader, homeDir, workDir
}

func writeProjectConfig(workDir, content string) {
	dir := filepath.Join(workDir, ProjectConfigDir)
	Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(dir, ProjectConfigFile), []byte(content), 0o644)).To(Succeed())
}

func writeGlobalConfig(homeDir, content string) {
	dir := filepath.Join(homeDir, GlobalConfigDir)
	Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(dir, GlobalConfigFile), []byte(content), 0o644)).To(Succeed())
}

func setEnv(key, value string) {
	Expect(os.Setenv(key, value)).To(Succeed())
	DeferCleanup(os.Unsetenv, key)
}

var _ = Describe("KoanfLoader", func() {
	Describe("defaults", func() {
		It("loads defaults when no file exists", func() {
			loader, _, _ := newSeparatedLoader()

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Analyzer.Command).To(Equal(DefaultAnalyzerCommand))
			Expect(cfg.Analyzer.Timeout.ToDuration()).To(Equal(DefaultAnalyzerTimeout))
			Expect(cfg.Report.IsReportAllBailouts()).To(BeFalse())
			Expect(cfg.Report.IsBailoutsOnly()).To(BeFalse())
			Expect(cfg.Report.IgnoreSeverityLevels).To(BeEmpty())
			Expect(cfg.Report.OptOutDirectives).To(ConsistOf("use no forget", "use no memo"))
			Expect(cfg.Suppression.Classes).To(HaveLen(2))
			Expect(cfg.Output.Format).To(Equal("text"))
			Expect(loader.Warnings()).To(BeEmpty())
		})
	})

	Describe("precedence", func() {
		It("lets the project file override the global file", func() {
			loader, homeDir, workDir := newSeparatedLoader()

			writeGlobalConfig(homeDir, `[analyzer]
command = "node global.mjs"
timeout = "5s"
`)
			writeProjectConfig(workDir, `[analyzer]
command = "node project.mjs"
`)

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Analyzer.Command).To(Equal("node project.mjs"))
			Expect(cfg.Analyzer.Timeout.ToDuration()).To(Equal(5 * time.Second))

			sources := loader.Sources()
			Expect(sources).To(HaveLen(2))
			Expect(sources[0].Layer).To(Equal("global"))
			Expect(sources[1].String()).To(HavePrefix("project: " + workDir))
		})

		It("reads an integer timeout as seconds", func() {
			loader, _, workDir := newSeparatedLoader()

			writeProjectConfig(workDir, "[analyzer]\ntimeout = 45\n")

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Analyzer.Timeout.ToDuration()).To(Equal(45 * time.Second))
		})

		It("reads the alternative project file name", func() {
			loader, _, workDir := newSeparatedLoader()

			Expect(os.WriteFile(
				filepath.Join(workDir, ProjectConfigFileAlt),
				[]byte("[output]\nformat = \"json\"\n"),
				0o644,
			)).To(Succeed())

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Output.Format).To(Equal("json"))
			Expect(loader.FindProjectConfigPath()).To(HaveSuffix(ProjectConfigFileAlt))
			Expect(loader.Sources()).To(ConsistOf(Source{
				Layer: "project",
				Path:  filepath.Join(workDir, ProjectConfigFileAlt),
			}))
		})

		It("lets env vars override files and flags override env vars", func() {
			loader, _, workDir := newSeparatedLoader()

			writeProjectConfig(workDir, `[output]
format = "json"
color = "never"
`)
			setEnv("COMPILERLINT_OUTPUT_FORMAT", "yaml")
			setEnv("COMPILERLINT_OUTPUT_COLOR", "always")

			cfg, err := loader.Load(map[string]any{"format": "table"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Output.Format).To(Equal("table"))
			Expect(cfg.Output.Color).To(Equal("always"))
		})

		It("splits comma separated env values into lists", func() {
			loader, _, _ := newSeparatedLoader()

			setEnv("COMPILERLINT_REPORT_IGNORE_CATEGORIES", "Refs, Hooks")

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Report.IgnoreCategories).To(Equal([]string{"Refs", "Hooks"}))
		})

		It("maps report flags", func() {
			loader, _, _ := newSeparatedLoader()

			cfg, err := loader.Load(map[string]any{"bailouts-only": true, "concurrency": 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Report.IsBailoutsOnly()).To(BeTrue())
			Expect(cfg.Files.Concurrency).To(Equal(3))
		})
	})

	Describe("explicit config file", func() {
		It("replaces the project lookup", func() {
			loader, _, workDir := newSeparatedLoader()

			writeProjectConfig(workDir, "[output]\nformat = \"json\"\n")
			Expect(os.WriteFile(
				filepath.Join(workDir, "custom.toml"),
				[]byte("[output]\nformat = \"yaml\"\n"),
				0o644,
			)).To(Succeed())

			cfg, err := loader.WithConfigFile("custom.toml").Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Output.Format).To(Equal("yaml"))
		})

		It("fails when the file is missing", func() {
			loader, _, _ := newSeparatedLoader()

			_, err := loader.WithConfigFile("missing.toml").Load(nil)
			Expect(errors.Is(err, ErrConfigNotFound)).To(BeTrue())
		})
	})

	Describe("report section", func() {
		It("accepts the camelCase rule option names", func() {
			loader, _, workDir := newSeparatedLoader()

			writeProjectConfig(workDir, `[report]
reportAllBailouts = true
ignoreReportLevels = ["Todo"]
`)

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Report.IsReportAllBailouts()).To(BeTrue())
			Expect(cfg.Report.IgnoreSeverityLevels).To(Equal([]string{"Todo"}))
		})

		It("keeps defaults for malformed options and records warnings", func() {
			loader, _, workDir := newSeparatedLoader()

			writeProjectConfig(workDir, `[report]
bailouts_only = "sometimes"
ignore_categories = [{ name = "Refs" }]
report_all_bailouts = true
`)

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Report.IsBailoutsOnly()).To(BeFalse())
			Expect(cfg.Report.IgnoreCategories).To(BeEmpty())
			Expect(cfg.Report.IsReportAllBailouts()).To(BeTrue())

			Expect(loader.Warnings()).To(HaveLen(2))

			for _, w := range loader.Warnings() {
				Expect(errors.Is(w, ErrMalformedOption)).To(BeTrue())
			}
		})

		It("warns when the section is not a table", func() {
			loader, _, workDir := newSeparatedLoader()

			writeProjectConfig(workDir, "report = 3\n")

			cfg, err := loader.Load(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Report.IsBailoutsOnly()).To(BeFalse())
			Expect(loader.Warnings()).To(HaveLen(1))
		})
	})

	Describe("security", func() {
		It("rejects a world-writable project config", func() {
			loader, _, workDir := newSeparatedLoader()

			writeProjectConfig(workDir, "[output]\nformat = \"json\"\n")

			path := filepath.Join(workDir, ProjectConfigDir, ProjectConfigFile)
			Expect(os.Chmod(path, 0o666)).To(Succeed())

			_, err := loader.Load(nil)
			Expect(errors.Is(err, ErrInvalidPermissions)).To(BeTrue())
		})
	})

	Describe("validation", func() {
		It("fails Load but not LoadWithoutValidation", func() {
			loader, _, workDir := newSeparatedLoader()

			writeProjectConfig(workDir, "[output]\nformat = \"xml\"\n")

			_, err := loader.Load(nil)
			Expect(errors.Is(err, ErrInvalidConfig)).To(BeTrue())

			cfg, err := loader.LoadWithoutValidation(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Output.Format).To(Equal("xml"))
		})
	})

	Describe("envTransform", func() {
		DescribeTable("maps variable names to config paths",
			func(name, value, wantKey string, wantValue any) {
				key, v := envTransform(name, value)
				Expect(key).To(Equal(wantKey))
				Expect(v).To(Equal(wantValue))
			},
			Entry("simple", "COMPILERLINT_OUTPUT_FORMAT", "json", "output.format", "json"),
			Entry("underscored key", "COMPILERLINT_ANALYZER_MIN_VERSION", "1.2.0", "analyzer.min_version", "1.2.0"),
			Entry("list", "COMPILERLINT_FILES_IGNORE", "a/**,b/**", "files.ignore", []string{"a/**", "b/**"}),
		)
	})
})
