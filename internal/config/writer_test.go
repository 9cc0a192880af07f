package config_test

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/compilerlint/internal/config"
	"github.com/smykla-skalski/compilerlint/internal/schema"
)

var _ = Describe("Writer", func() {
	var (
		homeDir string
		workDir string
		writer  *config.Writer
	)

	BeforeEach(func() {
		homeDir = GinkgoT().TempDir()
		workDir = GinkgoT().TempDir()
		writer = config.NewWriterWithDirs(homeDir, workDir)
	})

	It("writes a project config that loads back", func() {
		cfg := config.DefaultConfig()
		cfg.Output.Format = "json"

		path, err := writer.Write(config.ScopeProject, cfg, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(Equal(filepath.Join(workDir, config.ProjectConfigDir, config.ProjectConfigFile)))

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.SplitN(string(data), "\n", 2)[0]).To(Equal(schema.SchemaDirective()))
		Expect(string(data)).To(ContainSubstring(`timeout = '30s'`))

		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Mode().Perm()).To(Equal(os.FileMode(config.ConfigFileMode)))

		loader, err := config.NewKoanfLoaderWithDirs(homeDir, workDir)
		Expect(err).NotTo(HaveOccurred())

		loaded, err := loader.Load(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Output.Format).To(Equal("json"))
		Expect(loaded.Suppression.Classes).To(Equal(cfg.Suppression.Classes))
		Expect(loader.Warnings()).To(BeEmpty())
	})

	It("refuses to overwrite without force", func() {
		path, err := writer.Write(config.ScopeGlobal, config.DefaultConfig(), false)
		Expect(err).NotTo(HaveOccurred())
		Expect(path).To(HavePrefix(homeDir))

		_, err = writer.Write(config.ScopeGlobal, config.DefaultConfig(), false)
		Expect(errors.Is(err, config.ErrConfigExists)).To(BeTrue())

		cfg := config.DefaultConfig()
		cfg.Output.Format = "yaml"

		_, err = writer.Write(config.ScopeGlobal, cfg, true)
		Expect(err).NotTo(HaveOccurred())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`format = 'yaml'`))

		_, err = os.Stat(path + ".tmp")
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("rejects a nil config", func() {
		_, err := writer.Write(config.ScopeProject, nil, true)
		Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
	})
})
