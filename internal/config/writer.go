package config

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/smykla-skalski/compilerlint/internal/schema"
	"github.com/smykla-skalski/compilerlint/pkg/config"
)

const (
	ConfigFileMode = 0o600
	ConfigDirMode  = 0o700
)

// ErrConfigExists is returned when writing would overwrite an existing file.
var ErrConfigExists = errors.New("configuration file already exists")

// Scope selects which config file `compilerlint init` writes.
type Scope int

const (
	ScopeProject Scope = iota
	ScopeGlobal
)

// Writer renders configs as TOML into the project or global location.
type Writer struct {
	homeDir string
	workDir string
}

// NewWriterWithDirs creates a Writer rooted at the given directories.
func NewWriterWithDirs(homeDir, workDir string) *Writer {
	return &Writer{homeDir: homeDir, workDir: workDir}
}

// Path returns the file written for scope.
func (w *Writer) Path(scope Scope) string {
	if scope == ScopeGlobal {
		return filepath.Join(w.homeDir, GlobalConfigDir, GlobalConfigFile)
	}

	return filepath.Join(w.workDir, ProjectConfigDir, ProjectConfigFile)
}

// Write stores cfg for scope and returns the file path. An existing file is
// only replaced when force is set.
func (w *Writer) Write(scope Scope, cfg *config.Config, force bool) (string, error) {
	path := w.Path(scope)

	if cfg == nil {
		return path, errors.Wrap(ErrInvalidConfig, "config is nil")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return path, err
	}

	if err := os.MkdirAll(filepath.Dir(path), ConfigDirMode); err != nil {
		return path, errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}

	if force {
		return path, replaceFile(path, data)
	}

	//nolint:gosec // path is derived from the home or working directory
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, ConfigFileMode)
	if errors.Is(err, fs.ErrExist) {
		return path, errors.Wrapf(ErrConfigExists, "%s", path)
	}

	if err != nil {
		return path, errors.Wrapf(err, "creating %s", path)
	}

	_, err = f.Write(data)

	return path, errors.CombineErrors(
		errors.Wrapf(err, "writing %s", path),
		errors.Wrapf(f.Close(), "closing %s", path),
	)
}

// replaceFile swaps path for data without leaving a partial file behind.
func replaceFile(path string, data []byte) error {
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, ConfigFileMode); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)

		return errors.Wrapf(err, "replacing %s", path)
	}

	return nil
}

// Marshal encodes cfg as TOML under a Taplo schema directive.
func Marshal(cfg *config.Config) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(schema.SchemaDirective() + "\n")

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)

	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "encoding config as TOML")
	}

	return buf.Bytes(), nil
}
