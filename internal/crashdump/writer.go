package crashdump

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const (
	// FilePerm is the permission of crash dump files.
	FilePerm fs.FileMode = 0o600

	// DirPerm is the permission of the dump directory.
	DirPerm fs.FileMode = 0o700

	// DirName is the dump directory name under the global config directory.
	DirName = "crash"

	fileExtension = ".json"
	tempSuffix    = ".tmp"
)

var (
	// ErrWriteFailed is returned when writing a crash dump fails.
	ErrWriteFailed = errors.New("failed to write crash dump")

	// ErrInvalidDumpDir is returned for an empty or unusable dump directory.
	ErrInvalidDumpDir = errors.New("invalid dump directory")
)

// Writer persists crash dumps.
type Writer struct {
	dumpDir string
}

// NewWriter creates a writer storing dumps in dumpDir.
func NewWriter(dumpDir string) (*Writer, error) {
	if dumpDir == "" {
		return nil, errors.Wrap(ErrInvalidDumpDir, "dump directory cannot be empty")
	}

	return &Writer{dumpDir: dumpDir}, nil
}

// DumpDir returns the dump directory.
func (w *Writer) DumpDir() string {
	return w.dumpDir
}

// Write stores info as indented JSON and returns the file path. The file is
// written to a temporary name first and renamed into place.
func (w *Writer) Write(info *CrashInfo) (string, error) {
	if info == nil {
		return "", errors.Wrap(ErrWriteFailed, "crash info is nil")
	}

	if err := os.MkdirAll(w.dumpDir, DirPerm); err != nil {
		return "", errors.Mark(errors.Wrap(err, "creating dump directory"), ErrInvalidDumpDir)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "marshaling crash info"), ErrWriteFailed)
	}

	path := filepath.Join(w.dumpDir, info.ID+fileExtension)
	tempPath := path + tempSuffix

	if err := os.WriteFile(tempPath, data, FilePerm); err != nil {
		return "", errors.Mark(err, ErrWriteFailed)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)

		return "", errors.Mark(err, ErrWriteFailed)
	}

	return path, nil
}
