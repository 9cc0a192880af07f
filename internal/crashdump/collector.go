// Package crashdump records diagnostic information when compilerlint panics.
package crashdump

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/smykla-skalski/compilerlint/pkg/config"
)

const (
	shortIDLength = 8

	panicNilStr = "panic(nil)"
)

// CrashInfo is the content of a single crash dump.
type CrashInfo struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	PanicValue string         `json:"panic_value"`
	StackTrace string         `json:"stack_trace"`
	Runtime    RuntimeInfo    `json:"runtime"`
	Metadata   DumpMetadata   `json:"metadata"`
	Args       []string       `json:"args,omitempty"`
	Config     *config.Config `json:"config,omitempty"`
}

// RuntimeInfo describes the Go runtime at crash time.
type RuntimeInfo struct {
	GOOS         string `json:"goos"`
	GOARCH       string `json:"goarch"`
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
}

// DumpMetadata identifies the build and the environment.
type DumpMetadata struct {
	Version    string `json:"version"`
	WorkingDir string `json:"working_dir,omitempty"`
}

// formatPanicValue converts a recovered value to a string. panic(nil) is
// reported as *runtime.PanicNilError since Go 1.21.
func formatPanicValue(v any) string {
	if v == nil {
		return panicNilStr
	}

	type panicNilError interface {
		error
		RuntimeError()
	}

	if _, ok := v.(panicNilError); ok {
		return panicNilStr
	}

	if err, ok := v.(error); ok {
		return err.Error()
	}

	return fmt.Sprintf("%v", v)
}

// Collector builds crash information from a recovered panic.
type Collector struct {
	Version string

	now func() time.Time
}

// NewCollector creates a collector stamping dumps with version.
func NewCollector(version string) *Collector {
	return &Collector{Version: version, now: time.Now}
}

// Collect gathers crash information. args and cfg may be nil.
func (c *Collector) Collect(recovered any, args []string, cfg *config.Config) *CrashInfo {
	now := c.now()
	panicValue := formatPanicValue(recovered)

	info := &CrashInfo{
		ID:         generateCrashID(now, panicValue),
		Timestamp:  now,
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Runtime: RuntimeInfo{
			GOOS:         runtime.GOOS,
			GOARCH:       runtime.GOARCH,
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			NumCPU:       runtime.NumCPU(),
		},
		Metadata: DumpMetadata{Version: c.Version},
		Args:     args,
		Config:   cfg,
	}

	if wd, err := os.Getwd(); err == nil {
		info.Metadata.WorkingDir = wd
	}

	return info
}

// generateCrashID returns "crash-{timestamp}-{shortHash}".
func generateCrashID(timestamp time.Time, panicValue string) string {
	data := fmt.Sprintf("%d-%s", timestamp.UnixNano(), panicValue)
	hash := sha256.Sum256([]byte(data))

	return fmt.Sprintf(
		"crash-%s-%s",
		timestamp.Format("20060102T150405"),
		hex.EncodeToString(hash[:])[:shortIDLength],
	)
}
