package exec

//go:generate mockgen -source=tool.go -destination=tool_mock.go -package=exec

import (
	"os/exec"
	"sync"
)

// ToolChecker resolves executables the way the command runner will.
type ToolChecker interface {
	// Lookup returns the path tool resolves to. Names containing a slash are
	// checked directly, bare names are searched in PATH.
	Lookup(tool string) (string, error)

	// RequireTool is Lookup without the path.
	RequireTool(tool string) error
}

type toolChecker struct {
	mu       sync.Mutex
	resolved map[string]string
}

// NewToolChecker creates a ToolChecker that remembers successful lookups.
//
//nolint:ireturn // callers depend on the interface for mocking
func NewToolChecker() ToolChecker {
	return &toolChecker{resolved: make(map[string]string)}
}

func (t *toolChecker) Lookup(tool string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if path, ok := t.resolved[tool]; ok {
		return path, nil
	}

	path, err := exec.LookPath(tool)
	if err != nil {
		return "", &ToolNotFoundError{Tool: tool, Err: err}
	}

	t.resolved[tool] = path

	return path, nil
}

func (t *toolChecker) RequireTool(tool string) error {
	_, err := t.Lookup(tool)

	return err
}

// ToolNotFoundError reports an analyzer executable that cannot be run.
type ToolNotFoundError struct {
	Tool string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	return "tool not found in PATH: " + e.Tool
}

func (e *ToolNotFoundError) Unwrap() error { return e.Err }
