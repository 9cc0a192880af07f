package analysis

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// SourceExtensions lists the file extensions the analysis understands.
var SourceExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".mts", ".cts"}

var (
	// Loose match for PascalCase identifiers (potential components).
	componentPattern = regexp.MustCompile(`\b[A-Z][a-zA-Z0-9]*\s*[=(]`)

	// Loose match for hook functions (useX).
	hookPattern = regexp.MustCompile(`\buse[A-Z]`)
)

// HasSourceExtension reports whether filename has an analyzable extension.
func HasSourceExtension(filename string) bool {
	return slices.Contains(SourceExtensions, strings.ToLower(filepath.Ext(filename)))
}

// ShouldProcess is a cheap textual heuristic deciding whether a file is
// worth running the analysis on. .tsx files are always processed.
func ShouldProcess(filename, source string) bool {
	if strings.HasSuffix(filename, ".tsx") {
		return true
	}

	if !HasSourceExtension(filename) {
		return false
	}

	if strings.Contains(source, "react") {
		return true
	}

	return componentPattern.MatchString(source) || hookPattern.MatchString(source)
}
