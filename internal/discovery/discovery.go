// Package discovery expands command-line paths into the source files to lint.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// ErrInvalidPattern is returned for a glob pattern doublestar cannot parse.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// DefaultInclude matches every extension the analysis understands.
var DefaultInclude = []string{"**/*.{js,jsx,ts,tsx,mjs,cjs,mts,cts}"}

// DefaultIgnore skips dependency and build output trees.
var DefaultIgnore = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
	"**/coverage/**",
}

// Options controls discovery.
type Options struct {
	// Include patterns are matched against slash-separated paths relative
	// to the walked directory. Empty means DefaultInclude.
	Include []string

	// Ignore patterns exclude files and prune directories.
	Ignore []string
}

// Discoverer walks paths and filters them through include/ignore globs.
type Discoverer struct {
	include []string
	ignore  []string
}

// New validates the patterns and creates a Discoverer.
func New(opts Options) (*Discoverer, error) {
	include := opts.Include
	if len(include) == 0 {
		include = DefaultInclude
	}

	for _, p := range slices.Concat(include, opts.Ignore) {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Wrapf(ErrInvalidPattern, "%q", p)
		}
	}

	return &Discoverer{include: include, ignore: opts.Ignore}, nil
}

// Discover returns the files to lint for the given paths. Explicit files are
// kept as given, even when they do not match the include patterns, unless
// they are ignored. Directories are walked. The result is deduplicated and
// keeps argument order, with each directory's files sorted.
func (d *Discoverer) Discover(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]struct{})

	var out []string

	add := func(path string) {
		key, err := filepath.Abs(path)
		if err != nil {
			key = path
		}

		if _, dup := seen[key]; dup {
			return
		}

		seen[key] = struct{}{}
		out = append(out, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", path)
		}

		if !info.IsDir() {
			if !d.ignored(filepath.ToSlash(filepath.Clean(path))) {
				add(path)
			}

			continue
		}

		files, err := d.walk(path)
		if err != nil {
			return nil, err
		}

		for _, f := range files {
			add(f)
		}
	}

	return out, nil
}

func (d *Discoverer) walk(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil //nolint:nilerr // the root itself is never filtered
		}

		rel = filepath.ToSlash(rel)

		if entry.IsDir() {
			if d.ignored(rel) || d.ignored(rel+"/") {
				return filepath.SkipDir
			}

			return nil
		}

		if !d.ignored(rel) && matchAny(d.include, rel) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}

	slices.Sort(files)

	return files, nil
}

func (d *Discoverer) ignored(rel string) bool {
	return matchAny(d.ignore, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if doublestar.MatchUnvalidated(p, rel) {
			return true
		}
	}

	return false
}
