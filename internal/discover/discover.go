// Package discover implements the file-discovery layer spec.md §1 names
// as an external collaborator ("file globbing") but leaves
// unspecified: walking a root directory, applying the default
// test/story exclude filter plus any user-supplied glob patterns, and
// producing the list of matching source file paths (Files). The
// analyzer pipeline itself uses only ExcludeFilter: astsvc.NewProject
// loads its files through the compiler host, not from Files.
package discover

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultExcludePattern implements spec.md §6's built-in exclude
// default: `*.(test|spec|stories).(ts|tsx|js|jsx)` or a `__tests__`/
// `__stories__` path component.
var defaultExcludePattern = regexp.MustCompile(`\.(test|spec|stories)\.(ts|tsx|js|jsx)$`)

// sourceExtensions is the set of files the AST service is ever handed.
var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
}

// Options configures one discovery run.
type Options struct {
	// Exclude holds additional doublestar glob patterns (evaluated
	// relative to Root) that exclude a matching file beyond the
	// built-in test/story default.
	Exclude []string
}

// Files walks root and returns every non-excluded .ts/.tsx file path,
// in lexical order.
func Files(root string, opts Options) ([]string, error) {
	var out []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExtensions[filepath.Ext(path)] {
			return nil
		}
		if isDefaultExcluded(path) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		for _, pattern := range opts.Exclude {
			if matched, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); matched {
				return nil
			}
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func isExcludedDir(name string) bool {
	switch name {
	case "node_modules", "__tests__", "__stories__", ".git":
		return true
	}
	return false
}

func isDefaultExcluded(path string) bool {
	base := filepath.Base(path)
	if defaultExcludePattern.MatchString(base) {
		return true
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "__tests__" || part == "__stories__" {
			return true
		}
	}
	return false
}

// ExcludeFilter builds the path predicate the core's Call-Site
// Collector, Reference Walker, and analyzer pipeline expect — the same
// default plus any additional glob patterns, applied to a file's
// absolute or project-relative path directly (not walked).
func ExcludeFilter(patterns []string) func(file string) bool {
	return func(file string) bool {
		if isDefaultExcluded(file) {
			return true
		}
		for _, pattern := range patterns {
			if matched, _ := doublestar.Match(pattern, filepath.ToSlash(file)); matched {
				return true
			}
		}
		return false
	}
}
