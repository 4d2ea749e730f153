package utils

import (
	"fmt"
	"go/ast"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"
)

// LoadMode is the go/packages mode the generator needs: syntax with comments
// plus full type information.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedModule

// Ptr returns a pointer to the given value
func Ptr[T any](v T) *T {
	return &v
}

// EnsureDir makes sure a directory exists
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// SplitPatterns separates include patterns from '!' exclusions.
func SplitPatterns(patterns []string) (include, exclude []string) {
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if after, ok := strings.CutPrefix(p, "!"); ok {
			exclude = append(exclude, after)
		} else {
			include = append(include, p)
		}
	}
	return include, exclude
}

// ExpandGlobs expands patterns including recursive ** globs and negations.
// Example:
//
//	"./models/**/*.go", "!./models/test"
func ExpandGlobs(patterns ...string) ([]string, error) {
	include, exclude := SplitPatterns(patterns)

	results := map[string]struct{}{}

	for _, pattern := range include {
		matches, err := ExpandGlobPattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			results[filepath.Clean(m)] = struct{}{}
		}
	}

	for _, pattern := range exclude {
		matches, err := ExpandGlobPattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			m = filepath.Clean(m)
			delete(results, m)
			for r := range results {
				if strings.HasPrefix(r, m+string(os.PathSeparator)) {
					delete(results, r)
				}
			}
		}
	}

	out := make([]string, 0, len(results))
	for k := range results {
		out = append(out, k)
	}
	sort.Strings(out)

	return out, nil
}

// ExpandGlobPattern supports multiple '**' (zero or more directories), leading '**', and normal
// segment wildcards (*, ?, character classes). Returns matching paths (files & directories).
func ExpandGlobPattern(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, nil
	}
	sep := string(os.PathSeparator)
	pattern = filepath.Clean(pattern)

	if !strings.Contains(pattern, "**") {
		return filepath.Glob(pattern)
	}

	segs := strings.Split(pattern, sep)
	// Determine walk root: accumulate non-glob segments until first glob or '**'
	rootParts := []string{}
	for _, s := range segs {
		if s == "**" || strings.ContainsAny(s, "*?[") {
			break
		}
		rootParts = append(rootParts, s)
	}
	root := strings.Join(rootParts, sep)
	if root == "" {
		root = "."
	}
	if strings.HasPrefix(pattern, sep) && !strings.HasPrefix(root, sep) {
		root = sep + root
	}
	patSegs := segs[len(rootParts):]

	var results []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "vendor") {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		var pathSegs []string
		if rel != "." {
			pathSegs = strings.Split(rel, sep)
		}
		if matchPatternRecursive(patSegs, pathSegs, 0, 0) {
			results = append(results, path)
		}
		return nil
	})
	return results, nil
}

// Recursive matcher supporting multiple '**' glob directory segments.
func matchPatternRecursive(pSegs, sSegs []string, pi, si int) bool {
	if pi == len(pSegs) && si == len(sSegs) {
		return true
	}
	if pi == len(pSegs) {
		return false
	}
	seg := pSegs[pi]
	if seg == "**" {
		// Try zero segments
		if matchPatternRecursive(pSegs, sSegs, pi+1, si) {
			return true
		}
		// Try consuming one segment and stay on '**'
		if si < len(sSegs) {
			return matchPatternRecursive(pSegs, sSegs, pi, si+1)
		}
		return false
	}
	if si >= len(sSegs) {
		return false
	}
	ok, err := filepath.Match(seg, sSegs[si])
	if err != nil || !ok {
		return false
	}
	return matchPatternRecursive(pSegs, sSegs, pi+1, si+1)
}

// Convert file paths to unique directories
func UniqueDirs(files []string) []string {
	dirs := map[string]struct{}{}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		dir := f
		if !info.IsDir() {
			dir = filepath.Dir(f)
		}
		dirs[dir] = struct{}{}
	}

	out := make([]string, 0, len(dirs))
	for d := range dirs {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// LoadPackages loads Go packages from import paths (./..., github.com/x/y)
// or file glob patterns, relative to dir. Patterns prefixed with '!' exclude.
func LoadPackages(dir string, patterns ...string) ([]*packages.Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	if allPatternsAreImportPaths(patterns) {
		return LoadPackagesByImportPath(dir, patterns...)
	}
	return LoadPackagesByFilePattern(dir, patterns...)
}

// allPatternsAreImportPaths checks if all patterns look like Go import paths
func allPatternsAreImportPaths(patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if after, ok := strings.CutPrefix(pattern, "!"); ok {
			pattern = after
		}
		if pattern == "." || pattern == "./..." || strings.HasSuffix(pattern, "/...") {
			continue
		}
		// If pattern contains .go or file-like patterns, it's not an import path
		if strings.Contains(pattern, ".go") ||
			strings.Contains(pattern, "*") ||
			strings.HasPrefix(pattern, "./") ||
			strings.HasPrefix(pattern, "../") ||
			filepath.IsAbs(pattern) {
			return false
		}
	}
	return true
}

// LoadPackagesByImportPath loads packages using Go import paths
func LoadPackagesByImportPath(dir string, patterns ...string) ([]*packages.Package, error) {
	include, exclude := SplitPatterns(patterns)

	cfg := &packages.Config{Mode: LoadMode, Dir: dir}
	pkgs, err := packages.Load(cfg, include...)
	if err != nil {
		return nil, err
	}
	if len(exclude) == 0 {
		return pkgs, nil
	}

	out := pkgs[:0]
	for _, pkg := range pkgs {
		if !matchesImportPath(pkg.PkgPath, exclude) {
			out = append(out, pkg)
		}
	}
	return out, nil
}

// matchesImportPath matches go-style patterns where "/..." means any subpackage.
func matchesImportPath(pkgPath string, patterns []string) bool {
	for _, p := range patterns {
		if base, ok := strings.CutSuffix(p, "/..."); ok {
			if pkgPath == base || strings.HasPrefix(pkgPath, base+"/") {
				return true
			}
			continue
		}
		if pkgPath == p {
			return true
		}
	}
	return false
}

// LoadPackagesByFilePattern loads packages from file glob patterns and returns []*packages.Package
func LoadPackagesByFilePattern(dir string, patterns ...string) ([]*packages.Package, error) {
	abs := make([]string, 0, len(patterns))
	for _, p := range patterns {
		neg := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		if neg {
			p = "!" + p
		}
		abs = append(abs, p)
	}

	files, err := ExpandGlobs(abs...)
	if err != nil {
		return nil, err
	}

	dirs := UniqueDirs(files)
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no directories found from patterns %v", patterns)
	}

	cfg := &packages.Config{Mode: LoadMode, Dir: dir}
	pkgs, err := packages.Load(cfg, dirs...)
	if err != nil {
		return nil, err
	}

	return pkgs, nil
}

// DetectModulePath returns the path declared by the nearest go.mod at or
// above dir, the working directory when dir is empty. Empty outside a module.
func DetectModulePath(dir string) string {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		if content, err := os.ReadFile(filepath.Join(dir, "go.mod")); err == nil {
			return modfile.ModulePath(content)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// PackageDir returns the directory holding the package sources.
func PackageDir(pkg *packages.Package) string {
	for _, files := range [][]string{pkg.GoFiles, pkg.CompiledGoFiles, pkg.OtherFiles} {
		if len(files) > 0 {
			return filepath.Dir(files[0])
		}
	}
	return ""
}

// ExtractCommentText extracts plain text from comment groups, removing comment markers
// and annotation lines.
func ExtractCommentText(commentGroups []*ast.CommentGroup) string {
	var parts []string
	for _, group := range commentGroups {
		if group == nil {
			continue
		}
		for _, line := range strings.Split(group.Text(), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "@") {
				continue
			}
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}
