package resolver

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// PathResolver translates between file system paths and dotted module names
// using the discovered-module table. Version-control diffs hand over
// repository-relative paths, so relative inputs are anchored at the project
// root before the exact absolute-path match, with a package-relative
// reconstruction fallback tried against every configured package.
type PathResolver struct {
	rootDir  string
	packages []string          // top-level directory names, production and tests
	modules  map[string]string // dotted name -> absolute path
	byPath   map[string]string // absolute path -> dotted name
}

func NewPathResolver(rootDir string, packageNames []string, modules map[string]string) *PathResolver {
	byPath := make(map[string]string, len(modules))
	for name, path := range modules {
		byPath[path] = name
	}

	tops := make([]string, 0, len(packageNames))
	seen := make(map[string]bool, len(packageNames))
	for _, name := range packageNames {
		if name == "" {
			continue
		}
		top := strings.Split(name, ".")[0]
		if !seen[top] {
			seen[top] = true
			tops = append(tops, top)
		}
	}

	return &PathResolver{
		rootDir:  rootDir,
		packages: tops,
		modules:  modules,
		byPath:   byPath,
	}
}

// FilesToModules resolves changed file paths to known module names. Paths
// that are not Python sources or do not resolve to any discovered module are
// logged and skipped; a partial batch is never an error.
func (r *PathResolver) FilesToModules(files []string) []string {
	out := make([]string, 0, len(files))
	for _, file := range files {
		if !strings.HasSuffix(file, ".py") {
			continue
		}
		name, ok := r.moduleForFile(file)
		if !ok {
			slog.Warn("changed file does not resolve to a known module, skipping", "path", file)
			continue
		}
		out = append(out, name)
	}
	return out
}

// ModulesToFiles resolves module names back to their file paths via the
// discovery table. Unresolvable names are logged and skipped.
func (r *PathResolver) ModulesToFiles(modules []string) []string {
	out := make([]string, 0, len(modules))
	for _, name := range modules {
		path, ok := r.PathOf(name)
		if !ok {
			slog.Warn("module has no known file path, skipping", "module", name)
			continue
		}
		out = append(out, path)
	}
	return out
}

// PathOf returns the discovered file path for a single module name.
func (r *PathResolver) PathOf(name string) (string, bool) {
	path, ok := r.modules[name]
	return path, ok
}

func (r *PathResolver) moduleForFile(file string) (string, bool) {
	// Exact absolute-path match first. Git hands over repository-relative
	// paths, which must anchor at the project root, not the process cwd.
	abs := file
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(r.rootDir, abs)
	}
	if resolved, err := filepath.Abs(abs); err == nil {
		abs = resolved
	}
	if name, ok := r.byPath[abs]; ok {
		return name, true
	}
	if name, ok := r.byPath[file]; ok {
		return name, true
	}

	// Fallback: locate a known package directory name inside the path and
	// re-derive the dotted name from the remainder. Both the production and
	// the tests package are candidates.
	for _, top := range r.packages {
		name, ok := r.deriveModuleName(file, top)
		if !ok {
			continue
		}
		if _, known := r.modules[name]; known {
			return name, true
		}
	}
	return "", false
}

func (r *PathResolver) deriveModuleName(file, top string) (string, bool) {
	norm := filepath.ToSlash(file)

	idx := strings.Index(norm, top+"/")
	if !strings.HasPrefix(norm, top+"/") && idx <= 0 {
		return "", false
	}
	if idx > 0 && !strings.HasSuffix(norm[:idx], "/") {
		return "", false
	}

	rel := strings.TrimSuffix(norm[idx:], ".py")
	parts := strings.Split(rel, "/")

	// A package marker file collapses to the package's own name.
	if parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "."), true
}
