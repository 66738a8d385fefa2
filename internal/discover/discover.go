package discover

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const initFile = "__init__.py"

// Discoverer maps dotted module names to absolute file paths by listing
// directories. It never imports or executes anything. Results are cached per
// package name for the lifetime of the process; callers that mutate the tree
// between calls must Invalidate first.
type Discoverer struct {
	root string

	mu    sync.Mutex
	cache map[string]map[string]string
}

func NewDiscoverer(root string) *Discoverer {
	return &Discoverer{
		root:  root,
		cache: make(map[string]map[string]string),
	}
}

// Discover returns a map of fully qualified module name to absolute file
// path for every module and subpackage under packageName.
func (d *Discoverer) Discover(packageName string) map[string]string {
	d.mu.Lock()
	if cached, ok := d.cache[packageName]; ok {
		d.mu.Unlock()
		return copyModuleMap(cached)
	}
	d.mu.Unlock()

	modules := make(map[string]string)
	pkgDir := filepath.Join(d.root, filepath.FromSlash(strings.ReplaceAll(packageName, ".", "/")))
	d.scanPackage(packageName, pkgDir, modules)

	d.mu.Lock()
	d.cache[packageName] = modules
	d.mu.Unlock()

	return copyModuleMap(modules)
}

// Invalidate drops all cached discovery results.
func (d *Discoverer) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cache = make(map[string]map[string]string)
}

func (d *Discoverer) scanPackage(pkgName, pkgDir string, modules map[string]string) {
	entries, err := os.ReadDir(pkgDir)
	if err != nil {
		slog.Warn("cannot list package directory, skipping", "package", pkgName, "dir", pkgDir, "error", err)
		return
	}

	// The package itself, when it carries a marker file.
	if path, ok := d.verify(pkgName, filepath.Join(pkgDir, initFile)); ok {
		modules[pkgName] = path
	}

	names := make([]string, 0, len(entries))
	byName := make(map[string]os.DirEntry, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
		byName[entry.Name()] = entry
	}
	sort.Strings(names)

	for _, name := range names {
		entry := byName[name]
		if entry.IsDir() {
			if strings.HasPrefix(name, ".") || name == "__pycache__" {
				continue
			}
			// Subpackages are recursed into whether or not they carry an
			// __init__.py, so namespace-style tests directories are reached.
			d.scanPackage(pkgName+"."+name, filepath.Join(pkgDir, name), modules)
			continue
		}
		if !strings.HasSuffix(name, ".py") || name == initFile {
			continue
		}

		modName := pkgName + "." + strings.TrimSuffix(name, ".py")
		if path, ok := d.verify(modName, filepath.Join(pkgDir, name)); ok {
			modules[modName] = path
		}
	}
}

// verify re-checks that the path derived from the dotted name exists before
// recording it; stale directory listings and dangling symlinks are skipped.
func (d *Discoverer) verify(modName, path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		slog.Warn("cannot resolve module path, skipping", "module", modName, "path", path, "error", err)
		return "", false
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		if err != nil && !os.IsNotExist(err) {
			slog.Warn("cannot stat module file, skipping", "module", modName, "path", abs, "error", err)
		} else {
			slog.Debug("module file does not exist, skipping", "module", modName, "path", abs)
		}
		return "", false
	}
	return abs, true
}

// IsPackagePath reports whether a module file path is a package marker file.
func IsPackagePath(path string) bool {
	return filepath.Base(path) == initFile
}

func copyModuleMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
