package parser

import (
	"log/slog"
	"os"
	"strings"

	"impacted/internal/core/errors"
)

// SubmoduleProber reports whether a dotted name is a known module. It is
// consulted to decide whether "from x import a" depends on the submodule
// "x.a" or on a plain symbol inside "x". Probing never imports anything.
type SubmoduleProber func(name string) bool

// ImportExtractor turns one source file into the set of module names it
// statically depends on, resolving relative imports against the importer's
// own dotted name.
type ImportExtractor struct {
	parser *Parser
	probe  SubmoduleProber
}

func NewImportExtractor(parser *Parser, probe SubmoduleProber) *ImportExtractor {
	return &ImportExtractor{parser: parser, probe: probe}
}

// ExtractImports reads and parses filePath and returns the dotted names it
// imports. A missing or zero-byte file has no imports and yields an empty
// set; any other read failure on a file expected to hold content is a real
// error and is returned.
func (x *ImportExtractor) ExtractImports(filePath, moduleName string, isPackage bool) (map[string]bool, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("source file missing, treating as no imports", "path", filePath)
			return map[string]bool{}, nil
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "read source file")
	}
	if len(content) == 0 {
		return map[string]bool{}, nil
	}

	file, err := x.parser.ParseFile(filePath, content)
	if err != nil {
		// An unparseable file contributes no dependency information; the
		// rest of the analysis continues without it.
		slog.Warn("failed to parse source file, skipping", "path", filePath, "error", err)
		return map[string]bool{}, nil
	}

	out := make(map[string]bool)
	for _, imp := range file.Imports {
		for _, name := range x.resolve(imp, moduleName, isPackage) {
			if name != "" && name != moduleName {
				out[name] = true
			}
		}
	}
	return out, nil
}

func (x *ImportExtractor) resolve(imp Import, moduleName string, isPackage bool) []string {
	base := imp.Module
	if imp.IsRelative {
		base = resolveRelative(moduleName, isPackage, imp.Level, imp.Module)
		if base == "" {
			return nil
		}
	}

	// Plain "import x" or "from x import *".
	if len(imp.Items) == 0 {
		return []string{base}
	}

	// "from x import a, b": each target is either the submodule x.a or a
	// symbol defined in x. The prober decides without importing; when it
	// cannot confirm a submodule, the bare base is recorded.
	names := make([]string, 0, len(imp.Items))
	for _, item := range imp.Items {
		candidate := base + "." + item
		if x.probe != nil && x.probe(candidate) {
			names = append(names, candidate)
		} else {
			names = append(names, base)
		}
	}
	return names
}

// resolveRelative maps a relative import onto an absolute dotted name.
// A package's __init__ file resolves dots starting from its own name, a
// plain module from its parent package, then one more segment is stripped
// per dot beyond the first.
func resolveRelative(moduleName string, isPackage bool, level int, rest string) string {
	parts := strings.Split(moduleName, ".")
	if !isPackage {
		parts = parts[:len(parts)-1]
	}
	for i := 1; i < level; i++ {
		if len(parts) == 0 {
			return ""
		}
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return ""
	}

	base := strings.Join(parts, ".")
	if rest == "" {
		return base
	}
	return base + "." + rest
}
