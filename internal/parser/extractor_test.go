package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func newExtractor(known ...string) *ImportExtractor {
	knownSet := make(map[string]bool, len(known))
	for _, name := range known {
		knownSet[name] = true
	}
	p := NewParser(NewGrammarLoader())
	return NewImportExtractor(p, func(name string) bool {
		return knownSet[name]
	})
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractImportsMissingFile(t *testing.T) {
	x := newExtractor()
	got, err := x.ExtractImports("/definitely/not/there.py", "pkg.mod", false)
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no imports, got %v", got)
	}
}

func TestExtractImportsEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.py", "")
	x := newExtractor()
	got, err := x.ExtractImports(path, "pkg.mod", false)
	if err != nil {
		t.Fatalf("empty file must not be an error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no imports, got %v", got)
	}
}

func TestExtractImportsRelativeResolution(t *testing.T) {
	cases := []struct {
		name      string
		module    string
		isPackage bool
		code      string
		want      string
	}{
		{"single dot from module", "pkg.sub.mod", false, "from . import helper", "pkg.sub"},
		{"double dot from module", "pkg.sub.mod", false, "from .. import helper", "pkg"},
		{"dot with submodule path", "pkg.sub.mod", false, "from .sibling import thing", "pkg.sub.sibling"},
		{"triple dot two levels deep", "pkg.sub.mod", false, "from ... import anything", "pkg"},
		{"package resolves from own name", "pkg.sub", true, "from . import helper", "pkg.sub"},
		{"package parent", "pkg.sub", true, "from .. import helper", "pkg"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTemp(t, "mod.py", tc.code)
			x := newExtractor()
			got, err := x.ExtractImports(path, tc.module, tc.isPackage)
			if err != nil {
				t.Fatal(err)
			}
			if !got[tc.want] {
				t.Errorf("Expected %q in %v", tc.want, got)
			}
		})
	}
}

func TestExtractImportsTripleDotBeyondRoot(t *testing.T) {
	// More dots than the importer has parents: nothing to resolve against.
	path := writeTemp(t, "mod.py", "from ... import x")
	x := newExtractor()
	got, err := x.ExtractImports(path, "pkg.mod", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no resolvable imports, got %v", got)
	}
}

func TestExtractFromImportSubmodule(t *testing.T) {
	// "from pkg.sub import a, b" records pkg.sub.a when the prober knows it
	// as a module, and the bare pkg.sub otherwise. That default is the
	// documented policy for statically unverifiable targets.
	path := writeTemp(t, "mod.py", "from pkg.sub import a, b")
	x := newExtractor("pkg.sub", "pkg.sub.a")
	got, err := x.ExtractImports(path, "pkg.other", false)
	if err != nil {
		t.Fatal(err)
	}
	if !got["pkg.sub.a"] {
		t.Errorf("Expected submodule pkg.sub.a, got %v", got)
	}
	if !got["pkg.sub"] {
		t.Errorf("Expected bare pkg.sub for the symbol target, got %v", got)
	}
}

func TestExtractImportsIgnoresSelf(t *testing.T) {
	path := writeTemp(t, "mod.py", "from . import mod")
	x := newExtractor("pkg.mod")
	got, err := x.ExtractImports(path, "pkg.mod", false)
	if err != nil {
		t.Fatal(err)
	}
	if got["pkg.mod"] {
		t.Errorf("Self-import must not be recorded, got %v", got)
	}
}

func TestExtractImportsPlain(t *testing.T) {
	path := writeTemp(t, "mod.py", "import pkg.core\nimport os\n")
	x := newExtractor()
	got, err := x.ExtractImports(path, "pkg.mod", false)
	if err != nil {
		t.Fatal(err)
	}
	if !got["pkg.core"] || !got["os"] {
		t.Errorf("Expected pkg.core and os, got %v", got)
	}
}
