package graph

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"impacted/internal/discover"
	"impacted/internal/parser"
)

// projectFixture writes:
//
//	root/p/__init__.py
//	root/p/core.py
//	root/p/orphan.py          (imports nothing, imported by nothing)
//	root/p/tests/__init__.py
//	root/p/tests/test_core.py (imports p.core)
func projectFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	pkg := filepath.Join(root, "p")
	tests := filepath.Join(pkg, "tests")
	if err := os.MkdirAll(tests, 0755); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		filepath.Join(pkg, "__init__.py"):    "",
		filepath.Join(pkg, "core.py"):        "import os\n",
		filepath.Join(pkg, "orphan.py"):      "x = 1\n",
		filepath.Join(tests, "__init__.py"):  "",
		filepath.Join(tests, "test_core.py"): "from p import core\n",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newTestBuilder(root string) *Builder {
	d := discover.NewDiscoverer(root)
	p := parser.NewParser(parser.NewGrammarLoader())
	return NewBuilder(d, p)
}

func TestBuildAffectsGraph(t *testing.T) {
	root := projectFixture(t)
	b := newTestBuilder(root)

	affects, err := b.Build("p", "")
	if err != nil {
		t.Fatal(err)
	}

	// from p import core: core is a submodule of p, so the edge lands on
	// p.core and the affects orientation points core -> test_core.
	if got := affects.Successors("p.core"); !reflect.DeepEqual(got, []string{"p.tests.test_core"}) {
		t.Errorf("Expected p.core to affect p.tests.test_core, got %v", got)
	}
}

func TestBuildPrunesOrphans(t *testing.T) {
	root := projectFixture(t)
	b := newTestBuilder(root)

	affects, err := b.Build("p", "")
	if err != nil {
		t.Fatal(err)
	}

	if affects.HasNode("p.orphan") {
		t.Error("Orphan module must be pruned from the affects graph")
	}
	for _, node := range affects.Nodes() {
		if node == "p.tests" {
			t.Error("Package marker with no edges must be pruned")
		}
	}
}

func TestBuildThenResolveScenario(t *testing.T) {
	root := projectFixture(t)
	b := newTestBuilder(root)

	affects, err := b.Build("p", "")
	if err != nil {
		t.Fatal(err)
	}

	got := ResolveImpacted([]string{"p.core"}, affects)
	if !reflect.DeepEqual(got, []string{"p.tests.test_core"}) {
		t.Errorf("Expected [p.tests.test_core], got %v", got)
	}
}

func TestBuildDanglingProductionScenario(t *testing.T) {
	root := projectFixture(t)
	b := newTestBuilder(root)

	affects, err := b.Build("p", "")
	if err != nil {
		t.Fatal(err)
	}

	// p.unknown exists nowhere: every discovered test module is selected.
	got := ResolveImpacted([]string{"p.unknown"}, affects)
	if !reflect.DeepEqual(got, affects.TestModules()) {
		t.Errorf("Expected all test modules %v, got %v", affects.TestModules(), got)
	}
	if len(got) == 0 {
		t.Error("Fixture should contain at least one test module")
	}
}

func TestBuildWithSeparateTestsPackage(t *testing.T) {
	root := t.TempDir()
	pkg := filepath.Join(root, "p")
	tests := filepath.Join(root, "tests")
	for _, dir := range []string{pkg, tests} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	files := map[string]string{
		filepath.Join(pkg, "__init__.py"):    "",
		filepath.Join(pkg, "core.py"):        "",
		filepath.Join(tests, "test_core.py"): "import p.core\n",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	b := newTestBuilder(root)
	affects, err := b.Build("p", "tests")
	if err != nil {
		t.Fatal(err)
	}

	got := ResolveImpacted([]string{"p.core"}, affects)
	if !reflect.DeepEqual(got, []string{"tests.test_core"}) {
		t.Errorf("Expected [tests.test_core], got %v", got)
	}
}
