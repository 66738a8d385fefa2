package resolver

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// tableFixture lays out a project with an in-package tests subpackage and a
// separate root-level tests directory:
//
//	root/mypkg/__init__.py
//	root/mypkg/core.py
//	root/mypkg/tests/test_core.py
//	root/tests/test_units.py
func tableFixture(t *testing.T) (string, map[string]string) {
	t.Helper()
	root := t.TempDir()

	pkg := filepath.Join(root, "mypkg")
	pkgTests := filepath.Join(pkg, "tests")
	tests := filepath.Join(root, "tests")
	for _, dir := range []string{pkgTests, tests} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	modules := map[string]string{
		"mypkg":                 filepath.Join(pkg, "__init__.py"),
		"mypkg.core":            filepath.Join(pkg, "core.py"),
		"mypkg.tests.test_core": filepath.Join(pkgTests, "test_core.py"),
		"tests.test_units":      filepath.Join(tests, "test_units.py"),
	}
	for _, path := range modules {
		if err := os.WriteFile(path, []byte(""), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root, modules
}

func newResolver(root string, modules map[string]string) *PathResolver {
	return NewPathResolver(root, []string{"mypkg", "tests"}, modules)
}

func TestFilesToModulesAbsolute(t *testing.T) {
	root, modules := tableFixture(t)
	r := newResolver(root, modules)

	got := r.FilesToModules([]string{modules["mypkg.core"]})
	if !reflect.DeepEqual(got, []string{"mypkg.core"}) {
		t.Errorf("Expected [mypkg.core], got %v", got)
	}
}

func TestFilesToModulesRepoRelative(t *testing.T) {
	root, modules := tableFixture(t)
	r := newResolver(root, modules)

	// Git hands over repository-relative paths; the test process runs with a
	// cwd far away from root, so these must anchor at the project root.
	got := r.FilesToModules([]string{"mypkg/tests/test_core.py"})
	if !reflect.DeepEqual(got, []string{"mypkg.tests.test_core"}) {
		t.Errorf("Expected [mypkg.tests.test_core], got %v", got)
	}
}

func TestFilesToModulesSeparateTestsPackage(t *testing.T) {
	root, modules := tableFixture(t)
	r := newResolver(root, modules)

	// A changed file under the separate tests directory must resolve even
	// though it lives outside the production package's tree.
	got := r.FilesToModules([]string{"tests/test_units.py"})
	if !reflect.DeepEqual(got, []string{"tests.test_units"}) {
		t.Errorf("Expected [tests.test_units], got %v", got)
	}
}

func TestFilesToModulesDerivationFallback(t *testing.T) {
	root, modules := tableFixture(t)
	r := newResolver(root, modules)

	// A path with an unexpected prefix misses the absolute-path table but
	// still derives through the package directory name.
	got := r.FilesToModules([]string{"worktree/checkout/tests/test_units.py"})
	if !reflect.DeepEqual(got, []string{"tests.test_units"}) {
		t.Errorf("Expected [tests.test_units] via derivation, got %v", got)
	}
}

func TestFilesToModulesInitCollapse(t *testing.T) {
	root, modules := tableFixture(t)
	r := newResolver(root, modules)

	got := r.FilesToModules([]string{"mypkg/__init__.py"})
	if !reflect.DeepEqual(got, []string{"mypkg"}) {
		t.Errorf("__init__.py should collapse to the package name, got %v", got)
	}
}

func TestFilesToModulesSkipsNonPython(t *testing.T) {
	root, modules := tableFixture(t)
	r := newResolver(root, modules)

	got := r.FilesToModules([]string{"README.md", "mypkg/data.json", "setup.cfg"})
	if len(got) != 0 {
		t.Errorf("Non-python files must be skipped, got %v", got)
	}
}

func TestFilesToModulesSkipsUnknown(t *testing.T) {
	root, modules := tableFixture(t)
	r := newResolver(root, modules)

	got := r.FilesToModules([]string{"otherpkg/mod.py", "mypkg/not_discovered.py"})
	if len(got) != 0 {
		t.Errorf("Files outside the discovery table must be skipped, got %v", got)
	}
}

func TestModulesToFiles(t *testing.T) {
	root, modules := tableFixture(t)
	r := newResolver(root, modules)

	got := r.ModulesToFiles([]string{"mypkg.core", "mypkg.nosuch"})
	if !reflect.DeepEqual(got, []string{modules["mypkg.core"]}) {
		t.Errorf("Expected the known module path only, got %v", got)
	}
}

func TestPathOf(t *testing.T) {
	root, modules := tableFixture(t)
	r := newResolver(root, modules)

	if path, ok := r.PathOf("tests.test_units"); !ok || path != modules["tests.test_units"] {
		t.Errorf("Expected %q, got %q (ok=%v)", modules["tests.test_units"], path, ok)
	}
	if _, ok := r.PathOf("mypkg.nosuch"); ok {
		t.Error("Unknown module must not resolve to a path")
	}
}
