package strategy

import (
	"log/slog"
	"path/filepath"
	"strings"

	"impacted/internal/discover"
	"impacted/internal/graph"
	"impacted/internal/shared/util"
)

// FixtureStrategy covers shared test fixture files such as conftest.py.
// Fixtures apply to every test beneath their directory, yet are rarely
// imported explicitly, so the import graph cannot see the relationship.
// Containment is decided by path prefix relative to the project root, not by
// graph edges.
type FixtureStrategy struct {
	discoverer   *discover.Discoverer
	fixtureNames []string
}

func NewFixtureStrategy(discoverer *discover.Discoverer, fixtureNames []string) *FixtureStrategy {
	return &FixtureStrategy{discoverer: discoverer, fixtureNames: fixtureNames}
}

func (s *FixtureStrategy) FindImpactedTests(in Inputs) ([]string, error) {
	var fixtureDirs []string
	for _, file := range in.ChangedFiles {
		if !s.isFixture(file) {
			continue
		}
		dir := filepath.Dir(s.absolute(in.RootDir, file))
		slog.Debug("changed fixture file affects its whole subtree", "path", file, "dir", dir)
		fixtureDirs = append(fixtureDirs, dir)
	}
	if len(fixtureDirs) == 0 {
		return nil, nil
	}

	modules := s.discoverer.Discover(in.Package)
	if in.TestsPackage != "" {
		for name, path := range s.discoverer.Discover(in.TestsPackage) {
			modules[name] = path
		}
	}

	var impacted []string
	for name, path := range modules {
		if !graph.IsTestModule(name) {
			continue
		}
		for _, dir := range fixtureDirs {
			if within(dir, path) {
				impacted = append(impacted, name)
				break
			}
		}
	}
	return util.SortedUnique(impacted), nil
}

func (s *FixtureStrategy) isFixture(file string) bool {
	base := filepath.Base(file)
	for _, name := range s.fixtureNames {
		if base == name {
			return true
		}
	}
	return false
}

func (s *FixtureStrategy) absolute(root, file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	abs, err := filepath.Abs(filepath.Join(root, file))
	if err != nil {
		return filepath.Clean(filepath.Join(root, file))
	}
	return abs
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
