package graph

import (
	"log/slog"
	"time"

	"impacted/internal/discover"
	"impacted/internal/parser"
	"impacted/internal/shared/observability"
)

// Builder combines module discovery and import extraction into the affects
// graph used for impact queries.
type Builder struct {
	discoverer *discover.Discoverer
	parser     *parser.Parser
}

func NewBuilder(discoverer *discover.Discoverer, p *parser.Parser) *Builder {
	return &Builder{discoverer: discoverer, parser: p}
}

// Build discovers every module under packageName (and testsPackage, when
// given), extracts each module's imports and returns the pruned, inverted
// dependency graph. Only edges between discovered modules are kept: stdlib
// and third-party imports cannot be test-affecting in-repo.
func (b *Builder) Build(packageName, testsPackage string) (*Graph, error) {
	start := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("build_graph").Observe(time.Since(start).Seconds())
	}()

	modules := b.discoverer.Discover(packageName)
	if testsPackage != "" {
		slog.Debug("adding modules from tests package", "package", testsPackage)
		for name, path := range b.discoverer.Discover(testsPackage) {
			modules[name] = path
		}
	}
	slog.Debug("building dependency graph", "modules", len(modules))

	extractor := parser.NewImportExtractor(b.parser, func(name string) bool {
		_, ok := modules[name]
		return ok
	})

	imports := New()
	for name, path := range modules {
		imports.AddNode(name)

		isPackage := discover.IsPackagePath(path)
		imported, err := extractor.ExtractImports(path, name, isPackage)
		if err != nil {
			return nil, err
		}
		for imp := range imported {
			// Only imports that are themselves discovered modules matter.
			if _, ok := modules[imp]; ok {
				imports.AddEdge(name, imp)
			}
		}
	}

	imports.Prune()

	// The affects orientation is the reverse of the import orientation.
	affects := imports.Inverted()
	affects.publishMetrics()
	return affects, nil
}
