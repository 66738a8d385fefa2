package strategy

import (
	"impacted/internal/graph"
)

// GraphStrategy finds impacted tests through reverse reachability on the
// statically built affects graph.
type GraphStrategy struct {
	builder *graph.Builder
}

func NewGraphStrategy(builder *graph.Builder) *GraphStrategy {
	return &GraphStrategy{builder: builder}
}

func (s *GraphStrategy) FindImpactedTests(in Inputs) ([]string, error) {
	affects, err := s.builder.Build(in.Package, in.TestsPackage)
	if err != nil {
		return nil, err
	}
	return graph.ResolveImpacted(in.ChangedModules, affects), nil
}
