package graph

import (
	"log/slog"
	"sort"

	"impacted/internal/shared/observability"
)

// ResolveImpacted maps changed modules to the sorted set of test modules
// that must re-run, walking affects edges depth-first from each changed
// module.
//
// Changed modules absent from the graph get an explicit policy: a test
// module is included directly (it changed, so it runs), while a production
// module with unknown blast radius conservatively selects every known test
// module. Missing dependency information must never under-select tests.
func ResolveImpacted(changed []string, affects *Graph) []string {
	impacted := make(map[string]bool)

	for _, module := range changed {
		if !affects.HasNode(module) {
			observability.DanglingModulesTotal.Inc()
			slog.Warn("changed module not found in dependency graph, likely pruned as a dangling node",
				"module", module)

			if IsTestModule(module) {
				impacted[module] = true
				continue
			}

			slog.Warn("production module missing from dependency graph, conservatively marking all test modules as impacted",
				"module", module)
			observability.ConservativeFallbacksTotal.Inc()
			for _, test := range affects.TestModules() {
				impacted[test] = true
			}
			continue
		}

		for _, node := range dfsPreorder(affects, module) {
			if IsTestModule(node) {
				impacted[node] = true
			}
		}
	}

	out := make([]string, 0, len(impacted))
	for name := range impacted {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// dfsPreorder visits every node reachable from start following directed
// edges, each node once. Import cycles are safe: the visited set terminates
// the walk.
func dfsPreorder(g *Graph, start string) []string {
	visited := map[string]bool{start: true}
	order := []string{start}
	stack := []string{start}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		// Reverse-sorted push keeps the visit order deterministic.
		succ := g.Successors(node)
		for i := len(succ) - 1; i >= 0; i-- {
			next := succ[i]
			if visited[next] {
				continue
			}
			visited[next] = true
			order = append(order, next)
			stack = append(stack, next)
		}
	}
	return order
}
