package graph

import (
	"sort"

	"impacted/internal/shared/observability"
	"impacted/internal/shared/util"
)

// Graph is a directed graph over dotted module names. After Build it holds
// the affects orientation: an edge X -> Y means a change to X may affect Y
// (Y imports X, directly).
type Graph struct {
	nodes map[string]bool
	edges map[string]map[string]bool
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]bool),
		edges: make(map[string]map[string]bool),
	}
}

func (g *Graph) AddNode(name string) {
	g.nodes[name] = true
}

func (g *Graph) AddEdge(from, to string) {
	g.nodes[from] = true
	g.nodes[to] = true
	if g.edges[from] == nil {
		g.edges[from] = make(map[string]bool)
	}
	g.edges[from][to] = true
}

func (g *Graph) HasNode(name string) bool {
	return g.nodes[name]
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	count := 0
	for _, targets := range g.edges {
		count += len(targets)
	}
	return count
}

// Nodes returns all node names in sorted order.
func (g *Graph) Nodes() []string {
	return util.SortedStringKeys(g.nodes)
}

// Successors returns the targets of name's outgoing edges in sorted order.
func (g *Graph) Successors(name string) []string {
	return util.SortedStringKeys(g.edges[name])
}

// TestModules returns every test-classified node in sorted order.
func (g *Graph) TestModules() []string {
	out := make([]string, 0)
	for node := range g.nodes {
		if IsTestModule(node) {
			out = append(out, node)
		}
	}
	sort.Strings(out)
	return out
}

// Prune removes nodes with neither incoming nor outgoing edges. Orphans can
// neither be impacted nor impact anything through the graph; this mostly
// strips package marker files nothing depends on.
func (g *Graph) Prune() {
	inDegree := make(map[string]int, len(g.nodes))
	for _, targets := range g.edges {
		for to := range targets {
			inDegree[to]++
		}
	}
	for node := range g.nodes {
		if inDegree[node] == 0 && len(g.edges[node]) == 0 {
			delete(g.nodes, node)
		}
	}
}

// Inverted returns a new graph with every edge reversed.
func (g *Graph) Inverted() *Graph {
	inv := New()
	for node := range g.nodes {
		inv.AddNode(node)
	}
	for from, targets := range g.edges {
		for to := range targets {
			inv.AddEdge(to, from)
		}
	}
	return inv
}

func (g *Graph) publishMetrics() {
	observability.GraphNodes.Set(float64(g.NodeCount()))
	observability.GraphEdges.Set(float64(g.EdgeCount()))
}
