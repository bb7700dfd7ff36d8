// Package network builds weighted, undirected deputy graphs from enriched rows.
package network

import (
	"cmp"
	"slices"
)

// Node is a deputy.
type Node struct {
	ID      int    `json:"id"`
	Nome    string `json:"nome"`
	Partido string `json:"partido"`
	UF      string `json:"uf"`
}

// Edge links two deputies. Source is always the smaller id.
type Edge struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Weight int `json:"weight"`
}

type pair struct{ a, b int }

func key(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// Graph is an undirected graph with integer edge weights.
type Graph struct {
	nodes   map[int]Node
	weights map[pair]int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:   make(map[int]Node),
		weights: make(map[pair]int),
	}
}

// AddNode adds n unless a node with the same id exists.
func (g *Graph) AddNode(n Node) {
	if _, ok := g.nodes[n.ID]; !ok {
		g.nodes[n.ID] = n
	}
}

// AddWeight adds delta to the edge between a and b, creating it at zero first.
// Self loops are ignored.
func (g *Graph) AddWeight(a, b, delta int) {
	if a == b {
		return
	}
	g.weights[key(a, b)] += delta
}

// Weight returns the weight of the edge between a and b.
func (g *Graph) Weight(a, b int) (int, bool) {
	w, ok := g.weights[key(a, b)]
	return w, ok
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of weighted edges.
func (g *Graph) EdgeCount() int { return len(g.weights) }

// Nodes returns every node sorted by id.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(x, y Node) int { return cmp.Compare(x.ID, y.ID) })
	return nodes
}

// Edges returns every edge sorted by endpoints.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.weights))
	for p, w := range g.weights {
		edges = append(edges, Edge{Source: p.a, Target: p.b, Weight: w})
	}
	slices.SortFunc(edges, compareEndpoints)
	return edges
}

// SortedEdges returns every edge in ascending weight, ties broken by endpoints.
func (g *Graph) SortedEdges() []Edge {
	edges := g.Edges()
	slices.SortStableFunc(edges, func(x, y Edge) int { return cmp.Compare(x.Weight, y.Weight) })
	return edges
}

// Neighbors returns the edges touching id, sorted by endpoints.
func (g *Graph) Neighbors(id int) []Edge {
	var edges []Edge
	for _, e := range g.Edges() {
		if e.Source == id || e.Target == id {
			edges = append(edges, e)
		}
	}
	return edges
}

func compareEndpoints(x, y Edge) int {
	if c := cmp.Compare(x.Source, y.Source); c != 0 {
		return c
	}
	return cmp.Compare(x.Target, y.Target)
}
