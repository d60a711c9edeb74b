// Package graph implements the §3 directed multigraph: a dense edge arena
// with stable indices plus per-node adjacency lists of edge indices (Design
// Notes §9 — "Arena + indices, not cyclic references"). Nodes hold no edge
// references; edges hold node indices. Component filtering builds a new
// Graph; Eulerization appends duplicate edges to the arena and adjacency in
// place via AddEdge.
package graph

import "github.com/paulmach/osm"

// Edge is a directed edge (u, v) with its great-circle length. Key
// disambiguates parallel edges between the same ordered pair (§3); the
// edge's own arena index already is a total order, so Key just mirrors it
// for callers that want an explicit field instead of a slice index.
type Edge struct {
	From, To uint32
	Length   float64
	Key      uint32
}

// Graph is a directed multigraph over a dense node index space [0, N).
// Self-loops are never present (the builder rejects u==v segments).
type Graph struct {
	// NodeIDs[i] is the original OSM node id for internal index i.
	NodeIDs []osm.NodeID
	NodeLat []float64
	NodeLon []float64

	// Edges is the edge arena; an edge's position in this slice is its
	// stable id, used everywhere else (OutAdj, used-bitsets, Key).
	Edges []Edge

	// OutAdj[u] lists the edge ids of every edge originating at node u.
	OutAdj [][]uint32
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.NodeIDs) }

// NumEdges returns the number of edges in the graph.
func (g *Graph) NumEdges() int { return len(g.Edges) }

// OutDegree returns the out-degree of node u.
func (g *Graph) OutDegree(u uint32) int { return len(g.OutAdj[u]) }

// Degrees computes the in-degree and out-degree of every node in one pass
// over the edge arena.
func (g *Graph) Degrees() (inDegree, outDegree []uint32) {
	n := g.NumNodes()
	inDegree = make([]uint32, n)
	outDegree = make([]uint32, n)
	for u := range g.OutAdj {
		outDegree[u] = uint32(len(g.OutAdj[u]))
	}
	for _, e := range g.Edges {
		inDegree[e.To]++
	}
	return inDegree, outDegree
}

// AddEdge appends a new directed edge from u to v with the given length and
// returns its arena index (= its Key). Used both during initial
// construction and by the defensive Eulerization augmentation pass.
func (g *Graph) AddEdge(u, v uint32, length float64) uint32 {
	key := uint32(len(g.Edges))
	g.Edges = append(g.Edges, Edge{From: u, To: v, Length: length, Key: key})
	g.OutAdj[u] = append(g.OutAdj[u], key)
	return key
}
