package graph

import "github.com/paulmach/osm"

// UnionFind implements a disjoint-set data structure with path halving and
// union by rank, used to find weakly connected components (§4.4): the
// directed graph is treated as undirected for this purpose only.
type UnionFind struct {
	parent []uint32
	rank   []byte // byte is sufficient — max rank ~30 for realistic graphs
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := range n {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

// Find returns the representative of the set containing x, with path halving.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// ComponentStats reports what component selection discarded, for the text
// report's disclosure requirement (§6/§7).
type ComponentStats struct {
	TotalComponents     int
	KeptComponentSize   int
	DiscardedNodes      int
	DiscardedComponents int
}

// LargestComponent returns the node indices belonging to the largest weakly
// connected component, and selection statistics. Ties on component size are
// broken deterministically by the smallest original OSM node id appearing
// in the component (§4.4) — never by internal index or map iteration order,
// both of which are undefined across runs/platforms.
func LargestComponent(g *Graph) ([]uint32, ComponentStats) {
	n := g.NumNodes()
	if n == 0 {
		return nil, ComponentStats{}
	}

	uf := NewUnionFind(uint32(n))
	for _, e := range g.Edges {
		uf.Union(e.From, e.To)
	}

	// minNodeID[root] is the smallest NodeIDs[i] seen so far among nodes
	// whose representative is root; rootOfIdx[i] caches node i's Find result
	// so we walk every node index exactly once below, in deterministic index
	// order (never ranging over a map).
	minNodeID := make(map[uint32]int64, n)
	rootOfIdx := make([]uint32, n)
	for i := 0; i < n; i++ {
		root := uf.Find(uint32(i))
		rootOfIdx[i] = root
		id := int64(g.NodeIDs[i])
		if cur, ok := minNodeID[root]; !ok || id < cur {
			minNodeID[root] = id
		}
	}

	var bestRoot uint32
	var bestSize uint32
	bestMinID := int64(1)<<63 - 1
	seenRoot := false
	totalComponents := 0
	rootSeen := make(map[uint32]bool, n)
	for i := 0; i < n; i++ {
		root := rootOfIdx[i]
		if rootSeen[root] {
			continue
		}
		rootSeen[root] = true
		totalComponents++

		size := uf.size[root]
		minID := minNodeID[root]
		better := !seenRoot ||
			size > bestSize ||
			(size == bestSize && minID < bestMinID)
		if better {
			bestRoot = root
			bestSize = size
			bestMinID = minID
			seenRoot = true
		}
	}

	kept := make([]uint32, 0, bestSize)
	for i := 0; i < n; i++ {
		if rootOfIdx[i] == bestRoot {
			kept = append(kept, uint32(i))
		}
	}

	stats := ComponentStats{
		TotalComponents:     totalComponents,
		KeptComponentSize:   len(kept),
		DiscardedNodes:      n - len(kept),
		DiscardedComponents: totalComponents - 1,
	}
	return kept, stats
}

// FilterToComponent creates a new graph containing only the given node
// indices and the edges fully within them. Node indices are renumbered in
// the order `nodes` is given (already deterministic, since LargestComponent
// walks indices in ascending order).
func FilterToComponent(g *Graph, nodes []uint32) *Graph {
	if len(nodes) == 0 {
		return &Graph{}
	}

	oldToNew := make(map[uint32]uint32, len(nodes))
	for newIdx, oldIdx := range nodes {
		oldToNew[oldIdx] = uint32(newIdx)
	}

	out := &Graph{
		NodeIDs: make([]osm.NodeID, len(nodes)),
		NodeLat: make([]float64, len(nodes)),
		NodeLon: make([]float64, len(nodes)),
		OutAdj:  make([][]uint32, len(nodes)),
	}
	for newIdx, oldIdx := range nodes {
		out.NodeIDs[newIdx] = g.NodeIDs[oldIdx]
		out.NodeLat[newIdx] = g.NodeLat[oldIdx]
		out.NodeLon[newIdx] = g.NodeLon[oldIdx]
	}

	for _, oldU := range nodes {
		for _, key := range g.OutAdj[oldU] {
			e := g.Edges[key]
			newV, ok := oldToNew[e.To]
			if !ok {
				continue // edge leaves the component, dropped
			}
			out.AddEdge(oldToNew[oldU], newV, e.Length)
		}
	}

	return out
}
