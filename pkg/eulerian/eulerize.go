package eulerian

import (
	"errors"
	"sort"

	"wasteroute/pkg/graph"
)

// ErrNotEulerizable is returned when degree balance cannot be restored by
// the imbalance fallback (§4.5) — only reachable if the Bidirectional
// Pairing invariant (§3) is relaxed upstream, since the builder's own
// output is always balanced by construction.
var ErrNotEulerizable = errors.New("eulerian: graph cannot be made Eulerian")

// Eulerize verifies that g's in-/out-degrees already balance (the normal
// case, guaranteed by Bidirectional Pairing) and, if not, augments g in
// place by duplicating edges along shortest paths between deficit sources
// and sinks until they do. Returns ErrNotEulerizable if balance cannot be
// restored.
func Eulerize(g *graph.Graph) error {
	inDeg, outDeg := g.Degrees()

	var sources, sinks []uint32 // one entry per unit of deficit
	for u := 0; u < g.NumNodes(); u++ {
		deficit := int64(outDeg[u]) - int64(inDeg[u])
		for deficit > 0 {
			sources = append(sources, uint32(u))
			deficit--
		}
		for deficit < 0 {
			sinks = append(sinks, uint32(u))
			deficit++
		}
	}

	if len(sources) == 0 && len(sinks) == 0 {
		return nil // already Eulerian; the common case
	}

	// Sources are processed in ascending node-index order for determinism.
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	sinkRemaining := make(map[uint32]int, len(sinks))
	for _, s := range sinks {
		sinkRemaining[s]++
	}
	var sinkNodes []uint32
	for s := range sinkRemaining {
		sinkNodes = append(sinkNodes, s)
	}
	sort.Slice(sinkNodes, func(i, j int) bool { return sinkNodes[i] < sinkNodes[j] })

	for _, src := range sources {
		dst, path, ok := nearestAvailableSink(g, src, sinkRemaining, sinkNodes)
		if !ok {
			return ErrNotEulerizable
		}
		duplicatePath(g, path)
		sinkRemaining[dst]--
		if sinkRemaining[dst] == 0 {
			delete(sinkRemaining, dst)
		}
	}

	inDeg, outDeg = g.Degrees()
	for i := range inDeg {
		if inDeg[i] != outDeg[i] {
			return ErrNotEulerizable
		}
	}
	return nil
}

// nearestAvailableSink runs one Dijkstra from src and returns the closest
// node still carrying unmatched sink deficit, scanning candidates in
// ascending node-index order so ties break deterministically.
func nearestAvailableSink(g *graph.Graph, src uint32, remaining map[uint32]int, candidates []uint32) (dst uint32, path []uint32, ok bool) {
	n := g.NumNodes()
	dist := make([]float64, n)
	pred := make([]int64, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = posInf
		pred[i] = -1
	}
	dist[src] = 0

	pq := &minHeap{items: make([]pqItem, 0, 64)}
	pq.Push(src, 0)
	for pq.Len() > 0 {
		cur := pq.Pop()
		u := cur.node
		if visited[u] {
			continue
		}
		visited[u] = true
		for _, key := range g.OutAdj[u] {
			e := g.Edges[key]
			nd := dist[u] + e.Length
			if nd < dist[e.To] {
				dist[e.To] = nd
				pred[e.To] = int64(u)
				pq.Push(e.To, nd)
			}
		}
	}

	bestDist := posInf
	bestNode := uint32(0)
	found := false
	for _, c := range candidates {
		if remaining[c] <= 0 {
			continue
		}
		if dist[c] < bestDist {
			bestDist = dist[c]
			bestNode = c
			found = true
		}
	}
	if !found || bestDist >= posInf {
		return 0, nil, false
	}

	var rev []uint32
	for v := int64(bestNode); v != -1; v = pred[v] {
		rev = append(rev, uint32(v))
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return bestNode, rev, true
}

const posInf = 1e18

// duplicatePath adds one new edge mirroring each consecutive pair along
// path, reusing the length of an existing edge between that pair (no new
// geometry is invented, per §4.5). Ties among parallel existing edges are
// broken by smallest key.
func duplicatePath(g *graph.Graph, path []uint32) {
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		var length float64
		found := false
		var bestKey uint32
		for _, key := range g.OutAdj[u] {
			e := g.Edges[key]
			if e.To == v && (!found || key < bestKey) {
				length = e.Length
				bestKey = key
				found = true
			}
		}
		g.AddEdge(u, v, length)
	}
}
