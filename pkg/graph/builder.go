// Build assembles the directed multigraph from filtered ways, enforcing the
// Bidirectional Pairing invariant (§3): every accepted two-node segment
// yields both a u->v and a v->u edge, regardless of any oneway tag.
package graph

import (
	"github.com/paulmach/osm"

	"wasteroute/pkg/geo"
)

// BuildStats reports what the build pass did, for the text report.
type BuildStats struct {
	AcceptedSegments int
	DirectedEdges    int
}

// Build constructs a Graph from ways that have already passed
// pkg/osmfilter.Driveable, plus the node table those ways reference. Node
// indices are assigned in first-seen order, walking ways then their node
// lists in order, so the resulting index space is deterministic given a
// deterministic input order.
//
// Consecutive-duplicate nodes within a way (u == v) are skipped: they
// contribute no segment, matching §4.3's no-self-loops rule.
func Build(ways []*osm.Way, nodes map[osm.NodeID]*osm.Node) (*Graph, BuildStats) {
	g := &Graph{}
	index := make(map[osm.NodeID]uint32)

	addNode := func(id osm.NodeID) uint32 {
		if idx, ok := index[id]; ok {
			return idx
		}
		idx := uint32(len(g.NodeIDs))
		index[id] = idx
		rec := nodes[id]
		g.NodeIDs = append(g.NodeIDs, id)
		g.NodeLat = append(g.NodeLat, rec.Lat)
		g.NodeLon = append(g.NodeLon, rec.Lon)
		g.OutAdj = append(g.OutAdj, nil)
		return idx
	}

	var stats BuildStats

	for _, w := range ways {
		for i := 0; i+1 < len(w.Nodes); i++ {
			fromID := w.Nodes[i].ID
			toID := w.Nodes[i+1].ID
			if fromID == toID {
				continue
			}

			u := addNode(fromID)
			v := addNode(toID)

			length := geo.Haversine(g.NodeLat[u], g.NodeLon[u], g.NodeLat[v], g.NodeLon[v])

			g.AddEdge(u, v, length)
			g.AddEdge(v, u, length)

			stats.AcceptedSegments++
			stats.DirectedEdges += 2
		}
	}

	return g, stats
}
