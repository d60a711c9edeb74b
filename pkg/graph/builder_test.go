package graph

import (
	"testing"

	"github.com/paulmach/osm"
)

func wayOf(ids ...osm.NodeID) *osm.Way {
	w := &osm.Way{}
	for _, id := range ids {
		w.Nodes = append(w.Nodes, osm.WayNode{ID: id})
	}
	return w
}

func nodeAt(id osm.NodeID, lat, lon float64) *osm.Node {
	return &osm.Node{ID: id, Lat: lat, Lon: lon}
}

func TestBuildTriangleBidirectional(t *testing.T) {
	nodes := map[osm.NodeID]*osm.Node{
		100: nodeAt(100, 1.0, 103.0),
		200: nodeAt(200, 1.1, 103.0),
		300: nodeAt(300, 1.0, 103.1),
	}
	ways := []*osm.Way{wayOf(100, 200, 300, 100)}

	g, stats := Build(ways, nodes)

	if g.NumNodes() != 3 {
		t.Fatalf("NumNodes = %d, want 3", g.NumNodes())
	}
	if stats.AcceptedSegments != 3 {
		t.Fatalf("AcceptedSegments = %d, want 3", stats.AcceptedSegments)
	}
	if g.NumEdges() != 6 {
		t.Fatalf("NumEdges = %d, want 6 (bidirectional pairing)", g.NumEdges())
	}

	// Every node has exactly 2 outgoing edges: one from the way's forward
	// traversal, one from its paired reverse.
	for u := uint32(0); u < uint32(g.NumNodes()); u++ {
		if g.OutDegree(u) != 2 {
			t.Errorf("node %d out-degree = %d, want 2", u, g.OutDegree(u))
		}
	}

	inDeg, outDeg := g.Degrees()
	for i := range inDeg {
		if inDeg[i] != outDeg[i] {
			t.Errorf("node %d: inDeg=%d outDeg=%d, want equal (Eulerian balance)", i, inDeg[i], outDeg[i])
		}
	}
}

func TestBuildEmptyWayList(t *testing.T) {
	g, stats := Build(nil, map[osm.NodeID]*osm.Node{})

	if g.NumNodes() != 0 {
		t.Errorf("NumNodes = %d, want 0", g.NumNodes())
	}
	if g.NumEdges() != 0 {
		t.Errorf("NumEdges = %d, want 0", g.NumEdges())
	}
	if stats.AcceptedSegments != 0 || stats.DirectedEdges != 0 {
		t.Errorf("stats = %+v, want zero value", stats)
	}
}

func TestBuildSkipsSelfLoopSegments(t *testing.T) {
	nodes := map[osm.NodeID]*osm.Node{
		1: nodeAt(1, 1.0, 103.0),
		2: nodeAt(2, 1.1, 103.0),
	}
	// A degenerate way repeating a node consecutively contributes no
	// segment for that repeated pair.
	ways := []*osm.Way{wayOf(1, 1, 2)}

	g, stats := Build(ways, nodes)

	if stats.AcceptedSegments != 1 {
		t.Fatalf("AcceptedSegments = %d, want 1 (1->1 skipped)", stats.AcceptedSegments)
	}
	if g.NumEdges() != 2 {
		t.Fatalf("NumEdges = %d, want 2", g.NumEdges())
	}
}

func TestBuildStarShape(t *testing.T) {
	nodes := map[osm.NodeID]*osm.Node{
		10: nodeAt(10, 1.0, 103.0),
		20: nodeAt(20, 1.1, 103.0),
		30: nodeAt(30, 1.2, 103.0),
		40: nodeAt(40, 1.3, 103.0),
	}
	ways := []*osm.Way{
		wayOf(10, 20),
		wayOf(10, 30),
		wayOf(10, 40),
	}

	g, stats := Build(ways, nodes)

	if g.NumNodes() != 4 {
		t.Fatalf("NumNodes = %d, want 4", g.NumNodes())
	}
	if stats.AcceptedSegments != 3 {
		t.Fatalf("AcceptedSegments = %d, want 3", stats.AcceptedSegments)
	}

	center := uint32(0) // first node seen, per first-seen index assignment
	if g.OutDegree(center) != 3 {
		t.Errorf("center out-degree = %d, want 3", g.OutDegree(center))
	}
	for u := uint32(1); u < uint32(g.NumNodes()); u++ {
		if g.OutDegree(u) != 1 {
			t.Errorf("leaf %d out-degree = %d, want 1", u, g.OutDegree(u))
		}
	}
}

func TestBuildDeterministicNodeIndexing(t *testing.T) {
	nodes := map[osm.NodeID]*osm.Node{
		5: nodeAt(5, 1.0, 103.0),
		6: nodeAt(6, 1.1, 103.0),
	}
	ways := []*osm.Way{wayOf(5, 6)}

	g1, _ := Build(ways, nodes)
	g2, _ := Build(ways, nodes)

	for i := range g1.NodeIDs {
		if g1.NodeIDs[i] != g2.NodeIDs[i] {
			t.Fatalf("node index assignment not deterministic at %d: %d vs %d", i, g1.NodeIDs[i], g2.NodeIDs[i])
		}
	}
}
