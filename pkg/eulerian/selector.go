package eulerian

import (
	"wasteroute/pkg/geo"
	"wasteroute/pkg/graph"
)

// Selector chooses which unused outgoing edge Hierholzer should take next
// from the current node (Design Notes §9: "a small interface... to allow
// swapping strategies"). Extract takes a Selector and calls Select through
// this interface on every step; it is not specialized to the concrete
// *TurnSelector below.
type Selector interface {
	// Select picks one of candidates (unused outgoing edge ids from node
	// u) and returns its index into candidates. prevEdge is the edge just
	// traversed to reach u, or nil if u is the circuit's start node.
	Select(g *graph.Graph, u uint32, prevEdge *graph.Edge, candidates []uint32) int
}

// TurnSelector implements the §4.6 right-turn-preferring scoring: minimize
// turn-cost-multiplier × edge length, tie-broken by smaller target node id
// then smaller edge key.
type TurnSelector struct {
	Multipliers       geo.TurnMultipliers
	StraightThreshold float64
	UTurnThreshold    float64
}

// NewTurnSelector returns a TurnSelector configured with the given
// multipliers and straight/u-turn thresholds.
func NewTurnSelector(mult geo.TurnMultipliers, straightThreshold, uTurnThreshold float64) *TurnSelector {
	return &TurnSelector{
		Multipliers:       mult,
		StraightThreshold: straightThreshold,
		UTurnThreshold:    uTurnThreshold,
	}
}

// Select implements Selector.
func (s *TurnSelector) Select(g *graph.Graph, u uint32, prevEdge *graph.Edge, candidates []uint32) int {
	best := 0
	bestScore := s.score(g, u, prevEdge, candidates[0])

	for i := 1; i < len(candidates); i++ {
		score := s.score(g, u, prevEdge, candidates[i])
		if better(g, score, g.Edges[candidates[i]], bestScore, g.Edges[candidates[best]]) {
			best = i
			bestScore = score
		}
	}
	return best
}

// score implements §4.6's per-candidate scoring rule.
func (s *TurnSelector) score(g *graph.Graph, u uint32, prevEdge *graph.Edge, candidateKey uint32) float64 {
	e := g.Edges[candidateKey]
	length := e.Length

	if prevEdge == nil {
		return length // first edge out of the start node: no turn context
	}
	p := prevEdge.From
	if p == u || e.To == u {
		// Defensive: a zero-length incoming edge or a self-loop candidate,
		// neither of which the builder ever produces.
		return length
	}

	bIn := geo.Bearing(g.NodeLat[p], g.NodeLon[p], g.NodeLat[u], g.NodeLon[u])
	bOut := geo.Bearing(g.NodeLat[u], g.NodeLon[u], g.NodeLat[e.To], g.NodeLon[e.To])
	theta := geo.TurnAngle(bIn, bOut)
	m := geo.TurnCost(theta, s.StraightThreshold, s.UTurnThreshold, s.Multipliers)
	return m * length
}

// better reports whether (score a, edge a) should be preferred over
// (score b, edge b) per §4.6's tie-break: lower score first, then smaller
// target node id (the OSM id in g.NodeIDs), then smaller edge key.
func better(g *graph.Graph, scoreA float64, a graph.Edge, scoreB float64, b graph.Edge) bool {
	if scoreA != scoreB {
		return scoreA < scoreB
	}
	if idA, idB := g.NodeIDs[a.To], g.NodeIDs[b.To]; idA != idB {
		return idA < idB
	}
	return a.Key < b.Key
}
