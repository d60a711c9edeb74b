// Package locate answers "was this street serviced?" queries against a
// finished circuit: given a query point, find the nearest edge in the
// routed graph and how far away it is. This is a post-route convenience,
// not part of the routing engine's own contract (§6) — it runs once, after
// Generate returns, over the same Graph the engine already built.
//
// Grounded on the teacher's pkg/routing/snap.go Snapper (same nearest-edge,
// max-distance, ratio-along-segment result shape) but indexed with
// github.com/tidwall/rtree instead of a hand-rolled grid: the teacher
// declares rtree as a direct dependency in its own go.mod but never
// imports it anywhere (Snapper uses a flat sorted-grid index instead).
// This package gives that dependency a real job.
package locate

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"

	"wasteroute/pkg/geo"
	"wasteroute/pkg/graph"
)

// maxDistMeters bounds how far a query point may be from the nearest edge
// before it's considered unserviced, mirroring the teacher's own
// maxSnapDistMeters threshold.
const maxDistMeters = 500.0

// ErrTooFar is returned when the nearest edge is farther than maxDistMeters
// from the query point.
var ErrTooFar = errors.New("locate: no serviced edge within range")

// Nearest describes the edge closest to a query point.
type Nearest struct {
	EdgeKey  uint32  // g.Edges[EdgeKey] is the matched edge
	From, To uint32  // the matched edge's endpoints (node indices)
	Dist     float64 // meters from the query point to the matched segment
	Ratio    float64 // 0 = at From, 1 = at To
}

// Index is an rtree-backed nearest-edge lookup over one Graph's edges,
// built once after routing completes.
type Index struct {
	tree *rtree.RTreeG[uint32]
	g    *graph.Graph
}

// NewIndex bulk-loads every edge of g into a fresh spatial index, keyed by
// each edge's bounding box (its two endpoints; edges here are straight
// great-circle chords, no intermediate geometry).
func NewIndex(g *graph.Graph) *Index {
	tree := &rtree.RTreeG[uint32]{}
	for key := range g.Edges {
		e := g.Edges[key]
		min, max := edgeBounds(g, e)
		tree.Insert(min, max, uint32(key))
	}
	return &Index{tree: tree, g: g}
}

// edgeBounds returns the (min, max) corner of e's bounding box in
// (lon, lat) order, matching rtree's 2D point convention.
func edgeBounds(g *graph.Graph, e graph.Edge) (min, max [2]float64) {
	uLat, uLon := g.NodeLat[e.From], g.NodeLon[e.From]
	vLat, vLon := g.NodeLat[e.To], g.NodeLon[e.To]
	min = [2]float64{math.Min(uLon, vLon), math.Min(uLat, vLat)}
	max = [2]float64{math.Max(uLon, vLon), math.Max(uLat, vLat)}
	return min, max
}

// degreePad converts maxDistMeters into a generous (2x) degree padding of
// latitude for the index query window; 1 degree of latitude is ~111km.
// Nearest widens the longitude padding by 1/cos(lat), since a degree of
// longitude shrinks toward the poles.
const degreePad = maxDistMeters / 111_000.0 * 2

// Nearest finds the edge in idx closest to (lat, lon). Returns ErrTooFar if
// nothing is within maxDistMeters.
func (idx *Index) Nearest(lat, lon float64) (Nearest, error) {
	lonPad := degreePad / math.Max(math.Cos(lat*math.Pi/180), 0.01)
	queryMin := [2]float64{lon - lonPad, lat - degreePad}
	queryMax := [2]float64{lon + lonPad, lat + degreePad}

	bestDist := math.Inf(1)
	var best Nearest
	found := false

	idx.tree.Search(queryMin, queryMax, func(_, _ [2]float64, edgeKey uint32) bool {
		e := idx.g.Edges[edgeKey]
		uLat, uLon := idx.g.NodeLat[e.From], idx.g.NodeLon[e.From]
		vLat, vLon := idx.g.NodeLat[e.To], idx.g.NodeLon[e.To]

		// Cheap pre-filter: by the triangle inequality every point X on the
		// edge has |PX| >= (|PU| + |PV| - |UV|) / 2, so an edge can't beat
		// bestDist if that bound, measured with the fast equirectangular
		// approximation, already reaches it. Skips the full projection math
		// below for most rtree hits once an early candidate has set a tight
		// bound.
		bound := (geo.EquirectangularDist(lat, lon, uLat, uLon) +
			geo.EquirectangularDist(lat, lon, vLat, vLon) -
			geo.EquirectangularDist(uLat, uLon, vLat, vLon)) / 2
		if bound >= bestDist {
			return true
		}

		dist, ratio := geo.PointToSegmentDist(lat, lon, uLat, uLon, vLat, vLon)
		if dist < bestDist {
			bestDist = dist
			best = Nearest{EdgeKey: edgeKey, From: e.From, To: e.To, Dist: dist, Ratio: ratio}
			found = true
		}
		return true // keep scanning; rtree doesn't order results by distance
	})

	if !found || bestDist > maxDistMeters {
		return Nearest{}, ErrTooFar
	}
	return best, nil
}

// Serviced reports whether (lat, lon) lies within maxDistMeters of some
// edge in the routed circuit — i.e. whether that point's street was
// covered by the generated route.
func (idx *Index) Serviced(lat, lon float64) bool {
	_, err := idx.Nearest(lat, lon)
	return err == nil
}
