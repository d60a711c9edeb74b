// Package engine orchestrates the §6 programmatic contract: node table +
// way list + config (+ optional start node) in, an ordered waypoint
// sequence + statistics out. Loosely grounded on the teacher's
// pkg/routing/engine.go shape, reduced here to a single entry function
// (Generate, no wrapping struct) with a context.Context parameter threaded
// through even though nothing inside suspends, matching the teacher's own
// belt-and-suspenders ctx.Err() checks.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/paulmach/osm"

	"wasteroute/pkg/eulerian"
	"wasteroute/pkg/graph"
	"wasteroute/pkg/osmfilter"
	"wasteroute/pkg/routeconfig"
)

// Hard failure kinds (§7). All three abort the job with one error and no
// partial output.
var (
	ErrEmptyNetwork = errors.New("engine: kept component has zero edges")
	ErrDisconnected = errors.New("engine: no node in the input has out-degree > 0")
)

// NotEulerizable wraps eulerian.ErrNotEulerizable at the engine boundary so
// callers can errors.Is against either.
var NotEulerizable = eulerian.ErrNotEulerizable

// Waypoint is one coordinate in the output sequence.
type Waypoint struct {
	Lat, Lon float64
}

// Stats is the §6 statistics block.
type Stats struct {
	TotalLengthMeters     float64
	EstimatedDriveTimeSec float64

	RightTurns    int
	LeftTurns     int
	StraightCount int
	UTurns        int

	UniqueSegmentCount  int
	EdgeCount           int
	KeptComponentNodes  int
	DiscardedComponents int
	DiscardedNodeCount  int

	OneWayIgnored bool

	// Soft failures (§7): counted, never fail the job.
	InvalidNodeWays        int
	InvalidCoordinateNodes int
}

// Result is the engine's programmatic output.
type Result struct {
	Waypoints []Waypoint
	Stats     Stats
}

// Generate runs one full job: filter -> build -> select component ->
// eulerize -> extract circuit -> waypoints + statistics. It is
// single-threaded and synchronous (§5): one call allocates its own graph
// and releases it at return; no state crosses calls.
func Generate(ctx context.Context, nodes map[osm.NodeID]*osm.Node, ways []*osm.Way, cfg routeconfig.Config, invalidCoordCount int) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filterCfg := osmfilter.Config{
		AllowedHighways:       toSet(cfg.AllowedHighways),
		ExcludedHighways:      toSet(cfg.ExcludedHighways),
		ExcludedServiceValues: toSet(cfg.ExcludedServiceValues),
		ExcludedAccessValues:  toSet(cfg.ExcludedAccessValues),
	}
	nodeExists := func(id osm.NodeID) bool {
		_, ok := nodes[id]
		return ok
	}

	var filtered []*osm.Way
	var invalidNodeWays int
	for _, w := range ways {
		ok, reason := osmfilter.Driveable(w, filterCfg, nodeExists)
		if ok {
			filtered = append(filtered, w)
		} else if reason == osmfilter.RejectedUnknownNode {
			invalidNodeWays++
		}
	}

	g, buildStats := graph.Build(filtered, nodes)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kept, compStats := graph.LargestComponent(g)
	g = graph.FilterToComponent(g, kept)

	if g.NumEdges() == 0 {
		return nil, ErrEmptyNetwork
	}

	if err := eulerian.Eulerize(g); err != nil {
		return nil, fmt.Errorf("%w: %v", NotEulerizable, err)
	}

	start, ok := selectStartNode(g, cfg.StartNodeID)
	if !ok {
		return nil, ErrDisconnected
	}

	sel := eulerian.NewTurnSelector(cfg.TurnMultipliers, cfg.StraightThresholdDeg, cfg.UTurnThresholdDeg)
	circuit, err := eulerian.Extract(g, start, sel, cfg.StraightThresholdDeg, cfg.UTurnThresholdDeg)
	if err != nil {
		return nil, err
	}

	waypoints := make([]Waypoint, len(circuit.Waypoints))
	var totalLength float64
	for i, idx := range circuit.Waypoints {
		waypoints[i] = Waypoint{Lat: g.NodeLat[idx], Lon: g.NodeLon[idx]}
	}
	for _, key := range circuit.EdgeOrder {
		totalLength += g.Edges[key].Length
	}

	driveTimeSec := totalLength / (cfg.AverageSpeedKMH * 1000 / 3600)

	stats := Stats{
		TotalLengthMeters:      totalLength,
		EstimatedDriveTimeSec:  driveTimeSec,
		RightTurns:             circuit.Stats.Right,
		LeftTurns:              circuit.Stats.Left,
		StraightCount:          circuit.Stats.Straight,
		UTurns:                 circuit.Stats.UTurn,
		UniqueSegmentCount:     buildStats.AcceptedSegments,
		EdgeCount:              g.NumEdges(),
		KeptComponentNodes:     compStats.KeptComponentSize,
		DiscardedComponents:    compStats.DiscardedComponents,
		DiscardedNodeCount:     compStats.DiscardedNodes,
		OneWayIgnored:          true,
		InvalidNodeWays:        invalidNodeWays,
		InvalidCoordinateNodes: invalidCoordCount,
	}

	return &Result{Waypoints: waypoints, Stats: stats}, nil
}

// selectStartNode implements §4.5's start-node selection: the caller's
// override if it's in the component with out-degree > 0, else the
// smallest-id node in the component with out-degree > 0.
func selectStartNode(g *graph.Graph, override *osm.NodeID) (uint32, bool) {
	if override != nil {
		for i, id := range g.NodeIDs {
			if id == *override && g.OutDegree(uint32(i)) > 0 {
				return uint32(i), true
			}
		}
	}

	best := uint32(0)
	bestID := osm.NodeID(1<<63 - 1)
	found := false
	for i := 0; i < g.NumNodes(); i++ {
		if g.OutDegree(uint32(i)) == 0 {
			continue
		}
		if !found || g.NodeIDs[i] < bestID {
			best = uint32(i)
			bestID = g.NodeIDs[i]
			found = true
		}
	}
	return best, found
}

func toSet(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
