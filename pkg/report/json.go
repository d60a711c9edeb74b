package report

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"wasteroute/pkg/engine"
)

// jsonWaypoint mirrors engine.Waypoint with explicit field tags; the engine
// type itself stays free of encoding concerns (§6 treats it as a pure data
// boundary).
type jsonWaypoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// jsonStats mirrors engine.Stats, field for field, with snake_case tags
// matching the §6 statistics block's naming.
type jsonStats struct {
	TotalLengthMeters     float64 `json:"total_length_meters"`
	EstimatedDriveTimeSec float64 `json:"estimated_drive_time_sec"`

	RightTurns    int `json:"right_turns"`
	LeftTurns     int `json:"left_turns"`
	StraightCount int `json:"straight_count"`
	UTurns        int `json:"u_turns"`

	UniqueSegmentCount  int `json:"unique_segment_count"`
	EdgeCount           int `json:"edge_count"`
	KeptComponentNodes  int `json:"kept_component_nodes"`
	DiscardedComponents int `json:"discarded_components"`
	DiscardedNodeCount  int `json:"discarded_node_count"`

	OneWayIgnored bool `json:"oneway_ignored"`

	InvalidNodeWays        int `json:"invalid_node_ways"`
	InvalidCoordinateNodes int `json:"invalid_coordinate_nodes"`
}

type jsonResult struct {
	Waypoints []jsonWaypoint `json:"waypoints"`
	Stats     jsonStats      `json:"stats"`
}

// WriteJSON encodes result as the §6 JSON stats sidecar, using goccy/go-json
// for the same reason the teacher's wire-format code avoids encoding/json:
// throughput on large payloads (this waypoint list can run into the
// thousands for a large service area).
func WriteJSON(w io.Writer, result *engine.Result) error {
	out := jsonResult{
		Waypoints: make([]jsonWaypoint, len(result.Waypoints)),
		Stats: jsonStats{
			TotalLengthMeters:      result.Stats.TotalLengthMeters,
			EstimatedDriveTimeSec:  result.Stats.EstimatedDriveTimeSec,
			RightTurns:             result.Stats.RightTurns,
			LeftTurns:              result.Stats.LeftTurns,
			StraightCount:          result.Stats.StraightCount,
			UTurns:                 result.Stats.UTurns,
			UniqueSegmentCount:     result.Stats.UniqueSegmentCount,
			EdgeCount:              result.Stats.EdgeCount,
			KeptComponentNodes:     result.Stats.KeptComponentNodes,
			DiscardedComponents:    result.Stats.DiscardedComponents,
			DiscardedNodeCount:     result.Stats.DiscardedNodeCount,
			OneWayIgnored:          result.Stats.OneWayIgnored,
			InvalidNodeWays:        result.Stats.InvalidNodeWays,
			InvalidCoordinateNodes: result.Stats.InvalidCoordinateNodes,
		},
	}
	for i, wp := range result.Waypoints {
		out.Waypoints[i] = jsonWaypoint{Lat: wp.Lat, Lon: wp.Lon}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}
