package report

import (
	"fmt"
	"io"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"

	"wasteroute/pkg/engine"
)

// WriteGeoJSON renders result's waypoint sequence as a single LineString
// feature, properties carrying the same statistics block the text and JSON
// reports expose, so a caller that only wants the map layer doesn't also
// need the JSON sidecar. orb.LineString computes the bounding box; the
// feature itself is built with go.geojson's own [][]float64 coordinate
// form, which predates orb and was never migrated to it upstream.
func WriteGeoJSON(w io.Writer, result *engine.Result) error {
	coords := make([][]float64, len(result.Waypoints))
	line := make(orb.LineString, len(result.Waypoints))
	for i, wp := range result.Waypoints {
		coords[i] = []float64{wp.Lon, wp.Lat}
		line[i] = orb.Point{wp.Lon, wp.Lat}
	}

	feature := geojson.NewFeature(geojson.NewLineStringGeometry(coords))
	feature.SetProperty("total_length_meters", result.Stats.TotalLengthMeters)
	feature.SetProperty("estimated_drive_time_sec", result.Stats.EstimatedDriveTimeSec)
	feature.SetProperty("right_turns", result.Stats.RightTurns)
	feature.SetProperty("left_turns", result.Stats.LeftTurns)
	feature.SetProperty("straight_count", result.Stats.StraightCount)
	feature.SetProperty("u_turns", result.Stats.UTurns)
	feature.SetProperty("oneway_ignored", result.Stats.OneWayIgnored)
	feature.SetProperty("edge_count", result.Stats.EdgeCount)
	feature.SetProperty("unique_segment_count", result.Stats.UniqueSegmentCount)
	feature.SetProperty("kept_component_nodes", result.Stats.KeptComponentNodes)
	feature.SetProperty("discarded_components", result.Stats.DiscardedComponents)
	feature.SetProperty("discarded_node_count", result.Stats.DiscardedNodeCount)
	feature.SetProperty("invalid_node_ways", result.Stats.InvalidNodeWays)
	feature.SetProperty("invalid_coordinate_nodes", result.Stats.InvalidCoordinateNodes)

	if len(line) > 0 {
		bound := line.Bound()
		feature.BoundingBox = []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]}
	}

	fc := geojson.NewFeatureCollection()
	fc.AddFeature(feature)

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("report: marshal geojson: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("report: write geojson: %w", err)
	}
	return nil
}
