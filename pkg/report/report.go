// Package report renders the §6 statistics block the engine produces into
// the three downstream sidecars this spec's Non-goals still require an
// ambient home for: a human-readable text report, a JSON stats file, and a
// GeoJSON rendering of the route. None of this is part of the engine's
// own contract (§6: "the engine exposes every field... an external report
// generator" renders it) — these are that external generator, written in
// the teacher's style since something has to produce cmd/routegen's
// output.
package report

import (
	"fmt"
	"io"
	"text/template"

	"wasteroute/pkg/engine"
)

const textTemplate = `Waste collection route report
==============================

Network
  Unique street segments : {{.Stats.UniqueSegmentCount}}
  Directed edges covered  : {{.Stats.EdgeCount}}
  Kept component nodes    : {{.Stats.KeptComponentNodes}}
  Discarded components    : {{.Stats.DiscardedComponents}} ({{.Stats.DiscardedNodeCount}} nodes)

Route
  Total length (m)        : {{printf "%.1f" .Stats.TotalLengthMeters}}
  Estimated drive time (s): {{printf "%.0f" .Stats.EstimatedDriveTimeSec}}
  Waypoints                : {{len .Waypoints}}

Turns
  Right    : {{.Stats.RightTurns}}
  Straight : {{.Stats.StraightCount}}
  Left     : {{.Stats.LeftTurns}}
  U-turn   : {{.Stats.UTurns}}

Data quality
  Ways dropped (unknown node)     : {{.Stats.InvalidNodeWays}}
  Nodes dropped (bad coordinates) : {{.Stats.InvalidCoordinateNodes}}

Policy
  One-way restrictions ignored: {{.Stats.OneWayIgnored}}
  (every street is serviced in both directions so the collection arm
  reaches both curbs, regardless of any oneway tag)
`

var parsed = template.Must(template.New("report").Parse(textTemplate))

// WriteText renders a human-readable report for result to w.
func WriteText(w io.Writer, result *engine.Result) error {
	if err := parsed.Execute(w, result); err != nil {
		return fmt.Errorf("report: render text: %w", err)
	}
	return nil
}
