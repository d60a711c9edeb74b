// Command routegen is the single batch front-end for the waste-collection
// routing engine: ingest an OSM PBF extract, filter it to driveable
// streets, build the graph, extract a closed double-coverage circuit, and
// write a report. Grounded on the teacher's cmd/preprocess/main.go flag
// layout and staged log.Printf progress style (open file -> parse ->
// build -> component -> [CH in the teacher; Eulerize+circuit here] ->
// write output). There is no query-time server counterpart (cmd/server in
// the teacher) — §5 of the spec is explicit that one job is a
// single-threaded, synchronous, start-to-finish run, not a service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/paulmach/osm"

	"wasteroute/pkg/engine"
	"wasteroute/pkg/ingest"
	"wasteroute/pkg/report"
	"wasteroute/pkg/routeconfig"
)

func main() {
	input := flag.String("input", "", "Path to .osm.pbf file")
	outPrefix := flag.String("output", "route", "Output file prefix: writes <prefix>.txt, <prefix>.json, <prefix>.geojson")
	startNode := flag.Int64("start-node", 0, "Optional OSM node id to start the circuit at (0 = auto-select)")
	avgSpeed := flag.Float64("avg-speed-kmh", 30, "Average speed in km/h, used only for the drive-time estimate")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: routegen --input <file.osm.pbf> [--output route] [--start-node id] [--avg-speed-kmh 30]")
		os.Exit(1)
	}

	start := time.Now()
	ctx := context.Background()

	log.Println("Opening OSM file...")
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	log.Println("Parsing OSM data...")
	parsed, err := ingest.Parse(ctx, f)
	if err != nil {
		log.Fatalf("Failed to parse OSM data: %v", err)
	}
	log.Printf("Parsed %d ways, %d node coordinates", len(parsed.Ways), len(parsed.Nodes))

	cfg := routeconfig.Default()
	cfg.AverageSpeedKMH = *avgSpeed
	if *startNode != 0 {
		cfg = cfg.WithStartNode(osm.NodeID(*startNode))
	}

	log.Println("Filtering, building graph, and routing...")
	result, err := engine.Generate(ctx, parsed.Nodes, parsed.Ways, cfg, parsed.InvalidCoordinateCount)
	if err != nil {
		log.Fatalf("Route generation failed: %v", err)
	}
	log.Printf("Route: %d waypoints, %.0fm, %d edges covered", len(result.Waypoints), result.Stats.TotalLengthMeters, result.Stats.EdgeCount)

	if err := writeOutputs(*outPrefix, result); err != nil {
		log.Fatalf("Failed to write outputs: %v", err)
	}

	elapsed := time.Since(start)
	log.Printf("Done in %s. Wrote %s.{txt,json,geojson}", elapsed.Round(time.Second), *outPrefix)
}

func writeOutputs(prefix string, result *engine.Result) error {
	txt, err := os.Create(prefix + ".txt")
	if err != nil {
		return fmt.Errorf("create text report: %w", err)
	}
	defer txt.Close()
	if err := report.WriteText(txt, result); err != nil {
		return err
	}

	jf, err := os.Create(prefix + ".json")
	if err != nil {
		return fmt.Errorf("create json sidecar: %w", err)
	}
	defer jf.Close()
	if err := report.WriteJSON(jf, result); err != nil {
		return err
	}

	gj, err := os.Create(prefix + ".geojson")
	if err != nil {
		return fmt.Errorf("create geojson sidecar: %w", err)
	}
	defer gj.Close()
	if err := report.WriteGeoJSON(gj, result); err != nil {
		return err
	}

	return nil
}
