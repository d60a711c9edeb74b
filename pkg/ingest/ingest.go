// Package ingest decodes an OSM PBF extract into the typed node/way records
// the routing engine consumes. This is the external parsing boundary named
// in spec.md §1 ("XML/PBF decoding... assumed to yield typed node/way
// records") — kept here only as a thin CLI-facing convenience, the way the
// teacher's own cmd/preprocess decodes before handing off to the rest of
// the pipeline. No tag-based filtering happens here: every way with at
// least two nodes is collected, and the entire driveability decision is
// deferred to pkg/osmfilter.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

// NodeTable is a lookup from node id to its parsed record.
type NodeTable map[osm.NodeID]*osm.Node

// Exists reports whether id was referenced and successfully resolved to
// coordinates during ingestion. Its method value has the
// pkg/osmfilter.NodeExists signature.
func (t NodeTable) Exists(id osm.NodeID) bool {
	_, ok := t[id]
	return ok
}

// Result holds everything ingestion produced from one PBF extract.
type Result struct {
	Nodes NodeTable
	Ways  []*osm.Way

	// Soft-failure counts (§7): nodes dropped for out-of-range coordinates,
	// and the node ids referenced by ways that never resolved (tracked by
	// the caller via NodeTable.Exists once ways are filtered).
	InvalidCoordinateCount int
}

// Parse reads an OSM PBF file and returns every way with >=2 nodes plus a
// table of the nodes those ways reference. The reader is consumed twice
// (seeks back to start for the second pass), so it must implement
// io.ReadSeeker — matching the teacher's own osm.Parse signature.
func Parse(ctx context.Context, rs io.ReadSeeker) (*Result, error) {
	referencedNodes := make(map[osm.NodeID]struct{})
	var ways []*osm.Way

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		obj := scanner.Object()
		w, ok := obj.(*osm.Way)
		if !ok {
			continue
		}
		if len(w.Nodes) < 2 {
			continue
		}
		for _, wn := range w.Nodes {
			referencedNodes[wn.ID] = struct{}{}
		}
		ways = append(ways, w)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	scanner.Close()

	log.Printf("ingest: pass 1 complete: %d ways, %d referenced nodes", len(ways), len(referencedNodes))

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}

	nodes := make(NodeTable, len(referencedNodes))
	var invalidCoords int

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		obj := scanner.Object()
		n, ok := obj.(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referencedNodes[n.ID]; !needed {
			continue
		}
		if n.Lat < -90 || n.Lat > 90 || n.Lon < -180 || n.Lon > 180 {
			invalidCoords++
			continue
		}
		nodes[n.ID] = n
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	scanner.Close()

	if invalidCoords > 0 {
		log.Printf("ingest: dropped %d nodes with out-of-range coordinates", invalidCoords)
	}
	log.Printf("ingest: pass 2 complete: %d node coordinates collected", len(nodes))

	return &Result{
		Nodes:                  nodes,
		Ways:                   ways,
		InvalidCoordinateCount: invalidCoords,
	}, nil
}
