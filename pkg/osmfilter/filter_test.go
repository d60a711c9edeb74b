package osmfilter

import (
	"testing"

	"github.com/paulmach/osm"
)

func allNodesExist(osm.NodeID) bool { return true }

func wayWith(tags osm.Tags, nodeIDs ...osm.NodeID) *osm.Way {
	w := &osm.Way{Tags: tags}
	for _, id := range nodeIDs {
		w.Nodes = append(w.Nodes, osm.WayNode{ID: id})
	}
	return w
}

func TestDriveable(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name       string
		tags       osm.Tags
		nodeIDs    []osm.NodeID
		nodeExists NodeExists
		want       bool
		wantReason Reason
	}{
		{
			name:    "residential accepted",
			tags:    osm.Tags{{Key: "highway", Value: "residential"}},
			nodeIDs: []osm.NodeID{1, 2},
			want:    true, wantReason: Accepted,
		},
		{
			name:    "footway rejected (not in allowed set)",
			tags:    osm.Tags{{Key: "highway", Value: "footway"}},
			nodeIDs: []osm.NodeID{1, 2},
			want:    false, wantReason: RejectedHighwayNotAllowed,
		},
		{
			name:    "motorway rejected (not in allowed set)",
			tags:    osm.Tags{{Key: "highway", Value: "motorway"}},
			nodeIDs: []osm.NodeID{1, 2},
			want:    false, wantReason: RejectedHighwayNotAllowed,
		},
		{
			name: "parking aisle service rejected",
			tags: osm.Tags{
				{Key: "highway", Value: "service"},
				{Key: "service", Value: "parking_aisle"},
			},
			nodeIDs: []osm.NodeID{1, 2},
			want:    false, wantReason: RejectedServiceValue,
		},
		{
			name: "private access rejected",
			tags: osm.Tags{
				{Key: "highway", Value: "residential"},
				{Key: "access", Value: "private"},
			},
			nodeIDs: []osm.NodeID{1, 2},
			want:    false, wantReason: RejectedAccessValue,
		},
		{
			name:    "single node rejected",
			tags:    osm.Tags{{Key: "highway", Value: "residential"}},
			nodeIDs: []osm.NodeID{1},
			want:    false, wantReason: RejectedTooFewNodes,
		},
		{
			name:    "unknown node rejected",
			tags:    osm.Tags{{Key: "highway", Value: "residential"}},
			nodeIDs: []osm.NodeID{1, 2},
			nodeExists: func(id osm.NodeID) bool {
				return id != 2
			},
			want: false, wantReason: RejectedUnknownNode,
		},
		{
			name: "oneway tag never affects verdict",
			tags: osm.Tags{
				{Key: "highway", Value: "residential"},
				{Key: "oneway", Value: "yes"},
			},
			nodeIDs: []osm.NodeID{1, 2},
			want:    true, wantReason: Accepted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists := tt.nodeExists
			if exists == nil {
				exists = allNodesExist
			}
			w := wayWith(tt.tags, tt.nodeIDs...)
			got, reason := Driveable(w, cfg, exists)
			if got != tt.want {
				t.Errorf("Driveable() = %v, want %v (reason %v)", got, tt.want, reason)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %v, want %v", reason, tt.wantReason)
			}
		})
	}
}

func TestFilterIdempotence(t *testing.T) {
	cfg := Default()
	ways := []*osm.Way{
		wayWith(osm.Tags{{Key: "highway", Value: "residential"}}, 1, 2),
		wayWith(osm.Tags{{Key: "highway", Value: "footway"}}, 3, 4),
		wayWith(osm.Tags{{Key: "highway", Value: "tertiary"}}, 5, 6),
	}

	filterOnce := func(in []*osm.Way) []*osm.Way {
		var out []*osm.Way
		for _, w := range in {
			if ok, _ := Driveable(w, cfg, allNodesExist); ok {
				out = append(out, w)
			}
		}
		return out
	}

	first := filterOnce(ways)
	second := filterOnce(first)

	if len(first) != len(second) {
		t.Fatalf("filtering is not idempotent: first=%d second=%d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("element %d differs between passes", i)
		}
	}
}

func TestOneWayTagReadButIgnored(t *testing.T) {
	w := wayWith(osm.Tags{
		{Key: "highway", Value: "residential"},
		{Key: "oneway", Value: "-1"},
	}, 1, 2)

	if got := OneWayTag(w); got != "-1" {
		t.Errorf("OneWayTag() = %q, want %q", got, "-1")
	}

	ok, _ := Driveable(w, Default(), allNodesExist)
	if !ok {
		t.Error("oneway=-1 must not affect the driveable verdict")
	}
}
