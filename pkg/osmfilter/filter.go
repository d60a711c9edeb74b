// Package osmfilter implements the §4.2 driveability contract: the single
// place OSM way tags are read and reduced to a yes/no routing decision.
package osmfilter

import "github.com/paulmach/osm"

// Config configures the filter's allow/deny sets. All fields have sensible
// defaults (Default()) and are independently overridable.
type Config struct {
	AllowedHighways        map[string]bool
	ExcludedHighways       map[string]bool
	ExcludedServiceValues  map[string]bool
	ExcludedAccessValues   map[string]bool
}

// Default returns the §6 default filter configuration.
func Default() Config {
	return Config{
		AllowedHighways: set("residential", "unclassified", "service", "tertiary", "secondary"),
		ExcludedHighways: set(
			"footway", "cycleway", "steps", "path", "track", "pedestrian",
		),
		ExcludedServiceValues: set("parking_aisle", "parking"),
		ExcludedAccessValues:  set("private", "no"),
	}
}

func set(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

// Reason names why a way was rejected, for diagnostics/statistics.
type Reason int

const (
	Accepted Reason = iota
	RejectedHighwayNotAllowed
	RejectedHighwayExcluded
	RejectedServiceValue
	RejectedAccessValue
	RejectedTooFewNodes
	RejectedUnknownNode
)

// NodeExists reports whether a node id is present in the node table; the
// caller supplies this so the filter stays decoupled from any particular
// node-storage representation.
type NodeExists func(id osm.NodeID) bool

// Driveable implements §4.2's five-point contract. It never mutates w and
// never reads any tag other than highway/service/access/oneway.
func Driveable(w *osm.Way, cfg Config, nodeExists NodeExists) (bool, Reason) {
	hw := w.Tags.Find("highway")

	// Check 1: highway value must be in the allowed set.
	if !cfg.AllowedHighways[hw] {
		return false, RejectedHighwayNotAllowed
	}

	// Check 2: highway value must not be in the excluded set (defense in
	// depth — disjoint from the allowed set by construction, but kept so a
	// future broadened allowed set can't silently admit e.g. "path").
	if cfg.ExcludedHighways[hw] {
		return false, RejectedHighwayExcluded
	}

	// Check 3: service tag, if present, must not be a non-driveable service type.
	if service := w.Tags.Find("service"); service != "" && cfg.ExcludedServiceValues[service] {
		return false, RejectedServiceValue
	}

	// Check 4: access tag, if present, must not forbid general access.
	if access := w.Tags.Find("access"); access != "" && cfg.ExcludedAccessValues[access] {
		return false, RejectedAccessValue
	}

	// Check 5: node list shape and existence.
	if len(w.Nodes) < 2 {
		return false, RejectedTooFewNodes
	}
	for _, wn := range w.Nodes {
		if !nodeExists(wn.ID) {
			return false, RejectedUnknownNode
		}
	}

	return true, Accepted
}

// OneWayTag returns the raw `oneway` tag value. Per §4.2 it never affects
// the Driveable verdict.
func OneWayTag(w *osm.Way) string {
	return w.Tags.Find("oneway")
}
