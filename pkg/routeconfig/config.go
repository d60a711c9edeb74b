// Package routeconfig holds the §6 configuration table: every recognized
// option, its default, and the validation that keeps turn-multiplier
// ordering and the one-way policy invariant intact. Optional overrides use
// pointer fields so "unset" is distinguishable from "set to zero" — the
// same shape the Valhalla client in the retrieved pack uses for request
// options (github.com/gotidy/ptr).
package routeconfig

import (
	"fmt"

	"github.com/gotidy/ptr"
	"github.com/paulmach/osm"

	"wasteroute/pkg/geo"
)

// Config is the full set of §6 options. Zero-value fields other than the
// Allowed/Excluded sets and TurnMultipliers take their defaults at
// Default(); overrides are applied on top.
type Config struct {
	AllowedHighways       []string
	ExcludedHighways      []string
	ExcludedServiceValues []string
	ExcludedAccessValues  []string

	// IgnoreOneway must be true in this spec's version (§6); kept as a
	// field rather than hardcoded so Validate can reject a caller that
	// tries to turn it off, documenting the invariant at the boundary
	// instead of silently overriding it.
	IgnoreOneway bool

	TurnMultipliers      geo.TurnMultipliers
	StraightThresholdDeg float64
	UTurnThresholdDeg    float64

	AverageSpeedKMH float64

	// StartNodeID overrides start-node selection (§4.5) when non-nil.
	StartNodeID *osm.NodeID
}

// Default returns the §6 default configuration.
func Default() Config {
	return Config{
		AllowedHighways:       []string{"residential", "unclassified", "service", "tertiary", "secondary"},
		ExcludedHighways:      []string{"footway", "cycleway", "steps", "path", "track", "pedestrian"},
		ExcludedServiceValues: []string{"parking_aisle", "parking"},
		ExcludedAccessValues:  []string{"private", "no"},
		IgnoreOneway:          true,
		TurnMultipliers:       geo.DefaultTurnMultipliers(),
		StraightThresholdDeg:  geo.DefaultStraightThresholdDeg,
		UTurnThresholdDeg:     geo.DefaultUTurnThresholdDeg,
		AverageSpeedKMH:       30,
	}
}

// WithStartNode returns a copy of cfg with StartNodeID overridden — mirrors
// the Valhalla client's ptr.* helpers for constructing optional fields
// inline at call sites instead of taking the address of a local.
func (c Config) WithStartNode(id osm.NodeID) Config {
	c.StartNodeID = ptr.Of(id)
	return c
}

// Validate enforces the invariants §4.1 and §6 require of a Config:
// right < straight < left < u-turn multiplier ordering, non-negative
// thresholds with straight below u-turn, positive speed, and
// ignore_oneway == true.
func (c Config) Validate() error {
	m := c.TurnMultipliers
	if !(m.Right < m.Straight && m.Straight < m.Left && m.Left < m.UTurn) {
		return fmt.Errorf("routeconfig: turn multipliers must satisfy right < straight < left < u-turn, got %+v", m)
	}
	if c.StraightThresholdDeg < 0 || c.UTurnThresholdDeg < 0 {
		return fmt.Errorf("routeconfig: turn-angle thresholds must be non-negative")
	}
	if c.StraightThresholdDeg >= c.UTurnThresholdDeg {
		return fmt.Errorf("routeconfig: straight threshold must be below u-turn threshold")
	}
	if c.AverageSpeedKMH <= 0 {
		return fmt.Errorf("routeconfig: average_speed_kmh must be positive")
	}
	if !c.IgnoreOneway {
		return fmt.Errorf("routeconfig: ignore_oneway must be true in this spec's version")
	}
	return nil
}
