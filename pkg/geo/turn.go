package geo

import "math"

// Default turn-cost thresholds and multipliers (§4.1). Configurable at the
// engine layer (pkg/routeconfig); these are the fallback values used when
// nothing overrides them.
const (
	DefaultStraightThresholdDeg = 10.0
	DefaultUTurnThresholdDeg    = 150.0

	DefaultStraightMultiplier = 1.0
	DefaultRightMultiplier    = 0.5
	DefaultLeftMultiplier     = 2.0
	DefaultUTurnMultiplier    = 3.0
)

// Bearing returns the forward bearing in degrees [-180, 180] from p1 to p2,
// where 0 = north, +90 = east. Undefined (returns 0) when p1 == p2; callers
// must not invoke this on zero-length segments.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLon)

	return math.Atan2(y, x) * 180 / math.Pi
}

// TurnAngle returns the signed turn angle in degrees (-180, 180] between an
// incoming bearing and an outgoing bearing. Positive = right turn, negative
// = left turn. Computed via the modulo form required by §4.1 — no iterative
// normalization.
func TurnAngle(bearingIn, bearingOut float64) float64 {
	m := math.Mod(bearingOut-bearingIn+180, 360)
	if m < 0 {
		// math.Mod takes the sign of the dividend (like C fmod), so a
		// negative bearingOut-bearingIn+180 needs one more wrap into [0,360).
		m += 360
	}
	if m == 0 {
		// An exact reversal would come out as -180; report it as +180 so
		// the result stays inside (-180, 180].
		return 180
	}
	return m - 180
}

// TurnMultipliers holds the four turn-cost multipliers of §4.1. Relative
// ordering (Right < Straight < Left < UTurn) is an invariant the config
// layer enforces; this type only stores values.
type TurnMultipliers struct {
	Straight float64
	Right    float64
	Left     float64
	UTurn    float64
}

// DefaultTurnMultipliers returns the §4.1 default multipliers.
func DefaultTurnMultipliers() TurnMultipliers {
	return TurnMultipliers{
		Straight: DefaultStraightMultiplier,
		Right:    DefaultRightMultiplier,
		Left:     DefaultLeftMultiplier,
		UTurn:    DefaultUTurnMultiplier,
	}
}

// TurnKind classifies a signed turn angle.
type TurnKind int

const (
	TurnStraight TurnKind = iota
	TurnRight
	TurnLeft
	TurnUTurn
)

// Classify buckets a signed turn angle into one of the four turn kinds,
// given the straight/u-turn thresholds. |angle| > uTurnThreshold overrides
// everything else, per §4.1.
func Classify(angle, straightThreshold, uTurnThreshold float64) TurnKind {
	abs := math.Abs(angle)
	switch {
	case abs > uTurnThreshold:
		return TurnUTurn
	case abs < straightThreshold:
		return TurnStraight
	case angle >= straightThreshold:
		return TurnRight
	default:
		return TurnLeft
	}
}

// TurnCost returns the non-negative multiplier for a signed turn angle,
// per the §4.1 table. |angle| > uTurnThreshold overrides every other case.
func TurnCost(angle, straightThreshold, uTurnThreshold float64, mult TurnMultipliers) float64 {
	switch Classify(angle, straightThreshold, uTurnThreshold) {
	case TurnUTurn:
		return mult.UTurn
	case TurnStraight:
		return mult.Straight
	case TurnRight:
		return mult.Right
	default:
		return mult.Left
	}
}
