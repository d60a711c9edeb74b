package geo

import (
	"math"
	"testing"
)

func TestHaversineKnownDistances(t *testing.T) {
	tests := map[string]struct {
		lat1, lon1, lat2, lon2 float64
		wantMeters             float64
		toleranceFraction      float64
	}{
		"San Francisco to Oakland": {
			lat1: 37.7749, lon1: -122.4194,
			lat2: 37.8044, lon2: -122.2712,
			wantMeters:        13_400,
			toleranceFraction: 0.02,
		},
		"equator quarter-degree hop": {
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 0.25,
			wantMeters:        27_830,
			toleranceFraction: 0.01,
		},
		"short urban block (~80m)": {
			lat1: 1.3521, lon1: 103.8198,
			lat2: 1.3528, lon2: 103.8198,
			wantMeters:        78,
			toleranceFraction: 0.05,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			frac := math.Abs(got-tt.wantMeters) / tt.wantMeters
			if frac > tt.toleranceFraction {
				t.Errorf("Haversine() = %.1fm, want ~%.1fm (off by %.1f%%, tolerance %.1f%%)",
					got, tt.wantMeters, frac*100, tt.toleranceFraction*100)
			}
		})
	}
}

func TestHaversineSelfIsZero(t *testing.T) {
	for _, p := range [][2]float64{{0, 0}, {1.3521, 103.8198}, {-33.8688, 151.2093}, {89.9, 179.9}} {
		if d := Haversine(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Haversine(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestHaversineIsSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{1.30, 103.80, 1.35, 103.90},
		{-33.87, 151.21, -37.81, 144.96},
		{0, 179.9, 0, -179.9}, // crosses the antimeridian
	}
	for _, p := range pairs {
		a := Haversine(p[0], p[1], p[2], p[3])
		b := Haversine(p[2], p[3], p[0], p[1])
		if math.Abs(a-b) > 1e-6 {
			t.Errorf("Haversine(%v) = %f but reverse = %f, want equal", p, a, b)
		}
	}
}

// EquirectangularDist feeds pkg/locate's lower-bound pre-filter, so it must
// stay tight to Haversine at the scale it's actually used at (within 0.5%
// here); a loose approximation could wrongly discard the real nearest edge.
func TestEquirectangularDistIsClose(t *testing.T) {
	cases := [][4]float64{
		{1.3521, 103.8198, 1.3600, 103.8300},
		{1.3521, 103.8198, 1.3521, 103.8300},
		{51.5074, -0.1278, 51.5090, -0.1250},
	}
	for _, c := range cases {
		h := Haversine(c[0], c[1], c[2], c[3])
		e := EquirectangularDist(c[0], c[1], c[2], c[3])

		if diff := math.Abs(h - e); diff > 0.005*h+0.1 {
			t.Errorf("EquirectangularDist(%v) = %f, Haversine = %f, differ by more than 0.5%%", c, e, h)
		}
	}
}

func TestPointToSegmentDistEndpointsAndMidpoint(t *testing.T) {
	// A short north-south segment near the equator.
	aLat, aLon := 1.3500, 103.8200
	bLat, bLon := 1.3600, 103.8200

	tests := map[string]struct {
		pLat, pLon float64
		wantRatio  float64
		maxDistM   float64
	}{
		"query point sits on A": {
			pLat: aLat, pLon: aLon,
			wantRatio: 0.0,
			maxDistM:  1,
		},
		"query point sits on B": {
			pLat: bLat, pLon: bLon,
			wantRatio: 1.0,
			maxDistM:  1,
		},
		"query point abeam the midpoint": {
			pLat: 1.3550, pLon: 103.8210,
			wantRatio: 0.5,
			maxDistM:  200,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dist, ratio := PointToSegmentDist(tt.pLat, tt.pLon, aLat, aLon, bLat, bLon)
			if dist > tt.maxDistM {
				t.Errorf("dist = %f m, want <= %f m", dist, tt.maxDistM)
			}
			if math.Abs(ratio-tt.wantRatio) > 0.05 {
				t.Errorf("ratio = %f, want ~%f", ratio, tt.wantRatio)
			}
		})
	}
}

func TestPointToSegmentDistDegenerateSegment(t *testing.T) {
	// A == B: the "segment" is a point, so the answer must reduce to a
	// plain point-to-point distance, with ratio pinned to 0.
	dist, ratio := PointToSegmentDist(1.3500, 103.8210, 1.3500, 103.8200, 1.3500, 103.8200)
	want := Haversine(1.3500, 103.8210, 1.3500, 103.8200)
	if math.Abs(dist-want) > 1e-6 {
		t.Errorf("dist = %f, want %f (degenerate segment reduces to point distance)", dist, want)
	}
	if ratio != 0 {
		t.Errorf("ratio = %f, want 0 for a degenerate segment", ratio)
	}
}

func BenchmarkHaversine(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Haversine(1.3521, 103.8198, 1.2905, 103.8520)
	}
}

func BenchmarkEquirectangularDist(b *testing.B) {
	for i := 0; i < b.N; i++ {
		EquirectangularDist(1.3521, 103.8198, 1.2905, 103.8520)
	}
}
