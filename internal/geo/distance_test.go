package geo

import (
	"math"
	"testing"

	"github.com/golang/geo/s2"
)

const (
	parisLat = 48.8566
	parisLon = 2.3522
	lyonLat  = 45.7640
	lyonLon  = 4.8357
)

func TestHaversine(t *testing.T) {
	t.Run("IdenticalPointsAreExactlyZero", func(t *testing.T) {
		if d := Haversine(parisLat, parisLon, parisLat, parisLon); d != 0 {
			t.Errorf("expected exactly 0 for identical points, got %v", d)
		}
	})

	t.Run("ParisLyon", func(t *testing.T) {
		d := Haversine(parisLat, parisLon, lyonLat, lyonLon)
		if math.Abs(d-391.5) > 0.5 {
			t.Errorf("expected Paris-Lyon ~391.5 km, got %v", d)
		}
	})

	t.Run("Symmetry", func(t *testing.T) {
		ab := Haversine(parisLat, parisLon, lyonLat, lyonLon)
		ba := Haversine(lyonLat, lyonLon, parisLat, parisLon)
		if ab != ba {
			t.Errorf("distance is not symmetric: %v != %v", ab, ba)
		}
	})

	t.Run("AntipodalIsStable", func(t *testing.T) {
		// Half the Earth's circumference, the largest possible distance.
		d := Haversine(0, 0.0001, 0, -179.9999)
		if math.IsNaN(d) {
			t.Fatal("antipodal distance is NaN")
		}
		if math.Abs(d-20015.09) > 0.1 {
			t.Errorf("expected ~20015 km for antipodal points, got %v", d)
		}
	})

	t.Run("NeverNegative", func(t *testing.T) {
		coords := [][4]float64{
			{0, 0, 0, 0},
			{90, 0, -90, 0},
			{48.8566, 2.3522, 48.8566, 2.3523},
			{-45, -170, 45, 170},
		}
		for _, c := range coords {
			if d := Haversine(c[0], c[1], c[2], c[3]); d < 0 || math.IsNaN(d) {
				t.Errorf("Haversine(%v) = %v, want finite non-negative", c, d)
			}
		}
	})

	t.Run("AgreesWithS2", func(t *testing.T) {
		// Cross-check against the s2 spherical geometry library on a few
		// real city pairs. Both assume a sphere, so agreement should be
		// within floating-point noise once scaled by the same radius.
		pairs := [][4]float64{
			{parisLat, parisLon, lyonLat, lyonLon},
			{48.8566, 2.3522, 43.2965, 5.3698}, // Paris - Marseille
			{50.6292, 3.0573, 44.8378, -0.5792}, // Lille - Bordeaux
		}
		for _, p := range pairs {
			want := s2.LatLngFromDegrees(p[0], p[1]).Distance(s2.LatLngFromDegrees(p[2], p[3])).Radians() * EarthRadiusKm
			got := Haversine(p[0], p[1], p[2], p[3])
			if math.Abs(got-want) > 1e-6 {
				t.Errorf("Haversine(%v) = %v, s2 says %v", p, got, want)
			}
		}
	})
}

func TestDistancesFrom(t *testing.T) {
	coords := []Coordinate{
		{Lat: parisLat, Lon: parisLon},
		{Lat: lyonLat, Lon: lyonLon},
		{Lat: 43.2965, Lon: 5.3698},
		{Lat: 50.6292, Lon: 3.0573},
	}

	t.Run("MatchesScalarPath", func(t *testing.T) {
		out := DistancesFrom(parisLat, parisLon, coords, make([]float64, len(coords)))
		for i, c := range coords {
			want := Haversine(parisLat, parisLon, c.Lat, c.Lon)
			if out[i] != want {
				t.Errorf("coords[%d]: vectorized %v != scalar %v", i, out[i], want)
			}
		}
	})

	t.Run("SelfDistanceIsZero", func(t *testing.T) {
		out := DistancesFrom(parisLat, parisLon, coords, make([]float64, len(coords)))
		if out[0] != 0 {
			t.Errorf("distance to self = %v, want 0", out[0])
		}
	})

	t.Run("ReusesBuffer", func(t *testing.T) {
		buf := make([]float64, len(coords))
		out := DistancesFrom(parisLat, parisLon, coords, buf)
		if &out[0] != &buf[0] {
			t.Error("expected the provided buffer to be returned")
		}
	})
}
