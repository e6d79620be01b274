package engine

import (
	"math"
	"testing"

	"coverage.antennemap.fr/internal/models"
)

func pointSet(operator string, coords ...[2]float64) models.OperatorPointSet {
	set := models.OperatorPointSet{Operator: operator}
	for i, c := range coords {
		set.Points = append(set.Points, models.Point{
			SupportID: string(rune('a' + i)),
			Operator:  operator,
			Latitude:  c[0],
			Longitude: c[1],
		})
	}
	return set
}

func TestNearestNeighborDistances(t *testing.T) {
	t.Run("EmptySetYieldsNoValues", func(t *testing.T) {
		if got := NearestNeighborDistances(pointSet("X"), 0); got != nil {
			t.Errorf("expected nil for empty set, got %v", got)
		}
	})

	t.Run("SinglePointYieldsNoValues", func(t *testing.T) {
		set := pointSet("Y", [2]float64{48.8566, 2.3522})
		if got := NearestNeighborDistances(set, 0); got != nil {
			t.Errorf("expected nil for single-point set, got %v", got)
		}
	})

	t.Run("ParisLyonDuplicateParis", func(t *testing.T) {
		// Two antennas on the same Paris coordinates plus one in Lyon: the
		// Paris pair see each other at 0 km, Lyon sees Paris at ~391.5 km.
		set := pointSet("X",
			[2]float64{48.8566, 2.3522},
			[2]float64{45.7640, 4.8357},
			[2]float64{48.8566, 2.3522},
		)
		got := NearestNeighborDistances(set, 0)
		if len(got) != 3 {
			t.Fatalf("expected 3 values, got %d", len(got))
		}
		if got[0] != 0 || got[2] != 0 {
			t.Errorf("coincident points should report 0, got %v", got)
		}
		if math.Abs(got[1]-391.5) > 0.5 {
			t.Errorf("Lyon's nearest neighbor = %v km, want ~391.5", got[1])
		}
	})

	t.Run("SelfPairNeverWins", func(t *testing.T) {
		set := pointSet("X",
			[2]float64{48.8566, 2.3522},
			[2]float64{45.7640, 4.8357},
			[2]float64{43.2965, 5.3698},
		)
		for _, d := range NearestNeighborDistances(set, 0) {
			if d == 0 {
				t.Errorf("distinct points reported a zero distance: self-pair not masked")
			}
			if d < 0 || math.IsNaN(d) {
				t.Errorf("invalid distance %v", d)
			}
		}
	})

	t.Run("PartitionInvariance", func(t *testing.T) {
		// Per-point minima must not depend on how the outer index range is
		// chunked, only on the set itself.
		set := pointSet("X",
			[2]float64{48.8566, 2.3522},
			[2]float64{45.7640, 4.8357},
			[2]float64{43.2965, 5.3698},
			[2]float64{44.8378, -0.5792},
			[2]float64{50.6292, 3.0573},
			[2]float64{48.5734, 7.7521},
			[2]float64{43.6047, 1.4442},
		)
		want := NearestNeighborDistances(set, 0)
		for _, chunkSize := range []int{1, 2, 3, 5, 7, 1000} {
			got := NearestNeighborDistances(set, chunkSize)
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("chunkSize=%d: point %d got %v, unchunked %v", chunkSize, i, got[i], want[i])
				}
			}
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		set := pointSet("X",
			[2]float64{48.8566, 2.3522},
			[2]float64{45.7640, 4.8357},
			[2]float64{43.2965, 5.3698},
		)
		a := NearestNeighborDistances(set, 2)
		b := NearestNeighborDistances(set, 2)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("run-to-run difference at %d: %v vs %v", i, a[i], b[i])
			}
		}
	})
}

func TestFilterFinite(t *testing.T) {
	finite, dropped := filterFinite([]float64{1.5, math.NaN(), 2.5, math.Inf(1)})
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if len(finite) != 2 || finite[0] != 1.5 || finite[1] != 2.5 {
		t.Errorf("finite = %v, want [1.5 2.5]", finite)
	}
}

func TestGroupByOperator(t *testing.T) {
	points := []models.Point{
		{SupportID: "1", Operator: "ORANGE", Latitude: 48.85, Longitude: 2.35},
		{SupportID: "2", Operator: "SFR", Latitude: 45.76, Longitude: 4.83},
		{SupportID: "3", Operator: "ORANGE", Latitude: 43.29, Longitude: 5.36},
	}

	sets := GroupByOperator(points)
	if len(sets) != 2 {
		t.Fatalf("expected 2 operators, got %d", len(sets))
	}
	if sets[0].Operator != "ORANGE" || sets[1].Operator != "SFR" {
		t.Errorf("operator order not stable: %v, %v", sets[0].Operator, sets[1].Operator)
	}
	if len(sets[0].Points) != 2 || sets[0].Points[0].SupportID != "1" || sets[0].Points[1].SupportID != "3" {
		t.Errorf("point order within operator not preserved: %+v", sets[0].Points)
	}
}

func TestNearestAntenna(t *testing.T) {
	t.Run("EmptySet", func(t *testing.T) {
		if _, _, err := NearestAntenna(pointSet("X"), 48.85, 2.35); err == nil {
			t.Error("expected an error for an empty set")
		}
	})

	t.Run("PicksClosest", func(t *testing.T) {
		set := pointSet("X",
			[2]float64{45.7640, 4.8357}, // Lyon
			[2]float64{48.8600, 2.3500}, // near the reference
			[2]float64{43.2965, 5.3698}, // Marseille
		)
		p, d, err := NearestAntenna(set, 48.8566, 2.3522)
		if err != nil {
			t.Fatalf("NearestAntenna failed: %v", err)
		}
		if p.SupportID != "b" {
			t.Errorf("closest antenna = %s, want b", p.SupportID)
		}
		if d <= 0 || d > 1 {
			t.Errorf("distance = %v km, want within 1 km", d)
		}
	})
}
