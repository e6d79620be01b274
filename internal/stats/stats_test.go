package stats

import (
	"errors"
	"math"
	"testing"

	"coverage.antennemap.fr/internal/models"
)

func TestAggregate(t *testing.T) {
	t.Run("EmptyInputFails", func(t *testing.T) {
		_, err := Aggregate(nil)
		if !errors.Is(err, ErrNoDistances) {
			t.Fatalf("expected ErrNoDistances, got %v", err)
		}
	})

	t.Run("SingleValue", func(t *testing.T) {
		s, err := Aggregate([]float64{4.2})
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if s.Mean != 4.2 || s.Median != 4.2 || s.Min != 4.2 || s.Max != 4.2 {
			t.Errorf("unexpected stats for single value: %+v", s)
		}
		if s.StdDev != 0 {
			t.Errorf("stddev of single value = %v, want 0", s.StdDev)
		}
		if s.Count != 1 {
			t.Errorf("count = %d, want 1", s.Count)
		}
	})

	t.Run("OddLengthMedian", func(t *testing.T) {
		s, err := Aggregate([]float64{9, 1, 5})
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if s.Median != 5 {
			t.Errorf("median = %v, want 5", s.Median)
		}
	})

	t.Run("EvenLengthMedianInterpolates", func(t *testing.T) {
		s, err := Aggregate([]float64{4, 1, 3, 2})
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if s.Median != 2.5 {
			t.Errorf("median = %v, want 2.5", s.Median)
		}
	})

	t.Run("PopulationStdDev", func(t *testing.T) {
		// Values 2,4,4,4,5,5,7,9: the textbook population stddev example.
		s, err := Aggregate([]float64{2, 4, 4, 4, 5, 5, 7, 9})
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if s.StdDev != 2 {
			t.Errorf("stddev = %v, want 2", s.StdDev)
		}
	})

	t.Run("Ordering invariants", func(t *testing.T) {
		inputs := [][]float64{
			{0, 0, 391.5},
			{1.5},
			{10, 20, 30, 40},
			{3, 3, 3},
		}
		for _, in := range inputs {
			s, err := Aggregate(in)
			if err != nil {
				t.Fatalf("Aggregate(%v) failed: %v", in, err)
			}
			if s.Min > s.Median || s.Median > s.Max {
				t.Errorf("min <= median <= max violated for %v: %+v", in, s)
			}
			if s.Min > s.Mean || s.Mean > s.Max {
				t.Errorf("min <= mean <= max violated for %v: %+v", in, s)
			}
			if s.Count != len(in) {
				t.Errorf("count = %d, want %d", s.Count, len(in))
			}
		}
	})

	t.Run("InputNotMutated", func(t *testing.T) {
		in := []float64{3, 1, 2}
		if _, err := Aggregate(in); err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if in[0] != 3 || in[1] != 1 || in[2] != 2 {
			t.Errorf("input slice was reordered: %v", in)
		}
	})

	t.Run("DuplicateParisExample", func(t *testing.T) {
		// Two antennas on the same Paris rooftop plus one in Lyon.
		parisLyon := 391.49893167425734
		s, err := Aggregate([]float64{0, parisLyon, 0})
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if s.Median != 0 || s.Min != 0 {
			t.Errorf("median/min should be 0: %+v", s)
		}
		if math.Abs(s.Mean-130.5) > 0.1 {
			t.Errorf("mean = %v, want ~130.5", s.Mean)
		}
		if math.Abs(s.Max-391.5) > 0.1 {
			t.Errorf("max = %v, want ~391.5", s.Max)
		}
	})
}

func TestSortByMean(t *testing.T) {
	reports := []models.OperatorReport{
		{Operator: "C", Status: models.StatusSkipped},
		{Operator: "B", Status: models.StatusComputed, Stats: &models.OperatorStatistics{Mean: 5}},
		{Operator: "A", Status: models.StatusComputed, Stats: &models.OperatorStatistics{Mean: 12}},
		{Operator: "D", Status: models.StatusFailed},
	}
	SortByMean(reports)

	wantOrder := []string{"B", "A", "C", "D"}
	for i, op := range wantOrder {
		if reports[i].Operator != op {
			t.Fatalf("position %d: got %s, want %s (full order: %v)", i, reports[i].Operator, op, reports)
		}
	}
}
