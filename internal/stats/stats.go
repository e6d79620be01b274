// Package stats reduces per-point nearest-neighbor distance lists into the
// summary statistics reported per operator.
package stats

import (
	"errors"
	"math"
	"sort"

	"coverage.antennemap.fr/internal/models"
)

// ErrNoDistances is returned when aggregation is asked to summarize an empty
// list. Returning zero-valued statistics instead would be indistinguishable
// from an operator whose antennas are all stacked on one spot.
var ErrNoDistances = errors.New("no distances to aggregate")

// Aggregate computes mean, median, population standard deviation, min, max
// and count over a nearest-neighbor distance list. The input slice is not
// modified.
func Aggregate(distances []float64) (models.OperatorStatistics, error) {
	if len(distances) == 0 {
		return models.OperatorStatistics{}, ErrNoDistances
	}

	sorted := append([]float64(nil), distances...)
	sort.Float64s(sorted)

	var sum float64
	for _, d := range sorted {
		sum += d
	}
	mean := sum / float64(len(sorted))

	var sqDiff float64
	for _, d := range sorted {
		sqDiff += (d - mean) * (d - mean)
	}

	return models.OperatorStatistics{
		Mean:   mean,
		Median: median(sorted),
		StdDev: math.Sqrt(sqDiff / float64(len(sorted))),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Count:  len(sorted),
	}, nil
}

// median assumes values is sorted. Even-length lists interpolate between the
// two middle values.
func median(values []float64) float64 {
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

// SortByMean orders reports by ascending mean distance, the presentation
// order used by every exporter. Skipped and failed operators sort after
// computed ones, alphabetically within each group.
func SortByMean(reports []models.OperatorReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		a, b := reports[i], reports[j]
		if (a.Stats == nil) != (b.Stats == nil) {
			return a.Stats != nil
		}
		if a.Stats == nil {
			return a.Operator < b.Operator
		}
		if a.Stats.Mean != b.Stats.Mean {
			return a.Stats.Mean < b.Stats.Mean
		}
		return a.Operator < b.Operator
	})
}
