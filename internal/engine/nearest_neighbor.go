package engine

import (
	"math"
	"sync"

	"coverage.antennemap.fr/internal/geo"
	"coverage.antennemap.fr/internal/models"
)

// MinPointsForDistance is the smallest set for which a nearest-neighbor
// distance exists. A lone antenna has no neighbor; it is skipped, never
// reported as zero.
const MinPointsForDistance = 2

// NearestNeighborDistances computes, for every point in the set, the minimum
// great-circle distance to any other point of the same operator. The result
// is index-aligned with set.Points and deterministic for a given input order.
//
// The sweep is brute-force all-pairs: O(N²) distance evaluations with no
// spatial index. That is fine for the ~10⁴ supports the largest French
// operators run today, but the cost grows quadratically, so anyone feeding
// this much larger sets should budget accordingly rather than expect an
// approximation to kick in.
//
// chunkSize splits the outer index range for parallel execution. Every point
// is always compared against the entire set, so the per-point minima are
// identical for any chunk size; only the scheduling changes. chunkSize <= 0
// disables the inner fan-out.
//
// Returns nil when the set has fewer than two points.
func NearestNeighborDistances(set models.OperatorPointSet, chunkSize int) []float64 {
	n := len(set.Points)
	if n < MinPointsForDistance {
		return nil
	}

	coords := make([]geo.Coordinate, n)
	for i, p := range set.Points {
		coords[i] = geo.Coordinate{Lat: p.Latitude, Lon: p.Longitude}
	}

	mins := make([]float64, n)

	if chunkSize <= 0 || chunkSize >= n {
		minDistancesRange(coords, 0, n, mins)
		return mins
	}

	// Chunks own disjoint index ranges of mins, so no locking is needed.
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			minDistancesRange(coords, start, end, mins)
		}(start, end)
	}
	wg.Wait()

	return mins
}

// minDistancesRange fills mins[start:end] with each point's distance to its
// nearest neighbor across the whole coordinate set.
func minDistancesRange(coords []geo.Coordinate, start, end int, mins []float64) {
	buf := make([]float64, len(coords))
	for i := start; i < end; i++ {
		geo.DistancesFrom(coords[i].Lat, coords[i].Lon, coords, buf)

		// The self-pair is always 0; mask it so it can never win the
		// minimum. Coincident points still legitimately yield 0 through
		// their twin's entry.
		buf[i] = math.Inf(1)

		min := math.Inf(1)
		for _, d := range buf {
			if d < min {
				min = d
			}
		}
		mins[i] = min
	}
}

// filterFinite splits distances into usable values and a count of dropped
// non-finite ones. NaN reaches us only when malformed coordinates slip past
// ingest; averaging it in would silently poison the operator's statistics.
func filterFinite(distances []float64) (finite []float64, dropped int) {
	finite = make([]float64, 0, len(distances))
	for _, d := range distances {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			dropped++
			continue
		}
		finite = append(finite, d)
	}
	return finite, dropped
}
