// Package coverage bins each operator's antennas into S2 grid cells and
// flags the thinnest-covered cells, replacing the half-degree histogram the
// survey used to draw as a raster.
package coverage

import (
	"math"
	"sort"

	"coverage.antennemap.fr/internal/geo"
	"coverage.antennemap.fr/internal/models"
)

// Cell is one occupied grid cell of an operator's coverage.
type Cell struct {
	ID        string  `json:"id"`
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	Count     int     `json:"count"`
}

// OperatorGrid is the density grid of one operator, ordered by ascending
// antenna count so the sparsest cells come first.
type OperatorGrid struct {
	Operator  string  `json:"operator"`
	GridLevel int     `json:"grid_level"`
	Cells     []Cell  `json:"cells"`
	Threshold float64 `json:"threshold"`
}

// LowCoverage returns the cells at or below the grid's threshold count.
func (g *OperatorGrid) LowCoverage() []Cell {
	var low []Cell
	for _, c := range g.Cells {
		if float64(c.Count) <= g.Threshold {
			low = append(low, c)
		}
	}
	return low
}

// BuildGrid bins one operator's points into S2 cells at the given level and
// computes the low-coverage threshold as the given percentile of non-empty
// cell counts. Only occupied cells exist in the grid; a region with no
// antennas at all is outside the operator's footprint, not low-coverage.
func BuildGrid(set models.OperatorPointSet, level int, thresholdPercentile float64) OperatorGrid {
	if level <= 0 {
		level = geo.DefaultGridLevel
	}

	counts := make(map[string]int)
	centers := make(map[string][2]float64)
	for _, p := range set.Points {
		id := geo.GridCellID(p.Latitude, p.Longitude, level)
		if _, ok := centers[id]; !ok {
			lat, lon := geo.GridCellCenter(p.Latitude, p.Longitude, level)
			centers[id] = [2]float64{lat, lon}
		}
		counts[id]++
	}

	cells := make([]Cell, 0, len(counts))
	for id, count := range counts {
		center := centers[id]
		cells = append(cells, Cell{
			ID:        id,
			CenterLat: center[0],
			CenterLon: center[1],
			Count:     count,
		})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Count != cells[j].Count {
			return cells[i].Count < cells[j].Count
		}
		return cells[i].ID < cells[j].ID
	})

	values := make([]float64, len(cells))
	for i, c := range cells {
		values[i] = float64(c.Count)
	}

	return OperatorGrid{
		Operator:  set.Operator,
		GridLevel: level,
		Cells:     cells,
		Threshold: Percentile(values, thresholdPercentile),
	}
}

// Percentile computes the p-th percentile (0-100) of values with linear
// interpolation between ranks, matching the numpy definition the original
// survey thresholds were calibrated against. values need not be sorted; an
// empty input yields 0.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
