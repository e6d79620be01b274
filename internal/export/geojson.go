package export

import (
	"encoding/json"
	"fmt"
	"os"

	"coverage.antennemap.fr/internal/coverage"
	"coverage.antennemap.fr/internal/geo"
	"coverage.antennemap.fr/internal/models"
)

// FeatureCollection is a standard GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single geographic feature with geometry and properties.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   Geometry               `json:"geometry"`
}

// Geometry carries Point or Polygon coordinates. GeoJSON orders coordinates
// [lon, lat].
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

func pointGeometry(lat, lon float64) Geometry {
	return Geometry{Type: "Point", Coordinates: []float64{lon, lat}}
}

func polygonGeometry(ring []geo.Coordinate) Geometry {
	coords := make([][]float64, 0, len(ring)+1)
	for _, c := range ring {
		coords = append(coords, []float64{c.Lon, c.Lat})
	}
	// GeoJSON rings are closed: first and last positions coincide.
	if len(coords) > 0 {
		coords = append(coords, coords[0])
	}
	return Geometry{Type: "Polygon", Coordinates: [][][]float64{coords}}
}

// BuildOperatorFeatureCollection assembles one operator's export: every
// antenna as a point, the convex hull of the footprint as a polygon, and the
// low-coverage cell centers as flagged points.
func BuildOperatorFeatureCollection(set models.OperatorPointSet, grid coverage.OperatorGrid) FeatureCollection {
	features := make([]Feature, 0, len(set.Points)+1)

	for _, p := range set.Points {
		features = append(features, Feature{
			Type: "Feature",
			Properties: map[string]interface{}{
				"kind":       "antenna",
				"support_id": p.SupportID,
				"operator":   p.Operator,
			},
			Geometry: pointGeometry(p.Latitude, p.Longitude),
		})
	}

	if hull := geo.ConvexHull(set.Points); len(hull) >= 3 {
		features = append(features, Feature{
			Type: "Feature",
			Properties: map[string]interface{}{
				"kind":     "coverage_hull",
				"operator": set.Operator,
			},
			Geometry: polygonGeometry(hull),
		})
	}

	for _, cell := range grid.LowCoverage() {
		features = append(features, Feature{
			Type: "Feature",
			Properties: map[string]interface{}{
				"kind":          "low_coverage_cell",
				"operator":      set.Operator,
				"cell_id":       cell.ID,
				"antenna_count": cell.Count,
			},
			Geometry: pointGeometry(cell.CenterLat, cell.CenterLon),
		})
	}

	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// WriteGeoJSON writes a feature collection to disk, indented for diffing.
func WriteGeoJSON(path string, fc FeatureCollection) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
