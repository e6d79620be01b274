package engine

import (
	"fmt"

	"coverage.antennemap.fr/internal/geo"
	"coverage.antennemap.fr/internal/models"
)

// NearestAntenna returns the antenna of the set closest to an external
// reference point, typically a geocoded parcel address, together with the
// distance in kilometers.
func NearestAntenna(set models.OperatorPointSet, lat, lon float64) (models.Point, float64, error) {
	if len(set.Points) == 0 {
		return models.Point{}, 0, fmt.Errorf("operator %s has no antennas", set.Operator)
	}

	coords := make([]geo.Coordinate, len(set.Points))
	for i, p := range set.Points {
		coords[i] = geo.Coordinate{Lat: p.Latitude, Lon: p.Longitude}
	}

	distances := geo.DistancesFrom(lat, lon, coords, make([]float64, len(coords)))

	best := 0
	for i, d := range distances {
		if d < distances[best] {
			best = i
		}
	}
	return set.Points[best], distances[best], nil
}
