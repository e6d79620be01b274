package geo

import (
	"sort"

	"coverage.antennemap.fr/internal/models"
)

// ConvexHull returns the convex hull of the given points in counter-clockwise
// order using Andrew's monotone chain, treating lon/lat as planar x/y. At
// country scale the planar approximation distorts the outline by far less
// than one antenna spacing, so it is good enough for a coverage boundary.
//
// Fewer than three distinct points have no polygon; the distinct points are
// returned as-is.
func ConvexHull(points []models.Point) []Coordinate {
	coords := make([]Coordinate, 0, len(points))
	seen := make(map[Coordinate]struct{}, len(points))
	for _, p := range points {
		c := Coordinate{Lat: p.Latitude, Lon: p.Longitude}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		coords = append(coords, c)
	}

	if len(coords) < 3 {
		sort.Slice(coords, func(i, j int) bool {
			if coords[i].Lon != coords[j].Lon {
				return coords[i].Lon < coords[j].Lon
			}
			return coords[i].Lat < coords[j].Lat
		})
		return coords
	}

	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Lon != coords[j].Lon {
			return coords[i].Lon < coords[j].Lon
		}
		return coords[i].Lat < coords[j].Lat
	})

	// cross > 0 means a counter-clockwise turn from o->a to o->b.
	cross := func(o, a, b Coordinate) float64 {
		return (a.Lon-o.Lon)*(b.Lat-o.Lat) - (a.Lat-o.Lat)*(b.Lon-o.Lon)
	}

	var lower []Coordinate
	for _, c := range coords {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], c) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, c)
	}

	var upper []Coordinate
	for i := len(coords) - 1; i >= 0; i-- {
		c := coords[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], c) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, c)
	}

	// The last point of each chain is the first point of the other.
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}
