package geo

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// DefaultGridLevel is the S2 cell level used for density binning when no
// level is configured. Level 9 cells are roughly 14-21 km across, which is
// close to the half-degree grid the coverage survey was historically run on.
const DefaultGridLevel = 9

// GridCellID returns a stable S2-based cell ID for a lat/lon at the given level.
func GridCellID(lat, lon float64, level int) string {
	ll := s2.LatLngFromDegrees(lat, lon)
	cellID := s2.CellIDFromLatLng(ll).Parent(level)
	return fmt.Sprintf("s2_%d", uint64(cellID))
}

// GridCellCenter returns the center coordinates of the S2 cell containing
// the given lat/lon at the given level. Exporters place low-coverage markers
// at cell centers rather than at whichever antenna happened to hash there.
func GridCellCenter(lat, lon float64, level int) (centerLat, centerLon float64) {
	ll := s2.LatLngFromDegrees(lat, lon)
	center := s2.CellIDFromLatLng(ll).Parent(level).LatLng()
	return center.Lat.Degrees(), center.Lng.Degrees()
}
