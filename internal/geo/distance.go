package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
//
// Reference: NASA Planetary Fact Sheet – Earth
// https://nssdc.gsfc.nasa.gov/planetary/factsheet/earthfact.html
const EarthRadiusKm = 6371.0

// Coordinate is a bare lat/lon pair in decimal degrees, used for the
// vectorized distance path where carrying full Point values would waste
// cache space on the hot loop.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees.
//
// The intermediate term a is clamped to [0,1]: floating-point rounding can
// push it just past 1 for antipodal points and just below 0 for coincident
// ones, and Sqrt of a negative would poison the result with NaN.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat + math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*sinLon*sinLon
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistancesFrom fills out with the haversine distance from the reference
// point to every coordinate in coords. The trigonometry of the reference
// point is hoisted out of the loop, which is what makes the all-pairs sweep
// in the nearest-neighbor engine affordable.
//
// out must have len(coords) elements; the same slice is returned for
// convenience. Passing a reusable buffer avoids one allocation per sweep.
func DistancesFrom(lat, lon float64, coords []Coordinate, out []float64) []float64 {
	const degToRad = math.Pi / 180

	latRad := lat * degToRad
	cosLat := math.Cos(latRad)

	for i, c := range coords {
		dLat := (c.Lat - lat) * degToRad
		dLon := (c.Lon - lon) * degToRad

		sinLat := math.Sin(dLat / 2)
		sinLon := math.Sin(dLon / 2)

		a := sinLat*sinLat + cosLat*math.Cos(c.Lat*degToRad)*sinLon*sinLon
		if a < 0 {
			a = 0
		} else if a > 1 {
			a = 1
		}

		out[i] = EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	}
	return out
}
