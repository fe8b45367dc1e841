// Package geo computes great-circle distances between airport coordinates.
package geo

import "math"

// Mean Earth radius in statute miles.
const earthRadiusMiles = 3958.8

// DistanceMiles returns the great-circle distance between two points in
// decimal degrees, truncated toward zero to whole miles. All downstream
// pricing and range checks work on this truncated value.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) int {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int(earthRadiusMiles * c)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
