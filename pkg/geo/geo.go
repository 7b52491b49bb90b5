package geo

import "math"

// Earth's equatorial radius, matching the Mercator projection the map
// coordinates are derived from.
const earthRadiusMeters = 6_378_137.0

const degToRad = math.Pi / 180

// Euclidean returns the straight-line distance between two planar points.
func Euclidean(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// MercatorX projects a longitude in degrees onto the planar x axis.
func MercatorX(lon float64) float64 {
	return lon * degToRad / 2 * earthRadiusMeters
}

// MercatorY projects a latitude in degrees onto the planar y axis.
func MercatorY(lat float64) float64 {
	return math.Log(math.Tan(lat*degToRad/2+math.Pi/4)) / 2 * earthRadiusMeters
}
