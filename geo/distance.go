package geo

import "math"

const earthRadiusMeters = 6371000.0

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Haversine calculates the great-circle distance between two points in meters.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	deltaPhi := toRadians(lat2 - lat1)
	deltaLambda := toRadians(lon2 - lon1)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Interpolate linearly interpolates between two coordinates.
// fraction=0 returns the first point, fraction=1 the second.
func Interpolate(lat1, lon1, lat2, lon2, fraction float64) (float64, float64) {
	return lat1 + (lat2-lat1)*fraction, lon1 + (lon2-lon1)*fraction
}
