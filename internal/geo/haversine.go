package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the great-circle distance between a and b in kilometres
// using the Haversine formula.
func Distance(a, b Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}
