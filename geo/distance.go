package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two locations in
// kilometers, treating the Earth as a sphere of radius EarthRadiusKm.
func Haversine(a, b Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// DegreeDistanceSq returns the squared Euclidean distance between two
// points in degree space. It is not geodesic; it is the cheap metric the
// spatial index ranks neighbors by.
func DegreeDistanceSq(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	return dLat*dLat + dLon*dLon
}
