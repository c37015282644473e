package geo

import "math"

// EarthRadiusKm radio medio de la Tierra usado por Haversine.
const EarthRadiusKm = 6371.0

// Point coordenada geográfica en grados decimales.
type Point struct {
	Latitude  float64
	Longitude float64
}

// NewPoint devuelve un punto solo si ambas coordenadas están presentes.
func NewPoint(lat, lon *float64) *Point {
	if lat == nil || lon == nil {
		return nil
	}
	return &Point{Latitude: *lat, Longitude: *lon}
}

// DistanceKm distancia de gran círculo (Haversine) entre dos puntos, en kilómetros.
func DistanceKm(a, b Point) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
