// Package geo provides great-circle distance on WGS84 coordinates.
package geo

import (
	"math"

	"delivery-route-optimizer/internal/domain"
)

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(a, b domain.Coordinate) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng
	// Rounding can push h past 1 for near-antipodal points.
	h = min(h, 1)

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// HaversineM returns the great-circle distance between two points in meters.
func HaversineM(a, b domain.Coordinate) float64 {
	return HaversineKm(a, b) * 1000
}

// Matrix returns the symmetric haversine matrix in meters for coords.
func Matrix(coords []domain.Coordinate) domain.DistanceMatrix {
	m := domain.NewDistanceMatrix(len(coords))
	for i := range coords {
		for j := i + 1; j < len(coords); j++ {
			d := HaversineM(coords[i], coords[j])
			m[i][j] = d
			m[j][i] = d
		}
	}
	return m
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
