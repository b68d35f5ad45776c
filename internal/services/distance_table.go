package services

import (
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/geo"
	"math"
)

// DistanceTable resolves distances between delivery points through a matrix
// computed over the points that have coordinates. Points without a coordinate
// are infinitely far from everything.
type DistanceTable struct {
	index  map[string]int
	matrix domain.DistanceMatrix
}

// MatrixCoordinates lists the coordinates of the points that have one, in
// point order. This is the coordinate list a DistanceTable expects its matrix for.
func MatrixCoordinates(points []domain.DeliveryPoint) []domain.Coordinate {
	coords := make([]domain.Coordinate, 0, len(points))
	for _, p := range points {
		if p.HasCoordinate() {
			coords = append(coords, *p.Address.Coordinate)
		}
	}
	return coords
}

// NewDistanceTable indexes points with coordinates against m, which must be the
// matrix for MatrixCoordinates(points). Point ids must be unique.
func NewDistanceTable(points []domain.DeliveryPoint, m domain.DistanceMatrix) DistanceTable {
	index := make(map[string]int, len(points))
	next := 0
	for _, p := range points {
		if !p.HasCoordinate() {
			continue
		}
		if _, ok := index[p.ID]; !ok {
			index[p.ID] = next
		}
		next++
	}
	return DistanceTable{index: index, matrix: m}
}

// Meters returns the distance from a to b.
func (t DistanceTable) Meters(a, b domain.DeliveryPoint) float64 {
	ia, okA := t.index[a.ID]
	ib, okB := t.index[b.ID]
	if !okA || !okB || ia >= len(t.matrix) || ib >= len(t.matrix) {
		return math.Inf(1)
	}
	return t.matrix[ia][ib]
}

// FromOrigin returns the haversine distance in meters from the driver's
// position, which has no matrix entry.
func FromOrigin(origin domain.UserPosition, p domain.DeliveryPoint) float64 {
	if !p.HasCoordinate() {
		return math.Inf(1)
	}
	return geo.HaversineM(origin, *p.Address.Coordinate)
}

// PathMeters sums the leg distances of stops, excluding the leg from the origin.
func (t DistanceTable) PathMeters(stops []domain.DeliveryPoint) float64 {
	total := 0.0
	for i := 1; i < len(stops); i++ {
		total += t.Meters(stops[i-1], stops[i])
	}
	return total
}

func metersToKm(m float64) float64 {
	if math.IsInf(m, 0) || math.IsNaN(m) {
		return 0
	}
	return m / 1000
}
