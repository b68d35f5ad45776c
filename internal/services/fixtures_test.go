package services

import (
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/geo"
	"testing"
)

func coord(lat, lng float64) *domain.Coordinate {
	return &domain.Coordinate{Lat: lat, Lng: lng}
}

func pkgAt(id, number, street string, c *domain.Coordinate, prio domain.Priority) domain.Package {
	addr := domain.Address{Number: number, Street: street, PostalCode: "75001", City: "Paris"}
	if c != nil {
		addr = addr.WithCoordinate(*c)
	}
	return domain.Package{ID: id, Address: addr, Priority: prio}
}

// pointsAt builds one standard point per coordinate; nil means unresolved.
func pointsAt(t *testing.T, coords ...*domain.Coordinate) []domain.DeliveryPoint {
	t.Helper()

	pkgs := make([]domain.Package, 0, len(coords))
	for i, c := range coords {
		pkgs = append(pkgs, pkgAt(string(rune('a'+i)), string(rune('1'+i)), "Rue Test", c, domain.PriorityStandard))
	}
	points := GroupByAddress(pkgs)
	if len(points) != len(coords) {
		t.Fatalf("fixture: got %d points, want %d", len(points), len(coords))
	}
	return points
}

func haversineTable(points []domain.DeliveryPoint) DistanceTable {
	return NewDistanceTable(points, geo.Matrix(MatrixCoordinates(points)))
}

func ids(stops []domain.DeliveryPoint) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.ID
	}
	return out
}

func assertOrders(t *testing.T, stops []domain.DeliveryPoint, start int) {
	t.Helper()
	for i, s := range stops {
		if s.Order != start+i {
			t.Fatalf("stop %d order = %d, want %d", i, s.Order, start+i)
		}
	}
}
