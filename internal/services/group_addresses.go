package services

import (
	"delivery-route-optimizer/internal/domain"
)

// GroupByAddress partitions packages into one delivery point per formatted
// address, in order of first appearance. Each point gets a provisional order.
func GroupByAddress(packages []domain.Package) []domain.DeliveryPoint {
	if len(packages) == 0 {
		return []domain.DeliveryPoint{}
	}

	keys := make([]string, 0, len(packages))
	byKey := make(map[string][]domain.Package)
	addrs := make(map[string]domain.Address)

	for _, pkg := range packages {
		k := pkg.Address.Key()
		if _, ok := byKey[k]; !ok {
			keys = append(keys, k)
			addrs[k] = pkg.Address
		}
		byKey[k] = append(byKey[k], pkg)

		// First resolved coordinate wins for the representative address.
		if a := addrs[k]; !a.HasCoordinate() && pkg.Address.HasCoordinate() {
			addrs[k] = a.WithCoordinate(*pkg.Address.Coordinate)
		}
	}

	points := make([]domain.DeliveryPoint, 0, len(keys))
	for i, k := range keys {
		// Groups are never empty here.
		point, _ := domain.NewDeliveryPoint(addrs[k], byKey[k])
		point.Order = i + 1
		points = append(points, point)
	}

	return points
}
